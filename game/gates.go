package game

// LiquidAlgorithm selects how water membership and liquid pushing are computed.
type LiquidAlgorithm uint8

const (
	// LiquidContracted is the pre-1.13 test: a box contracted by 0.4 vertically, presence based pushing.
	LiquidContracted LiquidAlgorithm = iota
	// LiquidHeightRelative is the 1.13+ test against the liquid surface height, height weighted pushing.
	LiquidHeightRelative
)

// LavaAlgorithm selects how lava membership is computed.
type LavaAlgorithm uint8

const (
	// LavaFlooredBox is the pre-1.14 floored +0.1/+0.4 contracted material test.
	LavaFlooredBox LavaAlgorithm = iota
	// LavaInsetCollide is the 1.14 and 1.15 inside-block test on a box inset by 0.001.
	LavaInsetCollide
	// LavaHeightRelative shares the modern height relative liquid test.
	LavaHeightRelative
)

// SurfaceAlgorithm selects how ice, slime and honey contact are computed.
type SurfaceAlgorithm uint8

const (
	// SurfaceLegacy uses half-box horizontal margins for ice and the block below for slime.
	SurfaceLegacy SurfaceAlgorithm = iota
	// SurfaceSupporting uses the supporting block below the feet.
	SurfaceSupporting
)

// Gates holds the version thresholds at which client physics changed. The zero value is not valid;
// use DefaultGates or the gates from settings.
type Gates struct {
	// LegacyLiquidBelow is the first version using the height relative liquid test.
	LegacyLiquidBelow ClientVersion
	// LegacyLavaBelow is the first version using the inside-block lava test.
	LegacyLavaBelow ClientVersion
	// LavaPushSince is the first version in which lava pushes entities and uses the height relative test.
	LavaPushSince ClientVersion
	// LegacySurfaceUntil is the last version using the legacy ice, slime and honey tests.
	LegacySurfaceUntil ClientVersion

	SlimeSince       ClientVersion
	BlueIceSince     ClientVersion
	WaterloggedSince ClientVersion
	BerryBushSince   ClientVersion
	HoneySince       ClientVersion
	PowderSnowSince  ClientVersion
	// ClimbAnySince is the first version where every climbable block can be climbed upwards.
	ClimbAnySince ClientVersion
	// BelowOffsetSince is the first version that looks 0.5000001 below the feet for block friction.
	BelowOffsetSince ClientVersion
}

// DefaultGates returns the thresholds of the vanilla client history.
func DefaultGates() Gates {
	return Gates{
		LegacyLiquidBelow:  V1_13,
		LegacyLavaBelow:    V1_14,
		LavaPushSince:      V1_16,
		LegacySurfaceUntil: V1_19_4,
		SlimeSince:         V1_8,
		BlueIceSince:       V1_13,
		WaterloggedSince:   V1_13,
		BerryBushSince:     V1_14,
		HoneySince:         V1_15,
		PowderSnowSince:    V1_17,
		ClimbAnySince:      V1_14,
		BelowOffsetSince:   V1_15,
	}
}

// Liquid returns the water algorithm for v.
func (g Gates) Liquid(v ClientVersion) LiquidAlgorithm {
	if v.OrLatest() < g.LegacyLiquidBelow {
		return LiquidContracted
	}
	return LiquidHeightRelative
}

// Lava returns the lava algorithm for v.
func (g Gates) Lava(v ClientVersion) LavaAlgorithm {
	v = v.OrLatest()
	switch {
	case v < g.LegacyLavaBelow:
		return LavaFlooredBox
	case v < g.LavaPushSince:
		return LavaInsetCollide
	default:
		return LavaHeightRelative
	}
}

// Surface returns the surface contact algorithm for v.
func (g Gates) Surface(v ClientVersion) SurfaceAlgorithm {
	if v.OrLatest() <= g.LegacySurfaceUntil {
		return SurfaceLegacy
	}
	return SurfaceSupporting
}

// LavaPushes reports whether lava applies a flow push to clients of version v.
func (g Gates) LavaPushes(v ClientVersion) bool {
	return v.OrLatest() >= g.LavaPushSince
}

// Has reports whether v is at or after the given threshold.
func Has(v, since ClientVersion) bool {
	return v.OrLatest() >= since
}

// BelowOffset returns the distance below the feet used to find the block affecting movement.
func (g Gates) BelowOffset(v ClientVersion) float64 {
	if Has(v, g.BelowOffsetSince) {
		return BlockBelowOffset
	}
	return BlockBelowOffsetLegacy
}

// Ordered reports whether the thresholds are in a consistent order.
func (g Gates) Ordered() bool {
	return g.LegacyLiquidBelow.Known() && g.LegacyLiquidBelow <= g.LegacyLavaBelow &&
		g.LegacyLavaBelow <= g.LavaPushSince && g.LavaPushSince <= g.LegacySurfaceUntil
}
