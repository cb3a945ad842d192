package game

// Gravity, as seen in one tick of vertical motion: lastDelta * friction - gravity.
const (
	GravityMax     = 0.0834
	DefaultGravity = 0.08
	GravityMin     = 0.0624
	GravityOdd     = 0.05
	GravityVAcc    = GravityMin * 0.6
	GravitySpan    = GravityMax - GravityMin
	// SlowFallingGravity is 0.01 in the client. 0.0097 matches the lastDelta * friction - gravity model.
	SlowFallingGravity = 0.0097
	GravityMultiplier  = 0.98
)

// Per-medium vertical friction.
const (
	FrictionMediumAir        = 0.98
	FrictionMediumWater      = 0.98
	FrictionMediumLava       = 0.535
	FrictionMediumElytraAir  = 0.9800002
	WaterVerticalInertia     = 0.8
	LavaVerticalInertia      = 0.5
	HorizontalInertia        = 0.91
	HorizontalSwimInertia    = 0.9
	WaterHorizontalInertia   = 0.8
	LavaHorizontalInertia    = 0.5
	DolphinsGraceInertia     = 0.96
	CubedInertia             = 0.16277136
	DefaultFrictionCubed     = 0.6 * 0.6 * 0.6
	DefaultBlockFriction     = 0.6
	IceBlockFriction         = 0.98
	BlueIceBlockFriction     = 0.989
	SlimeBlockFriction       = 0.8
	SoulSandSpeedFactor      = 0.4
	HoneySpeedFactor         = 0.4
	BlockBelowOffset         = 0.5000001
	BlockBelowOffsetLegacy   = 1.0
	NegligibleSpeedThreshold = 0.003
	// NegligibleSpeedThresholdLegacy applies to clients that predate the 0.003 clamp.
	NegligibleSpeedThresholdLegacy = 0.005
)

// Lift-off and horizontal movement.
const (
	DefaultJumpMotion  = 0.42
	BunnyhopAccelBoost = 0.2
	BunnyhopMaxDelay   = 10
	WalkSpeed          = 0.221
	AirAcceleration    = 0.02
	StepHeight         = 0.6
	SlimeBounce        = -1.0
	BedBounce          = -0.66
	BounceVerticalMax  = 3.5
	PaperDistance      = 0.01
	SneakStepDistance  = 0.05
	ExtremeMoveY       = 4.0
	ExtremeMoveXZ      = 15.0
)

// Climbing and special media.
const (
	ClimbSpeedAscend       = 0.119
	ClimbSpeedDescend      = 0.151
	SnowClimbSpeedAscend   = 0.177
	SnowClimbSpeedDescend  = 0.118
	BushSpeedDescend       = 0.09
	BubbleStreamDescend    = 0.49
	BubbleStreamAscend     = 0.9
	ClimbableMaxSpeed      = 0.15
	MaxFreezeTicks         = 140
	PowderSnowSlowdownBase = -0.05
)

// Elytra gliding.
const (
	GlideHorizontalGainMax = GravityMax / 2.0
	GlideDescendPhaseMin   = -GravityMax - GravitySpan
	GlideDescendGainMaxNeg = -GravityMax
	GlideDescendGainMaxPos = GravityOdd / 1.95
)

// Ground margins. These are the active values; the older 1e-5 / 0.0626 / 0.025 set is not used.
const (
	YOnGroundMin     = 0.0000001
	YOnGroundMax     = 0.025
	YOnGroundDefault = 0.00001
	// GroundMarginCeiling bounds any configured ground margin.
	GroundMarginCeiling = 0.0625
	GroundScanDepth     = 0.5626
	Height150Margin     = 0.5625
)

// Liquids.
const (
	LiquidHeightLowered    = 8.0 / 9.0
	WaterFlowScale         = 0.014
	LavaFlowScale          = 0.0023333333333333335
	LavaFlowScaleNether    = 0.007
	NegligiblePushMin      = 0.0045000000000000005
	LegacyLiquidContract   = 0.4
	LiquidBoxInset         = 0.001
	FlowNormalizeThreshold = 1.0e-4
)

// Swim speed modifiers relative to WalkSpeed.
var (
	ModSwim = [4]float64{
		0.115 / WalkSpeed,
		0.044 / WalkSpeed,
		0.3 / WalkSpeed,
		0.146 / WalkSpeed,
	}
	ModDownStream = 0.19 / (WalkSpeed * ModSwim[0])
)
