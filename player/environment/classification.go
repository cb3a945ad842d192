package environment

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/world"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/KweezyCode/NoCheatPlus/world/collision"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// classification computes the facts of one request. It lives for a single Classify call.
type classification struct {
	c       *Classifier
	req     Request
	version game.ClientVersion
	view    *world.View
	geo     *collision.Geometry
	bb      cube.BBox

	yOnGround float64
	facts     facts
}

// fact returns f, computing it through compute the first time it is asked for.
func (k *classification) fact(f Fact, compute func() bool) bool {
	if v, ok := k.facts.get(f); ok {
		return v
	}
	v := compute()
	k.facts.set(f, v)
	return v
}

func (k *classification) snapshot() Snapshot {
	surface, below := k.view.Shape(k.feet()), k.view.Shape(k.below())
	s := Snapshot{
		Position:        k.req.Position,
		Box:             k.bb,
		Version:         k.version,
		Tick:            k.req.Tick,
		Surface:         surface.Type,
		BlockBelow:      below.Type,
		SurfaceFlags:    surface.Flags,
		BlockBelowFlags: below.Flags,
	}
	for _, f := range []func() bool{
		k.onGround, k.inLiquid, k.inWaterLogged, k.inWeb, k.inBerryBush, k.inPowderSnow, k.inBubbleStream,
		k.onClimbable, k.onIce, k.onBlueIce, k.onSlime, k.onBouncyBlock, k.onHoneyBlock, k.inSoulSand,
		k.headObstructed, k.slidingDown, k.resetCond, k.canClimbUp,
	} {
		f()
	}
	k.facts.set(FactShapeUnavailable, k.view.Unavailable() > 0)

	switch {
	case k.inLava():
		s.Medium = MediumLava
	case k.inWater():
		s.Medium = MediumWater
	case k.inWeb():
		s.Medium = MediumWeb
	case k.inPowderSnow():
		s.Medium = MediumPowderSnow
	case k.onClimbable():
		s.Medium = MediumClimbable
	case k.onGround():
		s.Medium = MediumNone
	default:
		s.Medium = MediumAir
	}
	s.facts = k.facts.value
	return s
}

// feet returns the block position at the feet.
func (k *classification) feet() cube.Pos {
	p := k.req.Position
	return cube.Pos{game.BlockCoord(p[0]), game.BlockCoord(k.bb.Min()[1]), game.BlockCoord(p[2])}
}

// below returns the block affecting friction.
func (k *classification) below() cube.Pos {
	p := k.req.Position
	return cube.Pos{game.BlockCoord(p[0]), game.BlockCoord(k.bb.Min()[1] - k.c.gates.BelowOffset(k.version)), game.BlockCoord(p[2])}
}

// legacyBelow returns the block directly below the feet block.
func (k *classification) legacyBelow() cube.Pos {
	return k.feet().Side(cube.FaceDown)
}

func (k *classification) has(since game.ClientVersion) bool {
	return game.Has(k.version, since)
}

// inset returns the box shrunk for inside-block tests.
func (k *classification) inset() cube.BBox {
	return game.Contract(k.bb, game.LiquidBoxInset, game.LiquidBoxInset, game.LiquidBoxInset)
}

func (k *classification) standsOnEntity() bool {
	return k.fact(FactStandsOnEntity, func() bool {
		if k.c.entities == nil {
			return false
		}
		mn, mx := k.bb.Min(), k.bb.Max()
		m := k.c.standingMargin
		region := game.Box(mn[0]-m, mn[1]-k.yOnGround, mn[2]-m, mx[0]+m, mn[1], mx[2]+m)
		for _, other := range k.c.entities.EntityBoxes(region, k.req.Entity) {
			if other.IntersectsWith(region) {
				return true
			}
		}
		return false
	})
}

// onGround checks entities first, then blocks. A block test that touched unavailable positions and found
// no ground still reports ground.
func (k *classification) onGround() bool {
	return k.fact(FactOnGround, func() bool {
		if k.standsOnEntity() {
			return true
		}
		mn, mx := k.bb.Min(), k.bb.Max()
		before := k.view.Unavailable()
		if k.geo.OnGround(game.Box(mn[0], mn[1]-k.yOnGround, mn[2], mx[0], mn[1], mx[2]), 0) {
			return true
		}
		return k.view.Unavailable() > before
	})
}

func (k *classification) inWater() bool {
	return k.fact(FactInWater, func() bool {
		return liquidTests[k.c.gates.Liquid(k.version)](k, block.FlagWater) || k.inWaterLogged()
	})
}

func (k *classification) inLava() bool {
	return k.fact(FactInLava, func() bool {
		return lavaTests[k.c.gates.Lava(k.version)](k)
	})
}

func (k *classification) inLiquid() bool {
	return k.fact(FactInLiquid, func() bool {
		// Both are evaluated so that the snapshot holds each of them.
		water, lava := k.inWater(), k.inLava()
		return water || lava
	})
}

func (k *classification) inWaterLogged() bool {
	return k.fact(FactInWaterLogged, func() bool {
		if !k.has(k.c.gates.WaterloggedSince) {
			return false
		}
		for _, pos := range collision.OverlapRegion(k.inset()) {
			if k.view.Flags(pos).Has(block.FlagWaterlogged) {
				return true
			}
		}
		return false
	})
}

func (k *classification) inWeb() bool {
	return k.fact(FactInWeb, func() bool {
		return k.geo.Collides(k.inset(), block.FlagWeb)
	})
}

func (k *classification) inBerryBush() bool {
	return k.fact(FactInBerryBush, func() bool {
		return k.has(k.c.gates.BerryBushSince) && k.geo.Collides(k.inset(), block.FlagBerryBush)
	})
}

func (k *classification) inPowderSnow() bool {
	return k.fact(FactInPowderSnow, func() bool {
		return k.has(k.c.gates.PowderSnowSince) && k.geo.Collides(k.inset(), block.FlagPowderSnow)
	})
}

func (k *classification) inBubbleStream() bool {
	return k.fact(FactInBubbleStream, func() bool {
		return k.has(k.c.gates.WaterloggedSince) && k.geo.Collides(k.inset(), block.FlagBubbleColumn)
	})
}

func (k *classification) onClimbable() bool {
	return k.fact(FactOnClimbable, func() bool {
		return k.view.Flags(k.feet()).Has(block.FlagClimbable)
	})
}

func (k *classification) onIce() bool {
	return k.fact(FactOnIce, func() bool {
		return surfaceTests[k.c.gates.Surface(k.version)](k, block.FlagIce)
	})
}

func (k *classification) onBlueIce() bool {
	return k.fact(FactOnBlueIce, func() bool {
		return k.has(k.c.gates.BlueIceSince) && surfaceTests[k.c.gates.Surface(k.version)](k, block.FlagBlueIce)
	})
}

func (k *classification) onSlime() bool {
	return k.fact(FactOnSlime, func() bool {
		if !k.has(k.c.gates.SlimeSince) || !k.onGround() {
			return false
		}
		if k.c.gates.Surface(k.version) == game.SurfaceLegacy {
			return k.view.Flags(k.legacyBelow()).Has(block.FlagSlime)
		}
		return k.view.Flags(k.below()).Has(block.FlagSlime)
	})
}

func (k *classification) onBouncyBlock() bool {
	return k.fact(FactOnBouncyBlock, func() bool {
		if k.onSlime() {
			return true
		}
		return k.onGround() && (k.view.Flags(k.feet()).Has(block.FlagBed) || k.view.Flags(k.below()).Has(block.FlagBed))
	})
}

func (k *classification) onHoneyBlock() bool {
	return k.fact(FactOnHoneyBlock, func() bool {
		if !k.has(k.c.gates.HoneySince) {
			return false
		}
		if k.c.gates.Surface(k.version) == game.SurfaceLegacy {
			return k.view.Flags(k.feet()).Has(block.FlagSticky)
		}
		return k.onGround() && k.view.Flags(k.below()).Has(block.FlagSticky)
	})
}

func (k *classification) inSoulSand() bool {
	return k.fact(FactInSoulSand, func() bool {
		return k.view.Flags(k.feet()).Has(block.FlagSoulSand)
	})
}

// nextTo reports whether a block with any of flags is within d of the sides of the box.
func (k *classification) nextTo(d float64, flags block.Flags) bool {
	mn, mx := k.bb.Min(), k.bb.Max()
	return k.geo.Collides(game.Box(mn[0]-d, mn[1], mn[2]-d, mx[0]+d, mx[1], mx[2]+d), flags)
}

func (k *classification) headObstructed() bool {
	return k.fact(FactHeadObstructed, func() bool {
		mn, mx := k.bb.Min(), k.bb.Max()
		margin := headMargin(mx[1], 0)
		region := game.Box(mn[0], mx[1], mn[2], mx[0], mx[1]+margin, mx[2])
		return k.geo.Collides(region, block.FlagGround|block.FlagSolid) &&
			!k.geo.Collides(region, block.FlagPowderSnow) &&
			!k.nextTo(0.01, block.FlagSticky)
	})
}

// headMargin returns the margin above maxY to test for obstruction, raised to the next step level above
// the head.
func headMargin(maxY, margin float64) float64 {
	obstr := maxY + margin
	obstr -= float64(game.BlockCoord(obstr))
	obstr += 0.35
	for _, bound := range [...]float64{1.0, 0.75, 0.5, 0.25} {
		if obstr >= bound {
			margin += bound + 0.35 - obstr
			break
		}
	}
	return margin
}

func (k *classification) slidingDown() bool {
	return k.fact(FactSlidingDown, func() bool {
		if !k.has(k.c.gates.HoneySince) || k.onGround() || k.req.YDistance >= -game.DefaultGravity {
			return false
		}
		return k.nextTo(0.01, block.FlagSticky)
	})
}

func (k *classification) resetCond() bool {
	return k.fact(FactResetCond, func() bool {
		return k.inLiquid() || k.onClimbable() || k.inWeb() || k.inBerryBush() || k.inPowderSnow()
	})
}

// canClimbUp is true except for legacy clients on an attached climbable without a solid neighbour up to the
// head and without ground within jumping reach.
func (k *classification) canClimbUp() bool {
	return k.fact(FactCanClimbUp, func() bool {
		if k.has(k.c.gates.ClimbAnySince) {
			return true
		}
		feet := k.feet()
		if !k.view.Flags(feet).Has(block.FlagAttachedClimbable) {
			return true
		}
		top := game.BlockCoord(k.bb.Max()[1])
		for y := feet.Y(); y <= top; y++ {
			if k.geo.CanClimbUp(cube.Pos{feet.X(), y, feet.Z()}) {
				return true
			}
		}
		jump := k.req.JumpHeight
		if jump == 0 {
			jump = game.LiftOffNormal.MaxJumpGain
		}
		mn, mx := k.bb.Min(), k.bb.Max()
		return k.geo.OnGround(game.Box(mn[0], mn[1]-jump, mn[2], mx[0], mn[1], mx[2]), 0)
	})
}
