package environment

import (
	"strings"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Medium is the mutually exclusive medium an entity moves through.
type Medium uint8

const (
	MediumAir Medium = iota
	// MediumNone is used for entities on ground outside any other medium.
	MediumNone
	MediumWater
	MediumLava
	MediumWeb
	MediumPowderSnow
	MediumClimbable
)

func (m Medium) String() string {
	switch m {
	case MediumAir:
		return "air"
	case MediumNone:
		return "none"
	case MediumWater:
		return "water"
	case MediumLava:
		return "lava"
	case MediumWeb:
		return "web"
	case MediumPowderSnow:
		return "powder_snow"
	case MediumClimbable:
		return "climbable"
	}
	return "unknown"
}

// Fact is a bitset of the boolean facts of a Snapshot.
type Fact uint32

const (
	FactOnGround Fact = 1 << iota
	FactStandsOnEntity
	FactInLiquid
	FactInWater
	FactInLava
	FactInWaterLogged
	FactInWeb
	FactInBerryBush
	FactInPowderSnow
	FactInBubbleStream
	FactOnClimbable
	FactOnIce
	FactOnBlueIce
	FactOnSlime
	// FactOnBouncyBlock is set on slime and beds.
	FactOnBouncyBlock
	FactOnHoneyBlock
	FactInSoulSand
	FactHeadObstructed
	// FactSlidingDown is set while sliding down the side of a honey block.
	FactSlidingDown
	// FactResetCond is set in media that reset fall and jump tracking.
	FactResetCond
	FactCanClimbUp
	// FactShapeUnavailable is set if any block consulted could not be resolved.
	FactShapeUnavailable

	factCount = iota
)

var factNames = [factCount]string{
	"on_ground", "stands_on_entity", "in_liquid", "in_water", "in_lava", "in_waterlogged", "in_web",
	"in_berry_bush", "in_powder_snow", "in_bubble_stream", "on_climbable", "on_ice", "on_blue_ice",
	"on_slime", "on_bouncy_block", "on_honey_block", "in_soul_sand", "head_obstructed", "sliding_down",
	"reset_cond", "can_climb_up", "shape_unavailable",
}

func (f Fact) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for i, name := range factNames {
		if f&(1<<uint(i)) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// Snapshot holds the environment facts of one entity box at one instant. Snapshots are values and are
// never modified after classification; two classifications of the same request compare equal.
type Snapshot struct {
	Position mgl64.Vec3
	Box      cube.BBox
	Version  game.ClientVersion
	Tick     uint64

	Medium Medium
	// Surface is the type of the block at the feet, BlockBelow the type of the block affecting friction.
	Surface, BlockBelow           block.Type
	SurfaceFlags, BlockBelowFlags block.Flags

	facts Fact
}

// Has reports whether all facts in f are set.
func (s Snapshot) Has(f Fact) bool {
	return s.facts&f == f
}

// Facts returns the set facts.
func (s Snapshot) Facts() Fact {
	return s.facts
}

// With returns a copy of s with the facts f set.
func (s Snapshot) With(f Fact) Snapshot {
	s.facts |= f
	return s
}

// Without returns a copy of s with the facts f cleared.
func (s Snapshot) Without(f Fact) Snapshot {
	s.facts &^= f
	return s
}

func (s Snapshot) OnGround() bool         { return s.Has(FactOnGround) }
func (s Snapshot) StandsOnEntity() bool   { return s.Has(FactStandsOnEntity) }
func (s Snapshot) InLiquid() bool         { return s.Has(FactInLiquid) }
func (s Snapshot) InWater() bool          { return s.Has(FactInWater) }
func (s Snapshot) InLava() bool           { return s.Has(FactInLava) }
func (s Snapshot) InWaterLogged() bool    { return s.Has(FactInWaterLogged) }
func (s Snapshot) InWeb() bool            { return s.Has(FactInWeb) }
func (s Snapshot) InBerryBush() bool      { return s.Has(FactInBerryBush) }
func (s Snapshot) InPowderSnow() bool     { return s.Has(FactInPowderSnow) }
func (s Snapshot) InBubbleStream() bool   { return s.Has(FactInBubbleStream) }
func (s Snapshot) OnClimbable() bool      { return s.Has(FactOnClimbable) }
func (s Snapshot) OnIce() bool            { return s.Has(FactOnIce) }
func (s Snapshot) OnBlueIce() bool        { return s.Has(FactOnBlueIce) }
func (s Snapshot) OnSlime() bool          { return s.Has(FactOnSlime) }
func (s Snapshot) OnBouncyBlock() bool    { return s.Has(FactOnBouncyBlock) }
func (s Snapshot) OnHoneyBlock() bool     { return s.Has(FactOnHoneyBlock) }
func (s Snapshot) InSoulSand() bool       { return s.Has(FactInSoulSand) }
func (s Snapshot) HeadObstructed() bool   { return s.Has(FactHeadObstructed) }
func (s Snapshot) SlidingDown() bool      { return s.Has(FactSlidingDown) }
func (s Snapshot) ResetCond() bool        { return s.Has(FactResetCond) }
func (s Snapshot) CanClimbUp() bool       { return s.Has(FactCanClimbUp) }
func (s Snapshot) ShapeUnavailable() bool { return s.Has(FactShapeUnavailable) }

// facts memoizes the facts of one classification while they are being computed.
type facts struct {
	known, value Fact
}

// get returns the value of f and whether it was computed yet.
func (m *facts) get(f Fact) (bool, bool) {
	if m.known&f == 0 {
		return false, false
	}
	return m.value&f != 0, true
}

func (m *facts) set(f Fact, v bool) {
	m.known |= f
	if v {
		m.value |= f
	} else {
		m.value &^= f
	}
}
