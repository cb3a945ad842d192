package block

import "strings"

// Flags is a bitset of block properties consulted by collision and environment tests.
type Flags uint64

const (
	FlagSolid Flags = 1 << iota
	FlagGround
	FlagLiquid
	FlagWater
	FlagLava
	FlagClimbable
	// FlagAttachedClimbable marks climbables that legacy clients can only climb when attached to a solid side.
	FlagAttachedClimbable
	FlagIce
	FlagBlueIce
	FlagSlime
	FlagBed
	// FlagSticky marks honey.
	FlagSticky
	FlagSoulSand
	FlagWeb
	FlagBerryBush
	FlagPowderSnow
	FlagBubbleColumn
	// FlagVariable marks blocks whose shape depends on data or neighbours.
	FlagVariable
	// FlagGroundHeight marks blocks that are only ground from a minimum height upwards.
	FlagGroundHeight
	FlagHeight150
	FlagHeight100
	// FlagHeight8Inc marks blocks whose height is 0.125 * (data % 8).
	FlagHeight8Inc
	// FlagHeight8SimDec marks liquids whose height decreases with the fill level.
	FlagHeight8SimDec
	FlagHeight8_1
	FlagXZ100
	// FlagFakeBounds corrects the bounds of thin panes to their half-block extent.
	FlagFakeBounds
	// FlagCollideEdges makes max-edge contact count as a collision.
	FlagCollideEdges
	// FlagPassableX4 marks gates and trapdoors that are passable while data&4 is set.
	FlagPassableX4
	FlagThickFence
	FlagThinFence
	// FlagIgnPassable marks blocks that never obstruct ground judgment from above.
	FlagIgnPassable
	FlagMinHeight16_1
	FlagMinHeight8_1
	FlagMinHeight4_1
	FlagMinHeight16_5
	FlagMinHeight16_7
	FlagMinHeight16_9
	FlagMinHeight8_5
	FlagMinHeight16_11
	FlagMinHeight16_13
	FlagMinHeight16_14
	FlagMinHeight16_15
	FlagWaterlogged
	FlagUnknown
)

// FlagsSolidGround is the flag set of ordinary full blocks.
const FlagsSolidGround = FlagSolid | FlagGround

var flagNames = [...]string{
	"solid", "ground", "liquid", "water", "lava", "climbable", "attached_climbable", "ice", "blue_ice",
	"slime", "bed", "sticky", "soul_sand", "web", "berry_bush", "powder_snow", "bubble_column", "variable",
	"ground_height", "height150", "height100", "height8_inc", "height8sim_dec", "height8_1", "xz100",
	"fake_bounds", "collide_edges", "passable_x4", "thick_fence", "thin_fence", "ign_passable",
	"min_height16_1", "min_height8_1", "min_height4_1", "min_height16_5", "min_height16_7",
	"min_height16_9", "min_height8_5", "min_height16_11", "min_height16_13", "min_height16_14",
	"min_height16_15", "waterlogged", "unknown",
}

// Has reports whether any of the flags in o are set.
func (f Flags) Has(o Flags) bool {
	return f&o != 0
}

// All reports whether every flag in o is set.
func (f Flags) All(o Flags) bool {
	return f&o == o
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for i, name := range flagNames {
		if f&(1<<uint(i)) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}
