package block

import (
	"github.com/KweezyCode/NoCheatPlus/game"
)

const (
	flagsFence = FlagsSolidGround | FlagVariable | FlagHeight150 | FlagThickFence
	flagsPane  = FlagsSolidGround | FlagVariable | FlagThinFence
	flagsGate  = FlagsSolidGround | FlagVariable | FlagHeight150 | FlagPassableX4
	flagsWater = FlagLiquid | FlagWater | FlagHeight8SimDec
	flagsLava  = FlagLiquid | FlagLava | FlagHeight8SimDec
)

// VanillaDefinitions returns the definitions of the built-in block table.
func VanillaDefinitions() []Definition {
	return []Definition{
		{Name: "minecraft:stone", Flags: FlagsSolidGround, Boxes: fullBox},
		{Name: "minecraft:dirt", Flags: FlagsSolidGround, Boxes: fullBox},
		{Name: "minecraft:grass_block", Flags: FlagsSolidGround, Boxes: fullBox},
		{Name: "minecraft:sand", Flags: FlagsSolidGround, Boxes: fullBox},
		{Name: "minecraft:planks", Flags: FlagsSolidGround, Boxes: fullBox},
		{Name: "minecraft:glass", Flags: FlagsSolidGround, Boxes: fullBox},
		{Name: "minecraft:ice", Flags: FlagsSolidGround | FlagIce, Boxes: fullBox},
		{Name: "minecraft:packed_ice", Flags: FlagsSolidGround | FlagIce, Boxes: fullBox},
		{Name: "minecraft:blue_ice", Flags: FlagsSolidGround | FlagBlueIce, Boxes: fullBox, Since: game.V1_13, MapTo: "minecraft:ice"},
		{Name: "minecraft:slime", Flags: FlagsSolidGround | FlagSlime, Boxes: fullBox, Since: game.V1_8, MapTo: "minecraft:stone"},
		{Name: "minecraft:honey_block", Flags: FlagsSolidGround | FlagSticky, Boxes: centred(1.0/16.0, 15.0/16.0),
			Since: game.V1_15, MapTo: "minecraft:slime", LegacyFlags: FlagMinHeight16_15 | FlagGroundHeight},
		{Name: "minecraft:soul_sand", Flags: FlagsSolidGround | FlagSoulSand | FlagGroundHeight | FlagMinHeight16_14, Boxes: height(0.875)},
		{Name: "minecraft:farmland", Flags: FlagsSolidGround | FlagGroundHeight, Boxes: height(15.0 / 16.0),
			LegacyFlags: FlagMinHeight16_15 | FlagHeight100},
		{Name: "minecraft:snow_layer", Flags: FlagsSolidGround | FlagVariable | FlagHeight8Inc | FlagGroundHeight, Boxes: snowLayer},
		{Name: "minecraft:carpet", Flags: FlagsSolidGround | FlagGroundHeight | FlagMinHeight16_1 | FlagIgnPassable, Boxes: height(1.0 / 16.0)},
		{Name: "minecraft:waterlily", Flags: FlagsSolidGround | FlagGroundHeight | FlagMinHeight16_1, Boxes: centred(1.0/16.0, 1.0/64.0),
			LegacyFlags: FlagHeight8_1},
		{Name: "minecraft:bed", Flags: FlagsSolidGround | FlagBed | FlagGroundHeight | FlagMinHeight16_9, Boxes: height(9.0 / 16.0)},
		{Name: "minecraft:shulker_box", Flags: FlagsSolidGround | FlagVariable, Boxes: fullBox, Since: game.V1_9, MapTo: "minecraft:stone",
			LegacyFlags: FlagGroundHeight},
		{Name: "minecraft:stone_slab", Flags: FlagsSolidGround | FlagVariable, Boxes: slab},
		{Name: "minecraft:oak_stairs", Flags: FlagsSolidGround | FlagVariable, Boxes: stairs},
		{Name: "minecraft:oak_fence", Flags: flagsFence, Boxes: connected(0.375, 0.375, 1.5)},
		{Name: "minecraft:oak_fence_gate", Flags: flagsGate, Boxes: fenceGate},
		{Name: "minecraft:cobblestone_wall", Flags: flagsFence, Boxes: connected(0.25, 5.0/16.0, 1.5)},
		{Name: "minecraft:iron_bars", Flags: flagsPane, Boxes: connected(7.0/16.0, 7.0/16.0, 1)},
		{Name: "minecraft:glass_pane", Flags: flagsPane, Boxes: connected(7.0/16.0, 7.0/16.0, 1)},
		{Name: "minecraft:trapdoor", Flags: FlagsSolidGround | FlagVariable | FlagPassableX4 | FlagGroundHeight | FlagMinHeight16_15, Boxes: trapdoor},
		{Name: "minecraft:cauldron", Flags: FlagsSolidGround | FlagVariable | FlagGroundHeight | FlagMinHeight16_5, Boxes: cauldron},
		{Name: "minecraft:hopper", Flags: FlagsSolidGround | FlagVariable | FlagGroundHeight | FlagMinHeight8_5, Boxes: hopper},
		{Name: "minecraft:chorus_plant", Flags: FlagsSolidGround | FlagVariable, Boxes: centred(0.1875, 0.8125),
			Since: game.V1_9, MapTo: "minecraft:stone"},
		{Name: "minecraft:ladder", Flags: FlagClimbable | FlagGround | FlagVariable, Boxes: ladder},
		{Name: "minecraft:vine", Flags: FlagClimbable | FlagAttachedClimbable},
		{Name: "minecraft:web", Flags: FlagWeb, Boxes: fullBox},
		{Name: "minecraft:sweet_berry_bush", Flags: FlagBerryBush, Boxes: fullBox, Since: game.V1_14, MapTo: "minecraft:tall_grass"},
		{Name: "minecraft:powder_snow", Flags: FlagPowderSnow, Boxes: fullBox, Since: game.V1_17, MapTo: "minecraft:snow_layer"},
		{Name: "minecraft:water", Flags: flagsWater, Boxes: fullBox},
		{Name: "minecraft:flowing_water", Flags: flagsWater, Boxes: fullBox},
		{Name: "minecraft:lava", Flags: flagsLava, Boxes: fullBox},
		{Name: "minecraft:flowing_lava", Flags: flagsLava, Boxes: fullBox},
		{Name: "minecraft:bubble_column", Flags: flagsWater | FlagBubbleColumn, Boxes: fullBox, Since: game.V1_13, MapTo: "minecraft:water"},
		{Name: "minecraft:kelp", Flags: flagsWater, Boxes: fullBox, Since: game.V1_13, MapTo: "minecraft:water"},
		{Name: "minecraft:seagrass", Flags: flagsWater, Boxes: fullBox, Since: game.V1_13, MapTo: "minecraft:water"},
		{Name: "minecraft:tall_grass"},
		{Name: "minecraft:torch"},
	}
}

// Vanilla returns a registry of the built-in block table with the legacy shape patch applied to
// clients older than 1.13.
func Vanilla() *Registry {
	return NewRegistry(VanillaDefinitions(), WithLegacyPatch(game.V1_13))
}
