package block

import (
	"testing"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/stretchr/testify/require"
)

func TestRegistryVersionMapping(t *testing.T) {
	r := Vanilla()
	blueIce, ok := r.Lookup("minecraft:blue_ice")
	require.True(t, ok)
	ice := r.TypeOf("minecraft:ice")

	legacy := r.Shape(blueIce, 0, game.V1_12)
	require.Equal(t, ice, legacy.Type)
	require.True(t, legacy.Flags.Has(FlagIce))
	require.False(t, legacy.Flags.Has(FlagBlueIce))

	modern := r.Shape(blueIce, 0, game.V1_13)
	require.Equal(t, blueIce, modern.Type)
	require.True(t, modern.Flags.Has(FlagBlueIce))

	// Unknown versions resolve as the latest client.
	require.Equal(t, blueIce, r.Shape(blueIce, 0, game.VersionUnknown).Type)
}

func TestRegistryChainedMapping(t *testing.T) {
	r := Vanilla()
	honey := r.TypeOf("minecraft:honey_block")
	require.Equal(t, r.TypeOf("minecraft:slime"), r.Shape(honey, 0, game.V1_14).Type)
	require.Equal(t, r.TypeOf("minecraft:stone"), r.Shape(honey, 0, game.V1_7).Type)
	require.Equal(t, honey, r.Shape(honey, 0, game.V1_16).Type)

	bubble := r.TypeOf("minecraft:bubble_column")
	s := r.Shape(bubble, 0, game.V1_12)
	require.True(t, s.Flags.Has(FlagWater))
	require.False(t, s.Flags.Has(FlagBubbleColumn))
}

func TestRegistryLegacyPatch(t *testing.T) {
	r := Vanilla()
	farmland := r.TypeOf("minecraft:farmland")
	require.True(t, r.Flags(farmland, game.V1_8).Has(FlagMinHeight16_15))
	require.False(t, r.Flags(farmland, game.V1_13).Has(FlagMinHeight16_15))

	lily := r.TypeOf("minecraft:waterlily")
	require.True(t, r.Flags(lily, game.V1_12).Has(FlagHeight8_1))
	require.False(t, r.Flags(lily, game.V1_21).Has(FlagHeight8_1))

	// Without the option no legacy flags are applied.
	plain := NewRegistry(VanillaDefinitions())
	require.False(t, plain.Flags(plain.TypeOf("minecraft:farmland"), game.V1_8).Has(FlagMinHeight16_15))
}

func TestRegistryUnknown(t *testing.T) {
	r := Vanilla()
	require.Equal(t, TypeUnknown, r.TypeOf("minecraft:does_not_exist"))

	s := r.StateShape(State{Name: "minecraft:does_not_exist"}, game.V1_21)
	require.True(t, s.Flags.All(FlagsSolidGround))
	require.Equal(t, []cube.BBox{cube.Box(0, 0, 0, 1, 1, 1)}, s.Boxes)
	require.Equal(t, r.FailClosed().Fingerprint, s.Fingerprint)

	require.False(t, r.Air().HasBounds())
	require.Equal(t, "unknown", r.Name(Type(r.Len()+5)))
}

func TestRegistryWaterlogged(t *testing.T) {
	r := Vanilla()
	s := r.StateShape(State{Name: "minecraft:oak_stairs", Data: 1, Waterlogged: true}, game.V1_21)
	require.True(t, s.Waterlogged())
	require.False(t, r.StateShape(State{Name: "minecraft:oak_stairs", Data: 1}, game.V1_21).Waterlogged())
}

func TestRegistryDuplicatePanics(t *testing.T) {
	require.Panics(t, func() {
		NewRegistry([]Definition{{Name: "minecraft:stone"}, {Name: "minecraft:stone"}})
	})
	require.Panics(t, func() {
		NewRegistry([]Definition{{Name: "minecraft:new", Since: game.V1_16, MapTo: "minecraft:missing"}})
	})
}

func TestBoxesInterned(t *testing.T) {
	r := Vanilla()
	stone := r.Shape(r.TypeOf("minecraft:stone"), 0, game.V1_21)
	dirt := r.Shape(r.TypeOf("minecraft:dirt"), 3, game.V1_21)
	require.Equal(t, stone.Fingerprint, dirt.Fingerprint)
	require.Same(t, &stone.Boxes[0], &dirt.Boxes[0])
}

func TestShapeBuilders(t *testing.T) {
	for _, data := range []uint8{0, 1, 2, 3, 4, 5, 6, 7} {
		bbs := stairs(data)
		require.Len(t, bbs, 2)
		require.InDelta(t, 0.5, bbs[1].Height(), 1e-9)
		require.InDelta(t, 0.5*1*1+0.5*0.5*1, volume(bbs[0])+volume(bbs[1]), 1e-9)
	}

	post := connected(7.0/16.0, 7.0/16.0, 1)(0)
	require.Len(t, post, 1)
	require.InDelta(t, 0.125, post[0].Width(), 1e-9)

	ew := connected(7.0/16.0, 7.0/16.0, 1)(connectEast | connectWest)
	require.Len(t, ew, 1)
	require.InDelta(t, 1, ew[0].Width(), 1e-9)
	require.InDelta(t, 0.125, ew[0].Length(), 1e-9)

	north := connected(0.375, 0.375, 1.5)(connectNorth)
	require.Len(t, north, 1)
	require.InDelta(t, 0, north[0].Min()[2], 1e-9)
	require.InDelta(t, 0.625, north[0].Max()[2], 1e-9)

	open := trapdoor(4)
	require.InDelta(t, 1, open[0].Height(), 1e-9)
	require.InDelta(t, 3.0/16.0, trapdoor(0)[0].Height(), 1e-9)
	require.InDelta(t, 1, trapdoor(8)[0].Max()[1], 1e-9)

	require.InDelta(t, 0.125, snowLayer(0)[0].Height(), 1e-9)
	require.InDelta(t, 0.5, slab(0)[0].Height(), 1e-9)
	require.InDelta(t, 0.5, slab(1)[0].Min()[1], 1e-9)
}

func TestLiquidHeight(t *testing.T) {
	r := Vanilla()
	water := r.TypeOf("minecraft:water")
	air := r.Air()
	source := r.Shape(water, 0, game.V1_21)
	require.InDelta(t, 1-1.0/9.0, source.LiquidHeight(FlagWater, air, false), 1e-6)
	require.InDelta(t, 8.0/9.0, r.Shape(water, 8, game.V1_21).LiquidHeight(FlagWater, air, false), 1e-9)
	require.Equal(t, 1.0, source.LiquidHeight(FlagWater, source, false))
	require.InDelta(t, 8.0/9.0, source.LiquidHeight(FlagWater, source, true), 1e-9)
	require.Zero(t, source.LiquidHeight(FlagLava, air, false))
}

func volume(bb cube.BBox) float64 {
	return bb.Width() * bb.Height() * bb.Length()
}
