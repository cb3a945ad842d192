package environment

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// liquidTests holds the water membership test of every liquid algorithm.
var liquidTests = [...]func(k *classification, liquid block.Flags) bool{
	game.LiquidContracted:     contractedLiquid,
	game.LiquidHeightRelative: heightRelativeLiquid,
}

// lavaTests holds the lava membership test of every lava algorithm.
var lavaTests = [...]func(k *classification) bool{
	game.LavaFlooredBox:     flooredLava,
	game.LavaInsetCollide:   insetLava,
	game.LavaHeightRelative: func(k *classification) bool { return heightRelativeLiquid(k, block.FlagLava) },
}

// surfaceTests holds the ice contact test of every surface algorithm.
var surfaceTests = [...]func(k *classification, ice block.Flags) bool{
	game.SurfaceLegacy:     legacyIce,
	game.SurfaceSupporting: supportingIce,
}

// contractedLiquid tests the box contracted by 0.4 vertically against any liquid block whose surface reaches
// the bottom of the box.
func contractedLiquid(k *classification, liquid block.Flags) bool {
	mn, mx := k.bb.Min(), k.bb.Max()
	minX, maxX := game.BlockCoord(mn[0]+game.LiquidBoxInset), game.CeilCoord(mx[0]-game.LiquidBoxInset)
	minY := game.BlockCoord(mn[1] + game.LiquidBoxInset + game.LegacyLiquidContract)
	maxY := game.CeilCoord(mx[1] - game.LiquidBoxInset - game.LegacyLiquidContract)
	minZ, maxZ := game.BlockCoord(mn[2]+game.LiquidBoxInset), game.CeilCoord(mx[2]-game.LiquidBoxInset)
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				h := k.view.LiquidHeight(cube.Pos{x, y, z}, liquid)
				if h != 0 && float64(y)+h >= mn[1] {
					return true
				}
			}
		}
	}
	return false
}

// heightRelativeLiquid tests the box inset by 0.001 against the surface height of every liquid block it
// overlaps.
func heightRelativeLiquid(k *classification, liquid block.Flags) bool {
	mn, mx := k.inset().Min(), k.inset().Max()
	minX, maxX := game.BlockCoord(mn[0]), game.CeilCoord(mx[0])
	minY, maxY := game.BlockCoord(mn[1]), game.CeilCoord(mx[1])
	minZ, maxZ := game.BlockCoord(mn[2]), game.CeilCoord(mx[2])
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				h := k.view.LiquidHeight(cube.Pos{x, y, z}, liquid)
				if h != 0 && float64(y)+h >= mn[1] {
					return true
				}
			}
		}
	}
	return false
}

// flooredLava tests the floored blocks of the box contracted by 0.1 horizontally and 0.4 vertically for lava.
func flooredLava(k *classification) bool {
	mn, mx := k.bb.Min(), k.bb.Max()
	minX, maxX := game.BlockCoord(mn[0]+0.1), game.BlockCoord(mx[0]-0.1+1)
	minY, maxY := game.BlockCoord(mn[1]+0.4), game.BlockCoord(mx[1]-0.4+1)
	minZ, maxZ := game.BlockCoord(mn[2]+0.1), game.BlockCoord(mx[2]-0.1+1)
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				if k.view.Flags(cube.Pos{x, y, z}).Has(block.FlagLava) {
					return true
				}
			}
		}
	}
	return false
}

func insetLava(k *classification) bool {
	return k.geo.Collides(k.inset(), block.FlagLava)
}

// legacyIce tests a box of half the entity width at the feet.
func legacyIce(k *classification, ice block.Flags) bool {
	if !k.onGround() {
		return false
	}
	mn, mx := k.bb.Min(), k.bb.Max()
	m := game.HorizontalMargin(k.bb)
	return k.geo.Collides(game.Box(mn[0]+m, mn[1]-k.yOnGround, mn[2]+m, mx[0]-m, mn[1], mx[2]-m), ice)
}

func supportingIce(k *classification, ice block.Flags) bool {
	return k.onGround() && k.view.Flags(k.below()).Has(ice)
}
