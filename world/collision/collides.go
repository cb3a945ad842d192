package collision

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"golang.org/x/exp/slices"
)

// overlapEpsilon widens the floored bounds of OverlapRegion.
const overlapEpsilon = 1e-7

// OverlapRegion returns every block position bb may touch, sorted by x, z and then y. The region is a
// superset of the positions actually colliding; CollidingPositions refines it.
func OverlapRegion(bb cube.BBox) []cube.Pos {
	mn, mx := bb.Min(), bb.Max()
	minX, maxX := game.BlockCoord(mn[0]-overlapEpsilon), game.BlockCoord(mx[0]+overlapEpsilon)
	minY, maxY := game.BlockCoord(mn[1]-overlapEpsilon), game.BlockCoord(mx[1]+overlapEpsilon)
	minZ, maxZ := game.BlockCoord(mn[2]-overlapEpsilon), game.BlockCoord(mx[2]+overlapEpsilon)

	region := make([]cube.Pos, 0, (maxX-minX+1)*(maxY-minY+1)*(maxZ-minZ+1))
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			for y := minY; y <= maxY; y++ {
				region = append(region, cube.Pos{x, y, z})
			}
		}
	}
	return region
}

// CollidingPositions returns the positions whose blocks match flags and collide with bb, sorted by x, z
// and then y.
func (g *Geometry) CollidingPositions(bb cube.BBox, flags block.Flags) []cube.Pos {
	var out []cube.Pos
	g.eachColumn(bb, flags, func(pos cube.Pos, s block.Shape, above *block.Shape) bool {
		if s.Flags.Has(flags) && s.HasBounds() && g.CollidesBlock(bb, pos, s, above, s.Flags) {
			out = append(out, pos)
		}
		return false
	})
	slices.SortFunc(out, comparePos)
	return slices.Compact(out)
}

// Collides reports whether bb collides with any block matching flags. Fence-height blocks below bb are
// included when FlagHeight150 is requested.
func (g *Geometry) Collides(bb cube.BBox, flags block.Flags) bool {
	return g.eachColumn(bb, flags, func(pos cube.Pos, s block.Shape, above *block.Shape) bool {
		return s.Flags.Has(flags) && s.HasBounds() && g.CollidesBlock(bb, pos, s, above, s.Flags)
	})
}

// CollidesType reports whether bb collides with a block of type t.
func (g *Geometry) CollidesType(bb cube.BBox, t block.Type) bool {
	return g.eachColumn(bb, g.src.Registry().Flags(t, g.src.Version()), func(pos cube.Pos, s block.Shape, above *block.Shape) bool {
		return s.Type == t && s.HasBounds() && g.CollidesBlock(bb, pos, s, above, s.Flags)
	})
}

// eachColumn walks the positions overlapped by bb top-down per x/z column, passing the shape of the
// position and the shape above it within the column. It stops as soon as f returns true.
func (g *Geometry) eachColumn(bb cube.BBox, flags block.Flags, f func(pos cube.Pos, s block.Shape, above *block.Shape) bool) bool {
	mn, mx := bb.Min(), bb.Max()
	extra := 0.0
	if flags.Has(block.FlagHeight150) {
		extra = game.Height150Margin
	}
	minX, maxX := game.BlockCoord(mn[0]), game.BlockCoord(mx[0])
	minY, maxY := game.BlockCoord(mn[1]-extra), min(game.BlockCoord(mx[1]), g.src.MaxY())
	minZ, maxZ := game.BlockCoord(mn[2]), game.BlockCoord(mx[2])
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			var above *block.Shape
			for y := maxY; y >= minY; y-- {
				pos := cube.Pos{x, y, z}
				s := g.src.Shape(pos)
				if f(pos, s, above) {
					return true
				}
				above = &s
			}
		}
	}
	return false
}

func comparePos(a, b cube.Pos) int {
	for _, i := range [3]int{0, 2, 1} {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
