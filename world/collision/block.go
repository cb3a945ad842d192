package collision

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// bounds is a mutable copy of the primary bounds of a shape.
type bounds struct {
	minX, minY, minZ, maxX, maxY, maxZ float64
}

func boundsOf(bb cube.BBox) bounds {
	mn, mx := bb.Min(), bb.Max()
	return bounds{mn[0], mn[1], mn[2], mx[0], mx[1], mx[2]}
}

// CollidesBlock reports whether bb collides with the block s at pos given the flags passed, which are
// normally the flags of s with FlagCollideEdges or FlagFakeBounds mixed in. above is the shape directly
// above pos and may be nil, in which case it is looked up when needed. Workarounds are not applied.
func (g *Geometry) CollidesBlock(bb cube.BBox, pos cube.Pos, s block.Shape, above *block.Shape, flags block.Flags) bool {
	primary, ok := s.Primary()
	if !ok {
		return false
	}
	b := boundsOf(primary)
	if flags.Has(block.FlagXZ100) {
		b.minX, b.minZ, b.maxX, b.maxZ = 0, 0, 1, 1
	}

	switch {
	case flags.Has(block.FlagHeight8Inc):
		b.minY, b.maxY = 0, 0.125*float64(s.Data%8)
	case flags.Has(block.FlagHeight150):
		b.minY, b.maxY = 0, 1.5
	case flags.Has(block.FlagHeight100):
		b.minY, b.maxY = 0, 1
	case flags.Has(block.FlagHeight8SimDec):
		b.minY, b.maxY = 0, g.liquidBoundsHeight(pos, s, above, flags)
	case flags.Has(block.FlagHeight8_1):
		b.minY, b.maxY = 0, 0.125
	}
	if flags.Has(block.FlagFakeBounds) {
		b.fakePaneBounds()
	}

	mn, mx := bb.Min(), bb.Max()
	x, y, z := float64(pos[0]), float64(pos[1]), float64(pos[2])
	allowEdge := !flags.Has(block.FlagCollideEdges)
	if overlaps(mn, mx, b, x, y, z, allowEdge) {
		return true
	}
	for _, sub := range s.Boxes[1:] {
		if overlaps(mn, mx, boundsOf(sub), x, y, z, allowEdge) {
			return true
		}
	}
	return false
}

// overlaps tests b offset by (x, y, z) against the box spanned by mn and mx. Touching a max edge of b only
// counts if b does not reach the block boundary on that axis or edges are disallowed.
func overlaps(mn, mx [3]float64, b bounds, x, y, z float64, allowEdge bool) bool {
	if mn[0] > b.maxX+x || mx[0] < b.minX+x || mn[1] > b.maxY+y || mx[1] < b.minY+y || mn[2] > b.maxZ+z || mx[2] < b.minZ+z {
		return false
	}
	if mn[0] == b.maxX+x && (b.maxX < 1 || allowEdge) ||
		mn[1] == b.maxY+y && (b.maxY < 1 || allowEdge) ||
		mn[2] == b.maxZ+z && (b.maxZ < 1 || allowEdge) {
		return false
	}
	return true
}

// liquidBoundsHeight returns the collision height of a liquid. It is the fill height the shape cache reports,
// so falling liquid is lowered the same way for collisions and for flow.
func (g *Geometry) liquidBoundsHeight(pos cube.Pos, s block.Shape, above *block.Shape, flags block.Flags) float64 {
	var liquid block.Flags
	switch {
	case flags.Has(block.FlagLava):
		liquid = block.FlagLava
	case flags.Has(block.FlagWater):
		liquid = block.FlagWater
	default:
		return game.LiquidHeightLowered
	}
	if above == nil {
		a := g.src.Shape(pos.Side(cube.FaceUp))
		above = &a
	}
	s.Flags |= liquid
	return s.LiquidHeight(liquid, *above, false)
}

// fakePaneBounds corrects the bounds of thin panes to the half block they extend into.
func (b *bounds) fakePaneBounds() {
	lengthZ, lengthX := b.maxZ-b.minZ, b.maxX-b.minX
	switch {
	case lengthZ == 0.125 && lengthX != 1:
		if b.minX == 0 {
			b.maxX = 0.5
		}
		if b.maxX == 1 {
			b.minX = 0.5
		}
	case lengthX == 0.125 && lengthZ != 1:
		if b.minZ == 0 {
			b.maxZ = 0.5
		}
		if b.maxZ == 1 {
			b.minZ = 0.5
		}
	case lengthX == lengthZ && lengthX != 1:
		switch {
		case b.maxX == 0.5625:
			b.maxX = 0.5
		case b.maxZ == 0.5625:
			b.maxZ = 0.5
		case b.minX == 0.4375:
			b.minX = 0.5
		case b.minZ == 0.4375:
			b.minZ = 0.5
		}
	}
}
