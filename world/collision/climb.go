package collision

import (
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// CanClimbUp reports whether the block at pos lets legacy clients climb upwards. Climbables that do not
// need attaching always do; attached climbables need a solid block on one of their sides.
func (g *Geometry) CanClimbUp(pos cube.Pos) bool {
	s := g.src.Shape(pos)
	if !s.Flags.Has(block.FlagClimbable) {
		return false
	}
	if !s.Flags.Has(block.FlagAttachedClimbable) {
		return true
	}
	for _, face := range cube.HorizontalFaces() {
		if g.src.Shape(pos.Side(face)).Flags.Has(block.FlagSolid) {
			return true
		}
	}
	return false
}
