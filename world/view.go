package world

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// View reads shapes of a ShapeCache for one client version. Unavailable positions resolve as the registry's
// fail-closed shape, a full solid ground block, and are counted.
type View struct {
	cache       *ShapeCache
	version     game.ClientVersion
	unavailable int
}

// Version ...
func (v *View) Version() game.ClientVersion {
	return v.version
}

// Registry ...
func (v *View) Registry() *block.Registry {
	return v.cache.registry
}

// MaxY returns the highest block y coordinate of the world.
func (v *View) MaxY() int {
	return v.cache.Range().Max()
}

// MinY returns the lowest block y coordinate of the world.
func (v *View) MinY() int {
	return v.cache.Range().Min()
}

// Shape returns the shape at pos.
func (v *View) Shape(pos cube.Pos) block.Shape {
	s, err := v.cache.ShapeAt(pos, v.version)
	if err != nil {
		v.unavailable++
		return v.cache.registry.FailClosed()
	}
	return s
}

// Flags returns the flags of the block at pos.
func (v *View) Flags(pos cube.Pos) block.Flags {
	return v.Shape(pos).Flags
}

// Type returns the block type at pos.
func (v *View) Type(pos cube.Pos) block.Type {
	return v.Shape(pos).Type
}

// LiquidHeight returns the fill height of the liquid flag passed at pos. Unavailable positions hold no liquid.
func (v *View) LiquidHeight(pos cube.Pos, liquid block.Flags) float64 {
	h, err := v.cache.LiquidHeightAt(pos, liquid, v.version)
	if err != nil {
		v.unavailable++
		return 0
	}
	return h
}

// Unavailable returns how many reads of the view fell back to the fail-closed shape.
func (v *View) Unavailable() int {
	return v.unavailable
}
