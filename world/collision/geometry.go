package collision

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Source resolves the shapes collision tests run against. Shape must never fail: positions that cannot be
// resolved are expected to come back as a full solid ground block.
type Source interface {
	Shape(pos cube.Pos) block.Shape
	Registry() *block.Registry
	Version() game.ClientVersion
	// MaxY returns the highest block y coordinate of the world.
	MaxY() int
}

// Geometry runs box versus block shape tests against a Source.
type Geometry struct {
	src         Source
	workarounds *Workarounds
	kinds       kinds
}

// kinds holds the block types treated individually by the ground tests.
type kinds struct {
	farmland, cauldron, hopper, chorusPlant block.Type
}

func resolveKinds(r *block.Registry) kinds {
	lookup := func(name string) block.Type {
		if t, ok := r.Lookup(name); ok {
			return t
		}
		// Never matches a resolved shape.
		return block.Type(r.Len())
	}
	return kinds{
		farmland:    lookup("minecraft:farmland"),
		cauldron:    lookup("minecraft:cauldron"),
		hopper:      lookup("minecraft:hopper"),
		chorusPlant: lookup("minecraft:chorus_plant"),
	}
}

// New returns a Geometry reading from src. A nil w uses DefaultWorkarounds.
func New(src Source, w *Workarounds) *Geometry {
	if w == nil {
		w = DefaultWorkarounds()
	}
	return &Geometry{src: src, workarounds: w, kinds: resolveKinds(src.Registry())}
}

// Source returns the source of the geometry.
func (g *Geometry) Source() Source {
	return g.src
}

// Shape returns the shape at pos.
func (g *Geometry) Shape(pos cube.Pos) block.Shape {
	return g.src.Shape(pos)
}

// IsFullBounds reports whether the primary bounds of s span the full block.
func IsFullBounds(s block.Shape) bool {
	bb, ok := s.Primary()
	if !ok {
		return false
	}
	mn, mx := bb.Min(), bb.Max()
	return mn[0] == 0 && mn[1] == 0 && mn[2] == 0 && mx[0] == 1 && mx[1] == 1 && mx[2] == 1
}

// IsSameShape reports whether the primary bounds of a and b are equal. Two shapes without bounds are the
// same; one shape without bounds never equals another.
func IsSameShape(a, b block.Shape) bool {
	pa, okA := a.Primary()
	pb, okB := b.Primary()
	if !okA || !okB {
		return okA == okB
	}
	if a.Fingerprint == b.Fingerprint {
		return true
	}
	return pa.Min() == pb.Min() && pa.Max() == pb.Max()
}
