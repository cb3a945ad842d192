package collision

import (
	"math"

	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
)

// Contact is the input of a workaround: a box or pseudo ray colliding with the block at Pos.
type Contact struct {
	Pos   cube.Pos
	Shape block.Shape
	Box   cube.BBox
	// FX, FY and FZ are the offset of the box minimum from the block origin.
	FX, FY, FZ float64
	// DX, DY and DZ are the total ray distance covered in DT, with DT in [0,1].
	DX, DY, DZ, DT float64
}

// minFY returns the lowest fractional y the contact reaches.
func (p Contact) minFY() float64 {
	return min(p.FY, p.FY+p.DY*p.DT)
}

// Workaround is a named correction for a block whose collision deviates from its bounding box. Applies
// selects the blocks it is responsible for; Passable decides if the contact may pass through the block.
type Workaround struct {
	Name     string
	Applies  func(g *Geometry, p Contact) bool
	Passable func(g *Geometry, p Contact) bool
}

// Workarounds is an ordered set of workarounds. The first workaround that applies to a contact decides.
type Workarounds struct {
	m *orderedmap.OrderedMap[string, Workaround]
}

// NewWorkarounds returns a set holding ws in order.
func NewWorkarounds(ws ...Workaround) *Workarounds {
	w := &Workarounds{m: orderedmap.NewOrderedMap[string, Workaround]()}
	for _, wa := range ws {
		w.m.Set(wa.Name, wa)
	}
	return w
}

// Get returns the workaround registered under name.
func (w *Workarounds) Get(name string) (Workaround, bool) {
	return w.m.Get(name)
}

// Names returns the names of the workarounds in evaluation order.
func (w *Workarounds) Names() []string {
	return w.m.Keys()
}

// Passable reports whether the contact may pass the block and the name of the deciding workaround.
func (w *Workarounds) Passable(g *Geometry, p Contact) (bool, string) {
	for el := w.m.Front(); el != nil; el = el.Next() {
		if el.Value.Applies(g, p) {
			return el.Value.Passable(g, p), el.Key
		}
	}
	return false, ""
}

// PassableWorkaround reports whether the contact may pass the block despite colliding with its bounds.
func (g *Geometry) PassableWorkaround(p Contact) bool {
	ok, _ := g.workarounds.Passable(g, p)
	return ok
}

// boxContact builds the contact of bb against the block at pos, covering the box extent as the ray.
func boxContact(bb cube.BBox, pos cube.Pos, s block.Shape) Contact {
	mn, mx := bb.Min(), bb.Max()
	return Contact{
		Pos:   pos,
		Shape: s,
		Box:   bb,
		FX:    mn[0] - float64(pos[0]),
		FY:    mn[1] - float64(pos[1]),
		FZ:    mn[2] - float64(pos[2]),
		DX:    mx[0] - mn[0],
		DY:    mx[1] - mn[1],
		DZ:    mx[2] - mn[2],
		DT:    1,
	}
}

const (
	thickFenceMargin   = 0.125
	thinFenceMargin    = 0.0625
	chorusPlantMargin  = 0.3
	centerInset        = 0.125
	thinFenceLowerPart = 0.974
)

// DefaultWorkarounds returns the vanilla workarounds.
func DefaultWorkarounds() *Workarounds {
	return NewWorkarounds(
		Workaround{
			Name: "passable_x4",
			Applies: func(_ *Geometry, p Contact) bool {
				return p.Shape.Flags.Has(block.FlagPassableX4) && p.Shape.Data&4 != 0
			},
			Passable: func(*Geometry, Contact) bool { return true },
		},
		Workaround{
			Name:    "thick_fence",
			Applies: flagApplies(block.FlagThickFence),
			Passable: func(_ *Geometry, p Contact) bool {
				return !CollidesFence(p.FX, p.FZ, p.DX, p.DZ, p.DT, thickFenceMargin)
			},
		},
		Workaround{
			Name:    "thin_fence",
			Applies: flagApplies(block.FlagThinFence),
			Passable: func(g *Geometry, p Contact) bool {
				if !CollidesFence(p.FX, p.FZ, p.DX, p.DZ, p.DT, thinFenceMargin) {
					return true
				}
				return p.minFY() < thinFenceLowerPart &&
					!g.CollidesBlock(p.Box, p.Pos, p.Shape, nil, p.Shape.Flags|block.FlagFakeBounds)
			},
		},
		Workaround{
			Name: "center_inset",
			Applies: func(g *Geometry, p Contact) bool {
				return p.Shape.Type == g.kinds.cauldron || p.Shape.Type == g.kinds.hopper
			},
			Passable: func(g *Geometry, p Contact) bool {
				if p.minFY() >= g.GroundMinHeight(p.Shape) {
					return IsInsideCenter(p.FX, p.FZ, p.DX, p.DZ, p.DT, centerInset)
				}
				return false
			},
		},
		Workaround{
			Name: "ground_height",
			Applies: func(g *Geometry, p Contact) bool {
				return p.Shape.Flags.Has(block.FlagGroundHeight) && g.GroundMinHeight(p.Shape) <= p.minFY()
			},
			Passable: func(*Geometry, Contact) bool { return true },
		},
		Workaround{
			Name: "chorus_plant",
			Applies: func(g *Geometry, p Contact) bool {
				return p.Shape.Type == g.kinds.chorusPlant
			},
			Passable: func(_ *Geometry, p Contact) bool {
				return !CollidesFence(p.FX, p.FZ, p.DX, p.DZ, p.DT, chorusPlantMargin)
			},
		},
	)
}

func flagApplies(f block.Flags) func(*Geometry, Contact) bool {
	return func(_ *Geometry, p Contact) bool {
		return p.Shape.Flags.Has(f)
	}
}

// CollidesFence tests a box or pseudo ray in x/z against the centre line of a fence-like block. It returns
// false only if start and end stay further than d from the centre on both axes within the same quadrant.
func CollidesFence(fx, fz, dx, dz, dt, d float64) bool {
	dFx, dFz := 0.5-fx, 0.5-fz
	if math.Abs(dFx) > d && math.Abs(dFz) > d {
		dFx2, dFz2 := 0.5-(fx+dx*dt), 0.5-(fz+dz*dt)
		if math.Abs(dFx2) > d && math.Abs(dFz2) > d && dFx*dFx2 > 0 && dFz*dFz2 > 0 {
			return false
		}
	}
	return true
}

// CollidesCenter reports whether a box or pseudo ray reaches the centre bounds of a block inset by inset.
func CollidesCenter(fx, fz, dx, dz, dt, inset float64) bool {
	low, high := inset, 1-inset
	xEnd, zEnd := fx+dx*dt, fz+dz*dt
	if xEnd < low && fx < low || xEnd >= high && fx >= high {
		return false
	}
	if zEnd < low && fz < low || zEnd >= high && fz >= high {
		return false
	}
	return true
}

// IsInsideCenter reports whether a box or pseudo ray stays entirely inside the centre bounds of a block inset
// by inset.
func IsInsideCenter(fx, fz, dx, dz, dt, inset float64) bool {
	low, high := inset, 1-inset
	xEnd, zEnd := fx+dx*dt, fz+dz*dt
	if xEnd < low || fx < low || xEnd >= high || fx >= high {
		return false
	}
	if zEnd < low || fz < low || zEnd >= high || fz >= high {
		return false
	}
	return true
}
