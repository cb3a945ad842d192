package block

import (
	"sort"

	"github.com/KweezyCode/NoCheatPlus/assert"
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/df-mc/dragonfly/server/block/cube"
	"golang.org/x/exp/slices"
)

// Definition describes a block type. Boxes receives the block data (0-15) and returns the local boxes, or
// nil for blocks without bounds.
type Definition struct {
	Name  string
	Flags Flags
	Boxes func(data uint8) []cube.BBox
	// Since is the first client version knowing this block. Older clients see MapTo instead.
	Since game.ClientVersion
	MapTo string
	// LegacyFlags are added for clients older than the registry's legacy patch threshold.
	LegacyFlags Flags
}

// Registry is an immutable table of block definitions with every (type, data, version era) shape resolved
// at construction. A Registry is safe for concurrent use.
type Registry struct {
	defs   []Definition
	byName map[string]Type

	legacyBelow game.ClientVersion
	// eras holds the sorted version thresholds at which any shape changes.
	eras   []game.ClientVersion
	shapes [][][16]Shape
}

// Option configures a Registry at construction.
type Option func(r *Registry)

// WithLegacyPatch applies each definition's LegacyFlags for clients older than v.
func WithLegacyPatch(v game.ClientVersion) Option {
	return func(r *Registry) {
		r.legacyBelow = v
	}
}

// NewRegistry builds a registry from defs. Air and the unknown type are registered first.
func NewRegistry(defs []Definition, opts ...Option) *Registry {
	r := &Registry{byName: make(map[string]Type, len(defs)+2)}
	for _, o := range opts {
		o(r)
	}

	r.add(Definition{Name: "minecraft:air"})
	r.add(Definition{Name: "unknown", Flags: FlagsSolidGround | FlagUnknown, Boxes: fullBox})
	for _, d := range defs {
		if d.Name == "minecraft:air" {
			continue
		}
		r.add(d)
	}
	for _, d := range r.defs {
		if d.MapTo != "" {
			_, ok := r.byName[d.MapTo]
			assert.IsTrue(ok, "block %s maps to unregistered block %s", d.Name, d.MapTo)
		}
	}

	seen := map[game.ClientVersion]struct{}{}
	for _, d := range r.defs {
		if d.Since.Known() {
			seen[d.Since] = struct{}{}
		}
	}
	if r.legacyBelow.Known() {
		seen[r.legacyBelow] = struct{}{}
	}
	for v := range seen {
		r.eras = append(r.eras, v)
	}
	slices.Sort(r.eras)

	interned := map[uint64][]cube.BBox{}
	r.shapes = make([][][16]Shape, len(r.eras)+1)
	for era := range r.shapes {
		rep := game.VersionUnknown
		if era > 0 {
			rep = r.eras[era-1]
		}
		r.shapes[era] = make([][16]Shape, len(r.defs))
		for t := range r.defs {
			for data := 0; data < 16; data++ {
				s := r.resolve(Type(t), uint8(data), rep)
				if s.Boxes != nil {
					if boxes, ok := interned[s.Fingerprint]; ok {
						s.Boxes = boxes
					} else {
						interned[s.Fingerprint] = s.Boxes
					}
				}
				r.shapes[era][t][data] = s
			}
		}
	}
	return r
}

func (r *Registry) add(d Definition) {
	_, exists := r.byName[d.Name]
	assert.IsTrue(!exists, "block %s registered twice", d.Name)
	r.byName[d.Name] = Type(len(r.defs))
	r.defs = append(r.defs, d)
}

// resolve computes the shape of (t, data) as seen by a client of version rep. rep is VersionUnknown for
// the oldest era.
func (r *Registry) resolve(t Type, data uint8, rep game.ClientVersion) Shape {
	d := r.defs[t]
	for d.Since.Known() && rep < d.Since && d.MapTo != "" {
		t = r.byName[d.MapTo]
		d = r.defs[t]
	}

	flags := d.Flags
	if r.legacyBelow.Known() && rep < r.legacyBelow {
		flags |= d.LegacyFlags
	}
	s := Shape{Type: t, Data: data, Flags: flags}
	if d.Boxes != nil {
		s.Boxes = d.Boxes(data)
		for _, bb := range s.Boxes {
			mn, mx := bb.Min(), bb.Max()
			assert.IsTrue(mn[0] >= 0 && mn[1] >= 0 && mn[2] >= 0 && mx[0] <= 1 && mx[1] <= 1.5 && mx[2] <= 1,
				"block %s data %d has box %v outside of the block", d.Name, data, bb)
		}
		s.Fingerprint = fingerprint(s.Boxes)
	}
	return s
}

// era returns the index of the version era v belongs to.
func (r *Registry) era(v game.ClientVersion) int {
	v = v.OrLatest()
	return sort.Search(len(r.eras), func(i int) bool { return r.eras[i] > v })
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// TypeOf returns the type registered under name, or TypeUnknown.
func (r *Registry) TypeOf(name string) Type {
	if t, ok := r.byName[name]; ok {
		return t
	}
	return TypeUnknown
}

// Name returns the name of t.
func (r *Registry) Name(t Type) string {
	if int(t) >= len(r.defs) {
		return "unknown"
	}
	return r.defs[t].Name
}

// Len returns the number of registered types, including air and the unknown type.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Shape returns the shape of (t, data) for clients of version v.
func (r *Registry) Shape(t Type, data uint8, v game.ClientVersion) Shape {
	if int(t) >= len(r.defs) {
		t = TypeUnknown
	}
	return r.shapes[r.era(v)][t][data&0xF]
}

// StateShape resolves a raw state for clients of version v. Waterlogged states before
// definitions know them are still flagged; version gating is left to the caller.
func (r *Registry) StateShape(st State, v game.ClientVersion) Shape {
	s := r.Shape(r.TypeOf(st.Name), st.Data, v)
	if st.Waterlogged {
		s.Flags |= FlagWaterlogged
	}
	return s
}

// Flags returns the flags of t for clients of version v.
func (r *Registry) Flags(t Type, v game.ClientVersion) Flags {
	return r.Shape(t, 0, v).Flags
}

// FailClosed returns the shape assumed for unavailable positions: a full solid ground block.
func (r *Registry) FailClosed() Shape {
	return r.shapes[0][TypeUnknown][0]
}

// Air returns the air shape.
func (r *Registry) Air() Shape {
	return r.shapes[0][TypeAir][0]
}
