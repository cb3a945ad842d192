package block

import (
	"encoding/binary"
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/zeebo/xxh3"
)

// Type identifies a block definition within a Registry.
type Type uint16

const (
	// TypeAir is always the first registered type.
	TypeAir Type = iota
	// TypeUnknown is used for names a registry does not know. It resolves as a full solid block.
	TypeUnknown
)

// State is the raw block state a Provider reports for a coordinate.
type State struct {
	Name        string
	Data        uint8
	Waterlogged bool
}

// Shape is the resolved collision shape and flag set of a block state for one client version era.
// Shapes are immutable; Boxes is shared between equal shapes and must not be modified.
type Shape struct {
	Type  Type
	Data  uint8
	Flags Flags
	// Boxes are relative to the block origin. The first box is the primary bounds. A nil slice means the
	// block has no bounds at all.
	Boxes []cube.BBox
	// Fingerprint is an xxh3 hash of Boxes, equal for equal box lists.
	Fingerprint uint64
}

// HasBounds reports whether the shape has any bounds.
func (s Shape) HasBounds() bool {
	return len(s.Boxes) != 0
}

// Primary returns the primary bounds of the shape.
func (s Shape) Primary() (cube.BBox, bool) {
	if len(s.Boxes) == 0 {
		return cube.BBox{}, false
	}
	return s.Boxes[0], true
}

// Waterlogged reports whether the state was waterlogged.
func (s Shape) Waterlogged() bool {
	return s.Flags.Has(FlagWaterlogged)
}

// LiquidHeight returns the fill height in [0,1] of the shape for the liquid flag given, given the shape
// directly above it. With clearDefinition, a liquid topped by the same liquid is LiquidHeightLowered high.
func (s Shape) LiquidHeight(liquid Flags, above Shape, clearDefinition bool) float64 {
	if !s.Flags.Has(liquid) {
		return 0
	}
	if above.Flags.Has(liquid) {
		if clearDefinition {
			return liquidHeightLowered
		}
		return 1
	}
	if s.Data >= 8 {
		return liquidHeightLowered
	}
	return float64(1 - float32(s.Data+1)/9)
}

const liquidHeightLowered = 8.0 / 9.0

func fingerprint(boxes []cube.BBox) uint64 {
	if boxes == nil {
		return 0
	}
	buf := make([]byte, 0, len(boxes)*48)
	for _, bb := range boxes {
		mn, mx := bb.Min(), bb.Max()
		for _, v := range [6]float64{mn[0], mn[1], mn[2], mx[0], mx[1], mx[2]} {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}
	return xxh3.Hash(buf)
}
