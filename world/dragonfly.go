package world

import (
	"strings"

	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
)

// BlockSource is the part of a dragonfly world transaction read by DragonflyProvider. Block returns nil
// for positions that are not loaded.
type BlockSource interface {
	Block(pos cube.Pos) world.Block
}

// LiquidSource is optionally implemented by a BlockSource to report the liquid layer of a position.
type LiquidSource interface {
	Liquid(pos cube.Pos) (world.Liquid, bool)
}

// DragonflyProvider adapts a dragonfly block source to a Provider, converting encoded block properties to
// block data.
type DragonflyProvider struct {
	src BlockSource
	rng cube.Range
}

// NewDragonflyProvider ...
func NewDragonflyProvider(src BlockSource, rng cube.Range) *DragonflyProvider {
	return &DragonflyProvider{src: src, rng: rng}
}

// Range ...
func (p *DragonflyProvider) Range() cube.Range {
	return p.rng
}

// Block ...
func (p *DragonflyProvider) Block(pos cube.Pos) (block.State, bool) {
	b := p.src.Block(pos)
	if b == nil {
		return block.State{}, false
	}
	st := StateOf(b)
	if ls, ok := p.src.(LiquidSource); ok && !strings.Contains(st.Name, "water") {
		if l, ok := ls.Liquid(pos); ok {
			name, _ := l.EncodeBlock()
			st.Waterlogged = strings.HasSuffix(name, "water")
		}
	}
	return st, true
}

// StateOf converts a dragonfly block to a raw state.
func StateOf(b world.Block) block.State {
	name, props := b.EncodeBlock()
	return block.State{Name: name, Data: dataOf(name, props)}
}

var (
	// facing_direction 2..5 is north, south, west, east.
	facingDirection = [6]uint8{0, 0, 0, 2, 3, 1}
	// weirdo_direction 0..3 is east, west, south, north.
	weirdoDirection = [4]uint8{1, 3, 2, 0}
)

func dataOf(name string, props map[string]any) (data uint8) {
	if v, ok := props["liquid_depth"].(int32); ok {
		return uint8(v) & 0xF
	}
	if v, ok := props["height"].(int32); ok {
		return uint8(v) & 0x7
	}
	if v, ok := props["minecraft:vertical_half"].(string); ok {
		if strings.Contains(name, "double") {
			return 2
		}
		if v == "top" {
			return 1
		}
		return 0
	}

	if v, ok := props["facing_direction"].(int32); ok && v >= 0 && int(v) < len(facingDirection) {
		data = facingDirection[v]
	} else if v, ok := props["weirdo_direction"].(int32); ok && v >= 0 && int(v) < len(weirdoDirection) {
		data = weirdoDirection[v]
	} else if v, ok := props["direction"].(int32); ok {
		data = uint8(v) & 3
	} else if v, ok := props["minecraft:cardinal_direction"].(string); ok {
		switch v {
		case "east":
			data = 1
		case "south":
			data = 2
		case "west":
			data = 3
		}
	}

	if open, _ := props["open_bit"].(bool); open {
		data |= 4
	}
	if upside, _ := props["upside_down_bit"].(bool); upside {
		if strings.Contains(name, "trapdoor") {
			data |= 8
		} else {
			data |= 4
		}
	}
	return data
}
