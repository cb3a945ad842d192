package collision

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Tristate is the ground judgement of a single block.
type Tristate uint8

const (
	// No means the column holds no ground for the box, further down included.
	No Tristate = iota
	// Maybe means this block is no ground, but a block further down might be.
	Maybe
	Yes
)

func (t Tristate) String() string {
	switch t {
	case No:
		return "no"
	case Maybe:
		return "maybe"
	default:
		return "yes"
	}
}

// aboveClimbHeight is the minimum height above the block tested against the block above it.
const aboveClimbHeight = 1.49

var minHeights = [...]struct {
	flag   block.Flags
	height float64
}{
	{block.FlagMinHeight16_1, 0.0625},
	{block.FlagMinHeight8_1, 0.125},
	{block.FlagMinHeight4_1, 0.25},
	{block.FlagMinHeight16_5, 0.3125},
	{block.FlagMinHeight16_7, 0.4375},
	{block.FlagMinHeight16_9, 0.5625},
	{block.FlagMinHeight8_5, 0.625},
	{block.FlagMinHeight16_11, 0.6875},
	{block.FlagMinHeight16_13, 0.8125},
	{block.FlagMinHeight16_14, 0.875},
	{block.FlagMinHeight16_15, 0.9375},
}

// GroundMinHeight returns the height above the block origin a box must be at to stand on s.
func (g *Geometry) GroundMinHeight(s block.Shape) float64 {
	primary, ok := s.Primary()
	switch {
	case s.Flags.Has(block.FlagHeight8Inc):
		return 0.125 * float64(s.Data%8)
	case s.Flags.Has(block.FlagHeight150):
		return 1.5
	case s.Flags.Has(block.FlagThickFence):
		if !ok {
			return 1
		}
		return min(1, primary.Max()[1])
	case !ok:
		return 0
	case s.Flags.Has(block.FlagGroundHeight):
		for _, h := range minHeights {
			if s.Flags.Has(h.flag) {
				return h.height
			}
		}
		if s.Type == g.kinds.farmland || s.Flags.Has(block.FlagPassableX4) && s.Data&4 != 0 {
			return primary.Max()[1]
		}
		return 0
	}
	height := primary.Max()[1]
	for _, bb := range s.Boxes[1:] {
		height = min(height, bb.Max()[1])
	}
	return height
}

// OnGround reports whether the box bb stands on ground. The top of bb is meant to be the foot level, its
// bottom the foot level minus the ground margin. Blocks with any of the ignore flags are not ground.
//
// Columns are scanned top-down from the foot level to GroundScanDepth below bb: the first block judged Yes
// wins, a block judged No ends the column.
func (g *Geometry) OnGround(bb cube.BBox, ignore block.Flags) bool {
	mn, mx := bb.Min(), bb.Max()
	maxBlockY := g.src.MaxY()
	minY := game.BlockCoord(mn[1] - game.GroundScanDepth)
	if minY > maxBlockY {
		return false
	}
	maxY := min(game.BlockCoord(mx[1]), maxBlockY)
	minX, maxX := game.BlockCoord(mn[0]), game.BlockCoord(mx[0])
	minZ, maxZ := game.BlockCoord(mn[2]), game.BlockCoord(mx[2])
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			var above *block.Shape
		column:
			for y := maxY; y >= minY; y-- {
				pos := cube.Pos{x, y, z}
				s := g.src.Shape(pos)
				switch g.GroundAt(bb, ignore, pos, s, above) {
				case Yes:
					return true
				case Maybe:
					above = &s
				case No:
					break column
				}
			}
		}
	}
	return false
}

// GroundAt judges whether the block s at pos is ground for bb. above is the shape of the block above pos
// if already known.
func (g *Geometry) GroundAt(bb cube.BBox, ignore block.Flags, pos cube.Pos, s block.Shape, above *block.Shape) Tristate {
	if !s.Flags.Has(block.FlagGround) || s.Flags.Has(ignore) {
		return Maybe
	}
	if !s.HasBounds() {
		return Yes
	}
	if !g.CollidesBlock(bb, pos, s, above, s.Flags) {
		return Maybe
	}

	y := float64(pos[1])
	footHeight := bb.Max()[1] - y
	if g.PassableWorkaround(boxContact(bb, pos, s)) {
		if !s.Flags.Has(block.FlagGroundHeight) || g.GroundMinHeight(s) > footHeight {
			return Maybe
		}
	}
	if g.GroundMinHeight(s) > footHeight {
		if IsFullBounds(s) {
			return No
		}
		return Maybe
	}

	if footHeight < 1 || pos[1] >= g.src.MaxY() {
		return Yes
	}
	abovePos := pos.Side(cube.FaceUp)
	if above == nil {
		a := g.src.Shape(abovePos)
		above = &a
	}
	if above.Flags.Has(block.FlagIgnPassable) {
		return Yes
	}
	if !above.Flags.Has(block.FlagGround) || above.Flags.Has(block.FlagLiquid) || above.Flags.Has(ignore) {
		return Yes
	}

	variable := s.Flags.Has(block.FlagVariable) || above.Flags.Has(block.FlagVariable)
	if !variable && s.Type == above.Type {
		if IsFullBounds(s) {
			return No
		}
		return Maybe
	}
	if !above.HasBounds() {
		return Yes
	}
	mn, mx := bb.Min(), bb.Max()
	tall := cube.Box(mn[0], mn[1], mn[2], mx[0], max(mx[1], aboveClimbHeight+y), mx[2])
	if !g.CollidesBlock(tall, abovePos, *above, nil, above.Flags) {
		return Yes
	}
	if g.PassableWorkaround(boxContact(bb, abovePos, *above)) {
		return Yes
	}
	if IsFullBounds(*above) {
		return No
	}
	if variable {
		if IsSameShape(s, *above) {
			return Maybe
		}
		return Yes
	}
	return Maybe
}
