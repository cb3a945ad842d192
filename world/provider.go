package world

import (
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Provider reports the raw block states of a world. Block returns false for positions in regions that are
// not loaded. Implementations must be safe for concurrent use.
type Provider interface {
	Block(pos cube.Pos) (block.State, bool)
	// Range returns the vertical bounds of the world.
	Range() cube.Range
}

// Listener is notified of changes to the blocks of a World.
type Listener interface {
	BlockChanged(pos cube.Pos)
	ChunkUnloaded(pos ChunkPos)
}

// OverworldRange is the vertical range of an overworld dimension.
var OverworldRange = cube.Range{-64, 319}
