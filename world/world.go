package world

import (
	"math"

	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// ChunkPos is the position of a 16x16 block column.
type ChunkPos = protocol.ChunkPos

// ChunkPosOf returns the chunk column holding pos.
func ChunkPosOf(pos cube.Pos) ChunkPos {
	return ChunkPos{int32(pos[0]) >> 4, int32(pos[2]) >> 4}
}

// World is an in-memory Provider of block states, organised in chunk columns. Positions in chunks that
// were never loaded are unavailable.
type World struct {
	rng          cube.Range
	lastCleanPos ChunkPos

	chunks    map[ChunkPos]map[cube.Pos]block.State
	listeners []Listener

	logger *logrus.Logger

	deadlock.RWMutex
}

// New creates an empty World with the vertical range passed. The logger may be nil.
func New(rng cube.Range, logger *logrus.Logger) *World {
	return &World{
		rng:    rng,
		chunks: make(map[ChunkPos]map[cube.Pos]block.State),
		logger: logger,
	}
}

// Subscribe registers l to be notified of block changes and unloaded chunks.
func (w *World) Subscribe(l Listener) {
	w.Lock()
	defer w.Unlock()
	w.listeners = append(w.listeners, l)
}

// Range ...
func (w *World) Range() cube.Range {
	return w.rng
}

// LoadChunk marks the chunk passed as loaded. Blocks not set explicitly are air.
func (w *World) LoadChunk(pos ChunkPos) {
	w.Lock()
	defer w.Unlock()

	if _, ok := w.chunks[pos]; ok {
		return
	}
	w.chunks[pos] = make(map[cube.Pos]block.State)
	if w.logger != nil {
		w.logger.WithField("chunkPos", pos).Debug("loaded chunk")
	}
}

// UnloadChunk removes the chunk passed and all of its blocks.
func (w *World) UnloadChunk(pos ChunkPos) {
	w.Lock()
	if _, ok := w.chunks[pos]; !ok {
		w.Unlock()
		return
	}
	delete(w.chunks, pos)
	listeners := w.listeners
	w.Unlock()

	for _, l := range listeners {
		l.ChunkUnloaded(pos)
	}
	if w.logger != nil {
		w.logger.WithField("chunkPos", pos).Debug("unloaded chunk")
	}
}

// Loaded reports whether the chunk holding pos is loaded.
func (w *World) Loaded(pos cube.Pos) bool {
	w.RLock()
	defer w.RUnlock()
	_, ok := w.chunks[ChunkPosOf(pos)]
	return ok
}

// Block returns the state at pos. Positions outside of the vertical range of the world are air.
func (w *World) Block(pos cube.Pos) (block.State, bool) {
	w.RLock()
	defer w.RUnlock()

	c, ok := w.chunks[ChunkPosOf(pos)]
	if !ok {
		return block.State{}, false
	}
	if pos.OutOfBounds(w.rng) {
		return air, true
	}
	if st, ok := c[pos]; ok {
		return st, true
	}
	return air, true
}

// SetBlock sets the state at pos. It returns false if the chunk holding pos is not loaded or pos is outside
// of the vertical range.
func (w *World) SetBlock(pos cube.Pos, st block.State) bool {
	w.Lock()
	c, ok := w.chunks[ChunkPosOf(pos)]
	if !ok || pos.OutOfBounds(w.rng) {
		w.Unlock()
		return false
	}
	if st.Name == "" || st.Name == air.Name {
		delete(c, pos)
	} else {
		c[pos] = st
	}
	listeners := w.listeners
	w.Unlock()

	for _, l := range listeners {
		l.BlockChanged(pos)
	}
	return true
}

// Fill sets every position in the box spanned by a and b to st, loading chunks as needed.
func (w *World) Fill(a, b cube.Pos, st block.State) {
	minX, maxX := min(a[0], b[0]), max(a[0], b[0])
	minY, maxY := min(a[1], b[1]), max(a[1], b[1])
	minZ, maxZ := min(a[2], b[2]), max(a[2], b[2])
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			w.LoadChunk(ChunkPosOf(cube.Pos{x, 0, z}))
			for y := minY; y <= maxY; y++ {
				w.SetBlock(cube.Pos{x, y, z}, st)
			}
		}
	}
}

// CleanChunks unloads the chunks further than radius chunks from pos.
func (w *World) CleanChunks(radius int32, pos ChunkPos) {
	w.Lock()
	if pos == w.lastCleanPos {
		w.Unlock()
		return
	}
	w.lastCleanPos = pos

	var removed []ChunkPos
	for chunkPos := range w.chunks {
		if !chunkInRange(radius, chunkPos, pos) {
			removed = append(removed, chunkPos)
		}
	}
	w.Unlock()

	for _, chunkPos := range removed {
		w.UnloadChunk(chunkPos)
	}
}

// PurgeChunks unloads all chunks.
func (w *World) PurgeChunks() {
	w.RLock()
	all := make([]ChunkPos, 0, len(w.chunks))
	for chunkPos := range w.chunks {
		all = append(all, chunkPos)
	}
	w.RUnlock()

	for _, chunkPos := range all {
		w.UnloadChunk(chunkPos)
	}
}

var air = block.State{Name: "minecraft:air"}

// chunkInRange returns true if the chunk position is within the given radius of the chunk position.
func chunkInRange(radius int32, chunkPos, pos ChunkPos) bool {
	diffX, diffZ := float64(pos[0]-chunkPos[0]), float64(pos[1]-chunkPos[1])
	return int32(math.Sqrt(diffX*diffX+diffZ*diffZ)) <= radius
}
