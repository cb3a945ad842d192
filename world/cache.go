package world

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/oerror"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/atomic"
)

// ShapeCache resolves block shapes for positions of a Provider and caches the resolved state per chunk.
// Reads may run concurrently with invalidation. A read racing a block change may return the old shape, but
// that shape is never kept in the cache.
type ShapeCache struct {
	provider Provider
	registry *block.Registry

	chunks map[ChunkPos]map[cube.Pos]entry
	// gens counts the invalidations per chunk, epoch the purges of the whole cache. A state read from the
	// provider is only stored if neither changed during the read.
	gens  map[ChunkPos]uint64
	epoch uint64
	deadlock.RWMutex

	hits, misses, unavailable atomic.Uint64
}

type entry struct {
	t           block.Type
	data        uint8
	waterlogged bool
}

// CacheStats is a point-in-time copy of the counters of a ShapeCache.
type CacheStats struct {
	Hits, Misses, Unavailable uint64
	Chunks                    int
}

// NewShapeCache creates a ShapeCache over p resolving states through r.
func NewShapeCache(p Provider, r *block.Registry) *ShapeCache {
	return &ShapeCache{
		provider: p,
		registry: r,
		chunks:   make(map[ChunkPos]map[cube.Pos]entry),
		gens:     make(map[ChunkPos]uint64),
	}
}

// Registry returns the registry states are resolved through.
func (c *ShapeCache) Registry() *block.Registry {
	return c.registry
}

// Range returns the vertical range of the underlying provider.
func (c *ShapeCache) Range() cube.Range {
	return c.provider.Range()
}

func (c *ShapeCache) lookup(pos cube.Pos) (entry, error) {
	chunkPos := ChunkPosOf(pos)
	c.RLock()
	e, ok := c.chunks[chunkPos][pos]
	gen, epoch := c.gens[chunkPos], c.epoch
	c.RUnlock()
	if ok {
		c.hits.Inc()
		return e, nil
	}

	st, ok := c.provider.Block(pos)
	if !ok {
		c.unavailable.Inc()
		return entry{}, oerror.ShapeUnavailable(pos)
	}
	c.misses.Inc()
	e = entry{t: c.registry.TypeOf(st.Name), data: st.Data & 0xF, waterlogged: st.Waterlogged}

	c.Lock()
	defer c.Unlock()
	if c.gens[chunkPos] != gen || c.epoch != epoch {
		return e, nil
	}
	m, ok := c.chunks[chunkPos]
	if !ok {
		m = make(map[cube.Pos]entry)
		c.chunks[chunkPos] = m
	}
	m[pos] = e
	return e, nil
}

// ShapeAt returns the shape at pos for clients of version v. It returns an error of kind ShapeUnavailable
// if the region holding pos is not loaded.
func (c *ShapeCache) ShapeAt(pos cube.Pos, v game.ClientVersion) (block.Shape, error) {
	e, err := c.lookup(pos)
	if err != nil {
		return block.Shape{}, err
	}
	s := c.registry.Shape(e.t, e.data, v)
	if e.waterlogged {
		s.Flags |= block.FlagWaterlogged
	}
	return s, nil
}

// TypeAt returns the block type at pos as seen by clients of version v.
func (c *ShapeCache) TypeAt(pos cube.Pos, v game.ClientVersion) (block.Type, error) {
	s, err := c.ShapeAt(pos, v)
	if err != nil {
		return block.TypeUnknown, err
	}
	return s.Type, nil
}

// LiquidHeightAt returns the fill height of the liquid flag passed at pos, taking the block above into
// account. The block above being unavailable is treated as it not being the same liquid.
func (c *ShapeCache) LiquidHeightAt(pos cube.Pos, liquid block.Flags, v game.ClientVersion) (float64, error) {
	s, err := c.ShapeAt(pos, v)
	if err != nil {
		return 0, err
	}
	if !s.Flags.Has(liquid) {
		return 0, nil
	}
	above, err := c.ShapeAt(pos.Side(cube.FaceUp), v)
	if err != nil {
		above = c.registry.Air()
	}
	return s.LiquidHeight(liquid, above, false), nil
}

// Invalidate drops the cached state at pos.
func (c *ShapeCache) Invalidate(pos cube.Pos) {
	chunkPos := ChunkPosOf(pos)
	c.Lock()
	defer c.Unlock()
	c.gens[chunkPos]++
	if m, ok := c.chunks[chunkPos]; ok {
		delete(m, pos)
	}
}

// InvalidateChunk drops every cached state in the chunk passed.
func (c *ShapeCache) InvalidateChunk(pos ChunkPos) {
	c.Lock()
	defer c.Unlock()
	c.gens[pos]++
	delete(c.chunks, pos)
}

// Purge drops every cached state.
func (c *ShapeCache) Purge() {
	c.Lock()
	defer c.Unlock()
	c.epoch++
	c.chunks = make(map[ChunkPos]map[cube.Pos]entry)
	c.gens = make(map[ChunkPos]uint64)
}

// BlockChanged implements Listener.
func (c *ShapeCache) BlockChanged(pos cube.Pos) {
	c.Invalidate(pos)
}

// ChunkUnloaded implements Listener.
func (c *ShapeCache) ChunkUnloaded(pos ChunkPos) {
	c.InvalidateChunk(pos)
}

// Stats returns the current counters of the cache.
func (c *ShapeCache) Stats() CacheStats {
	c.RLock()
	n := len(c.chunks)
	c.RUnlock()
	return CacheStats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Unavailable: c.unavailable.Load(),
		Chunks:      n,
	}
}

// View returns a fail-closed view of the cache for clients of version v. A View is not safe for concurrent
// use.
func (c *ShapeCache) View(v game.ClientVersion) *View {
	return &View{cache: c, version: v.OrLatest()}
}
