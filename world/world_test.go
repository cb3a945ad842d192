package world

import (
	"errors"
	"sync"
	"testing"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/oerror"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	dfblock "github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
)

func newTestCache() (*World, *ShapeCache) {
	w := New(OverworldRange, nil)
	c := NewShapeCache(w, block.Vanilla())
	w.Subscribe(c)
	return w, c
}

func TestShapeUnavailable(t *testing.T) {
	_, c := newTestCache()
	_, err := c.ShapeAt(cube.Pos{0, 0, 0}, game.VersionLatest)
	if !errors.Is(err, oerror.ErrShapeUnavailable) {
		t.Fatalf("expected ShapeUnavailable, got %v", err)
	}
	if oerror.KindOf(err) != oerror.KindShapeUnavailable {
		t.Fatalf("unexpected kind %v", oerror.KindOf(err))
	}
	if c.Stats().Unavailable != 1 {
		t.Fatalf("expected 1 unavailable read, got %d", c.Stats().Unavailable)
	}
}

func TestShapeCacheInvalidation(t *testing.T) {
	w, c := newTestCache()
	pos := cube.Pos{3, 10, -5}
	w.LoadChunk(ChunkPosOf(pos))

	s, err := c.ShapeAt(pos, game.VersionLatest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Type != block.TypeAir {
		t.Fatalf("expected air, got %v", c.Registry().Name(s.Type))
	}

	w.SetBlock(pos, block.State{Name: "minecraft:stone"})
	s, _ = c.ShapeAt(pos, game.VersionLatest)
	if c.Registry().Name(s.Type) != "minecraft:stone" {
		t.Fatalf("expected stone after block change, got %v", c.Registry().Name(s.Type))
	}
	if _, err := c.ShapeAt(pos, game.VersionLatest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := c.Stats(); st.Hits != 1 || st.Misses != 2 {
		t.Fatalf("unexpected stats %+v", st)
	}

	w.UnloadChunk(ChunkPosOf(pos))
	if _, err := c.ShapeAt(pos, game.VersionLatest); !errors.Is(err, oerror.ErrShapeUnavailable) {
		t.Fatalf("expected unloaded chunk to be unavailable, got %v", err)
	}
}

// racingProvider changes the block it is asked for while the read is in flight, the first time only.
type racingProvider struct {
	*World
	once sync.Once
	to   block.State
}

func (p *racingProvider) Block(pos cube.Pos) (block.State, bool) {
	st, ok := p.World.Block(pos)
	p.once.Do(func() { p.World.SetBlock(pos, p.to) })
	return st, ok
}

func TestShapeCacheStaleRead(t *testing.T) {
	w := New(OverworldRange, nil)
	pos := cube.Pos{1, 64, 1}
	w.LoadChunk(ChunkPosOf(pos))
	w.SetBlock(pos, block.State{Name: "minecraft:stone"})

	c := NewShapeCache(&racingProvider{World: w, to: block.State{Name: "minecraft:air"}}, block.Vanilla())
	w.Subscribe(c)

	s, err := c.ShapeAt(pos, game.VersionLatest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Registry().Name(s.Type) != "minecraft:stone" {
		t.Fatalf("expected the state read to be returned, got %v", c.Registry().Name(s.Type))
	}
	if s, _ = c.ShapeAt(pos, game.VersionLatest); s.Type != block.TypeAir {
		t.Fatalf("expected air after the racing change, got %v", c.Registry().Name(s.Type))
	}
	if st := c.Stats(); st.Hits != 0 || st.Misses != 2 {
		t.Fatalf("stale read must not be cached, got %+v", st)
	}

	if _, err := c.ShapeAt(pos, game.VersionLatest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := c.Stats(); st.Hits != 1 {
		t.Fatalf("expected the fresh read to be cached, got %+v", st)
	}
}

func TestTypeAtVersion(t *testing.T) {
	w, c := newTestCache()
	pos := cube.Pos{0, 64, 0}
	w.Fill(pos, pos, block.State{Name: "minecraft:blue_ice"})

	modern, err := c.TypeAt(pos, game.V1_16)
	if err != nil || c.Registry().Name(modern) != "minecraft:blue_ice" {
		t.Fatalf("expected blue ice for modern clients, got %v (%v)", c.Registry().Name(modern), err)
	}
	legacy, _ := c.TypeAt(pos, game.V1_12)
	if c.Registry().Name(legacy) != "minecraft:ice" {
		t.Fatalf("expected ice for legacy clients, got %v", c.Registry().Name(legacy))
	}
}

func TestLiquidHeightAt(t *testing.T) {
	w, c := newTestCache()
	pos := cube.Pos{1, 5, 1}
	w.Fill(pos, pos, block.State{Name: "minecraft:water", Data: 3})

	h, err := c.LiquidHeightAt(pos, block.FlagWater, game.VersionLatest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	level := float32(4)
	if want := float64(1 - level/9); h != want {
		t.Fatalf("expected height %v, got %v", want, h)
	}
	if h, _ := c.LiquidHeightAt(pos, block.FlagLava, game.VersionLatest); h != 0 {
		t.Fatalf("expected no lava height, got %v", h)
	}

	w.SetBlock(pos.Side(cube.FaceUp), block.State{Name: "minecraft:water"})
	if h, _ := c.LiquidHeightAt(pos, block.FlagWater, game.VersionLatest); h != 1 {
		t.Fatalf("expected full height below water, got %v", h)
	}
}

func TestViewFailClosed(t *testing.T) {
	w, c := newTestCache()
	w.LoadChunk(ChunkPos{0, 0})
	v := c.View(game.VersionUnknown)
	if v.Version() != game.VersionLatest {
		t.Fatalf("expected unknown version to resolve as latest, got %v", v.Version())
	}

	if s := v.Shape(cube.Pos{1, 1, 1}); s.Type != block.TypeAir {
		t.Fatalf("expected air in loaded chunk")
	}
	if v.Unavailable() != 0 {
		t.Fatalf("expected no unavailable reads")
	}
	s := v.Shape(cube.Pos{100, 1, 100})
	if !s.Flags.All(block.FlagsSolidGround) || !s.HasBounds() {
		t.Fatalf("expected fail-closed shape, got flags %v", s.Flags)
	}
	if v.LiquidHeight(cube.Pos{100, 1, 100}, block.FlagWater) != 0 {
		t.Fatalf("expected unavailable position to hold no liquid")
	}
	if v.Unavailable() != 2 {
		t.Fatalf("expected 2 unavailable reads, got %d", v.Unavailable())
	}
}

func TestWorldBounds(t *testing.T) {
	w := New(cube.Range{0, 15}, nil)
	w.LoadChunk(ChunkPos{0, 0})
	if w.SetBlock(cube.Pos{0, 16, 0}, block.State{Name: "minecraft:stone"}) {
		t.Fatalf("expected set above the world to fail")
	}
	if w.SetBlock(cube.Pos{16, 0, 0}, block.State{Name: "minecraft:stone"}) {
		t.Fatalf("expected set in unloaded chunk to fail")
	}
	if st, ok := w.Block(cube.Pos{0, -1, 0}); !ok || st.Name != "minecraft:air" {
		t.Fatalf("expected air below the world, got %v %v", st, ok)
	}
}

func TestCleanChunks(t *testing.T) {
	w, c := newTestCache()
	w.Fill(cube.Pos{0, 0, 0}, cube.Pos{0, 0, 0}, block.State{Name: "minecraft:stone"})
	w.Fill(cube.Pos{160, 0, 0}, cube.Pos{160, 0, 0}, block.State{Name: "minecraft:stone"})
	_, _ = c.ShapeAt(cube.Pos{160, 0, 0}, game.VersionLatest)

	w.CleanChunks(4, ChunkPos{0, 1})
	if !w.Loaded(cube.Pos{0, 0, 0}) {
		t.Fatalf("expected chunk in range to stay loaded")
	}
	if w.Loaded(cube.Pos{160, 0, 0}) {
		t.Fatalf("expected chunk out of range to be unloaded")
	}
	if _, err := c.ShapeAt(cube.Pos{160, 0, 0}, game.VersionLatest); err == nil {
		t.Fatalf("expected cached shape to be dropped with its chunk")
	}

	w.PurgeChunks()
	if w.Loaded(cube.Pos{0, 0, 0}) {
		t.Fatalf("expected all chunks to be unloaded")
	}
}

func TestConcurrentReads(t *testing.T) {
	w, c := newTestCache()
	w.Fill(cube.Pos{0, 0, 0}, cube.Pos{15, 3, 15}, block.State{Name: "minecraft:stone"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				pos := cube.Pos{n % 16, n % 4, i}
				if _, err := c.ShapeAt(pos, game.VersionLatest); err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}(i)
	}
	for n := 0; n < 50; n++ {
		c.Invalidate(cube.Pos{n % 16, 0, 0})
	}
	c.Purge()
	wg.Wait()
}

type dragonflySource map[cube.Pos]world.Block

func (s dragonflySource) Block(pos cube.Pos) world.Block {
	return s[pos]
}

func TestDragonflyProvider(t *testing.T) {
	src := dragonflySource{
		{0, 0, 0}: dfblock.Stone{},
		{0, 1, 0}: dfblock.Water{Still: true, Depth: 8},
	}
	p := NewDragonflyProvider(src, OverworldRange)

	if st, ok := p.Block(cube.Pos{0, 0, 0}); !ok || st.Name != "minecraft:stone" {
		t.Fatalf("expected stone, got %v %v", st, ok)
	}
	if st, ok := p.Block(cube.Pos{0, 1, 0}); !ok || st.Name != "minecraft:water" || st.Data != 0 {
		t.Fatalf("expected water source, got %v %v", st, ok)
	}
	if _, ok := p.Block(cube.Pos{5, 5, 5}); ok {
		t.Fatalf("expected missing block to be unavailable")
	}
}

func TestDataOf(t *testing.T) {
	cases := []struct {
		name  string
		props map[string]any
		want  uint8
	}{
		{"minecraft:flowing_water", map[string]any{"liquid_depth": int32(9)}, 9},
		{"minecraft:snow_layer", map[string]any{"height": int32(3)}, 3},
		{"minecraft:stone_slab", map[string]any{"minecraft:vertical_half": "top"}, 1},
		{"minecraft:double_stone_slab", map[string]any{"minecraft:vertical_half": "bottom"}, 2},
		{"minecraft:ladder", map[string]any{"facing_direction": int32(5)}, 1},
		{"minecraft:oak_stairs", map[string]any{"weirdo_direction": int32(3), "upside_down_bit": true}, 4},
		{"minecraft:trapdoor", map[string]any{"direction": int32(2), "open_bit": true, "upside_down_bit": true}, 2 | 4 | 8},
		{"minecraft:oak_fence_gate", map[string]any{"minecraft:cardinal_direction": "west"}, 3},
	}
	for _, c := range cases {
		if got := dataOf(c.name, c.props); got != c.want {
			t.Fatalf("%s: expected data %d, got %d", c.name, c.want, got)
		}
	}
}
