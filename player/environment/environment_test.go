package environment

import (
	"errors"
	"testing"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/oerror"
	"github.com/KweezyCode/NoCheatPlus/settings"
	"github.com/KweezyCode/NoCheatPlus/world"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

var testEntity = uuid.MustParse("6f0f2a6e-8e0b-4d0e-9a57-3b1b54e2a001")

type mockEntities struct {
	boxes []cube.BBox
}

func (m mockEntities) EntityBoxes(bb cube.BBox, _ uuid.UUID) []cube.BBox {
	var out []cube.BBox
	for _, b := range m.boxes {
		if b.IntersectsWith(bb) {
			out = append(out, b)
		}
	}
	return out
}

func stone() block.State { return block.State{Name: "minecraft:stone"} }

// newTestClassifier returns a world with a stone floor at y=63 spanning x/z -8..8.
func newTestClassifier(t *testing.T, s settings.Settings, entities EntitySource) (*world.World, *Classifier) {
	w := world.New(world.OverworldRange, nil)
	cache := world.NewShapeCache(w, block.Vanilla())
	w.Subscribe(cache)
	w.Fill(cube.Pos{-8, 63, -8}, cube.Pos{8, 63, 8}, stone())

	c, err := New(cache, s, entities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return w, c
}

func request(x, y, z float64, v game.ClientVersion) Request {
	return Request{
		Entity:   testEntity,
		Tick:     1,
		Position: mgl64.Vec3{x, y, z},
		Width:    0.6,
		Height:   1.8,
		Version:  v,
	}
}

func TestGroundAndAir(t *testing.T) {
	_, c := newTestClassifier(t, settings.DefaultSettings(), nil)

	s := c.Classify(request(0.5, 64, 0.5, game.VersionLatest))
	if !s.OnGround() || s.Medium != MediumNone {
		t.Fatalf("expected on ground, got %v (%v)", s.Facts(), s.Medium)
	}
	if s.BlockBelow != c.cache.Registry().TypeOf("minecraft:stone") || s.Surface != block.TypeAir {
		t.Fatalf("unexpected surface %v below %v", s.Surface, s.BlockBelow)
	}
	if s.ShapeUnavailable() {
		t.Fatalf("loaded area reported unavailable")
	}

	s = c.Classify(request(0.5, 65, 0.5, game.VersionLatest))
	if s.OnGround() || s.Medium != MediumAir {
		t.Fatalf("expected in air, got %v (%v)", s.Facts(), s.Medium)
	}
}

func TestIdempotence(t *testing.T) {
	w, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	w.SetBlock(cube.Pos{0, 64, 0}, block.State{Name: "minecraft:water"})

	req := request(0.5, 64.2, 0.5, game.VersionLatest)
	first := c.Classify(req)
	if second := c.Classify(req); second != first {
		t.Fatalf("repeated classification differs: %+v vs %+v", first, second)
	}
	if c.Len() != 1 {
		t.Fatalf("expected one stored snapshot, got %d", c.Len())
	}

	w2, fresh := newTestClassifier(t, settings.DefaultSettings(), nil)
	w2.SetBlock(cube.Pos{0, 64, 0}, block.State{Name: "minecraft:water"})
	if s := fresh.Classify(req); s != first {
		t.Fatalf("classification differs between identical worlds: %+v vs %+v", first, s)
	}
}

func TestMemoTicks(t *testing.T) {
	s := settings.DefaultSettings()
	s.Memo.Capacity = 2
	_, c := newTestClassifier(t, s, nil)

	req := request(0.5, 64, 0.5, game.VersionLatest)
	c.Classify(req)
	moved := req
	moved.Position[1] = 65
	c.Classify(moved)
	if c.Len() != 2 {
		t.Fatalf("expected two stored snapshots, got %d", c.Len())
	}

	next := req
	next.Tick = 2
	c.Classify(next)
	if c.Len() != 1 {
		t.Fatalf("expected older ticks to be dropped, got %d", c.Len())
	}

	// Requests older than the latest tick are not stored.
	c.Classify(req)
	if c.Len() != 1 {
		t.Fatalf("stale request was stored, got %d", c.Len())
	}

	for i := 0; i < 3; i++ {
		other := next
		other.Entity = uuid.New()
		c.Classify(other)
	}
	if c.Len() != 2 {
		t.Fatalf("expected memo capacity to hold, got %d", c.Len())
	}

	c.Forget(testEntity)
	for el := c.memo.Front(); el != nil; el = el.Next() {
		if el.Key.Entity == testEntity {
			t.Fatalf("forgotten entity still stored")
		}
	}
}

func TestLiquidColumn(t *testing.T) {
	w, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	w.Fill(cube.Pos{-2, 64, -2}, cube.Pos{2, 64, 2}, block.State{Name: "minecraft:water"})

	h, err := c.cache.LiquidHeightAt(cube.Pos{0, 64, 0}, block.FlagWater, game.VersionLatest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	surface := 64 + h

	// Modern clients are in water as long as the bottom of the box is below the surface.
	for y := 63.95; y < surface-game.LiquidBoxInset; y += 0.05 {
		s := c.Classify(request(0.5, y, 0.5, game.VersionLatest))
		if !s.InWater() || !s.InLiquid() || s.Medium != MediumWater {
			t.Fatalf("expected in water at y=%v (surface %v), got %v", y, surface, s.Facts())
		}
	}
	if s := c.Classify(request(0.5, surface+0.01, 0.5, game.VersionLatest)); s.InWater() {
		t.Fatalf("expected out of water above the surface")
	}

	// Legacy clients contract the box by 0.4: near the surface they are no longer in water.
	for _, tc := range []struct {
		y      float64
		v      game.ClientVersion
		expect bool
	}{
		{64.5, game.V1_12, true},
		{64.5, game.VersionLatest, true},
		{64.85, game.V1_12, false},
		{64.85, game.VersionLatest, true},
	} {
		s := c.Classify(request(0.5, tc.y, 0.5, tc.v))
		if s.InWater() != tc.expect {
			t.Fatalf("y=%v version %v: expected in water %v, got %v", tc.y, tc.v, tc.expect, s.Facts())
		}
	}
}

func TestLavaAlgorithms(t *testing.T) {
	w, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	w.Fill(cube.Pos{-2, 64, -2}, cube.Pos{2, 64, 2}, block.State{Name: "minecraft:lava"})

	for _, v := range []game.ClientVersion{game.V1_12, game.V1_14, game.VersionLatest} {
		s := c.Classify(request(0.5, 64.5, 0.5, v))
		if !s.InLava() || s.Medium != MediumLava || !s.ResetCond() {
			t.Fatalf("version %v: expected in lava, got %v", v, s.Facts())
		}
		if s.InWater() {
			t.Fatalf("version %v: lava classified as water", v)
		}
		if s = c.Classify(request(0.5, 66, 0.5, v)); s.InLava() {
			t.Fatalf("version %v: expected out of lava", v)
		}
	}
}

func TestVersionGatedMedia(t *testing.T) {
	w, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	w.SetBlock(cube.Pos{0, 64, 0}, block.State{Name: "minecraft:sweet_berry_bush"})

	if s := c.Classify(request(0.5, 64, 0.5, game.V1_13)); s.InBerryBush() {
		t.Fatalf("berry bush before it existed")
	}
	s := c.Classify(request(0.5, 64, 0.5, game.V1_14))
	if !s.InBerryBush() || !s.ResetCond() {
		t.Fatalf("expected in berry bush, got %v", s.Facts())
	}

	w.SetBlock(cube.Pos{0, 64, 0}, block.State{Name: "minecraft:web"})
	s = c.Classify(request(0.5, 64, 0.5, game.V1_8))
	if !s.InWeb() || s.Medium != MediumWeb {
		t.Fatalf("expected in web, got %v (%v)", s.Facts(), s.Medium)
	}
}

func TestIceMargins(t *testing.T) {
	w, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	w.Fill(cube.Pos{-2, 63, -2}, cube.Pos{0, 63, 2}, block.State{Name: "minecraft:ice"})

	// The box spans 0.8..1.4: half of it still reaches the ice column at x=0.
	if s := c.Classify(request(1.1, 64, 0.5, game.V1_12)); !s.OnIce() {
		t.Fatalf("legacy: expected on ice, got %v", s.Facts())
	}
	if s := c.Classify(request(1.1, 64, 0.5, game.VersionLatest)); s.OnIce() {
		t.Fatalf("modern: expected the supporting stone to decide")
	}
	if s := c.Classify(request(1.4, 64, 0.5, game.V1_12)); s.OnIce() {
		t.Fatalf("legacy: half box does not reach the ice")
	}

	w.Fill(cube.Pos{4, 63, 4}, cube.Pos{6, 63, 6}, block.State{Name: "minecraft:blue_ice"})
	s := c.Classify(request(5.5, 64, 5.5, game.V1_12))
	if !s.OnIce() || s.OnBlueIce() {
		t.Fatalf("blue ice before 1.13 is ice, got %v", s.Facts())
	}
	if s = c.Classify(request(5.5, 64, 5.5, game.VersionLatest)); !s.OnBlueIce() {
		t.Fatalf("expected on blue ice, got %v", s.Facts())
	}
}

func TestBouncyAndSticky(t *testing.T) {
	w, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	w.SetBlock(cube.Pos{0, 63, 0}, block.State{Name: "minecraft:slime"})
	for _, v := range []game.ClientVersion{game.V1_8, game.VersionLatest} {
		s := c.Classify(request(0.5, 64, 0.5, v))
		if !s.OnSlime() || !s.OnBouncyBlock() {
			t.Fatalf("version %v: expected on slime, got %v", v, s.Facts())
		}
	}
	if s := c.Classify(request(0.5, 64, 0.5, game.V1_7)); s.OnSlime() {
		t.Fatalf("slime before it existed")
	}

	w.SetBlock(cube.Pos{3, 64, 0}, block.State{Name: "minecraft:honey_block"})
	s := c.Classify(request(3.5, 64+15.0/16.0, 0.5, game.VersionLatest))
	if !s.OnHoneyBlock() || !s.OnGround() {
		t.Fatalf("expected on honey, got %v", s.Facts())
	}

	w.SetBlock(cube.Pos{6, 64, 0}, block.State{Name: "minecraft:soul_sand"})
	if s := c.Classify(request(6.5, 64.875, 0.5, game.VersionLatest)); !s.InSoulSand() {
		t.Fatalf("expected in soul sand, got %v", s.Facts())
	}
}

func TestSlidingDown(t *testing.T) {
	w, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	w.Fill(cube.Pos{1, 64, 0}, cube.Pos{1, 66, 0}, block.State{Name: "minecraft:honey_block"})

	req := request(0.76, 64.5, 0.5, game.VersionLatest)
	req.YDistance = -0.2
	s := c.Classify(req)
	if !s.SlidingDown() || s.OnGround() {
		t.Fatalf("expected sliding down, got %v", s.Facts())
	}

	req.YDistance = -0.05
	if s := c.Classify(req); s.SlidingDown() {
		t.Fatalf("slow descent is not sliding")
	}
	req.YDistance = -0.2
	req.Version = game.V1_14
	if s := c.Classify(req); s.SlidingDown() {
		t.Fatalf("sliding down before honey existed")
	}
}

func TestHeadObstructed(t *testing.T) {
	w, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	if s := c.Classify(request(0.5, 64, 0.5, game.VersionLatest)); s.HeadObstructed() {
		t.Fatalf("open sky reported obstructed")
	}
	w.SetBlock(cube.Pos{0, 66, 0}, stone())
	req := request(0.5, 64, 0.5, game.VersionLatest)
	req.Tick = 2
	if s := c.Classify(req); !s.HeadObstructed() {
		t.Fatalf("expected head obstruction below the ceiling")
	}
}

func TestHeadMargin(t *testing.T) {
	for _, tc := range []struct {
		maxY, expect float64
	}{
		{65.8, 0.2},
		{65.5, 0.25},
		{65.0, 0.25},
		{65.3, 0.2},
	} {
		if got := headMargin(tc.maxY, 0); mgl64.Abs(got-tc.expect) > 1e-9 {
			t.Fatalf("maxY %v: expected margin %v, got %v", tc.maxY, tc.expect, got)
		}
	}
}

func TestClimbables(t *testing.T) {
	w, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	w.SetBlock(cube.Pos{0, 64, 0}, block.State{Name: "minecraft:ladder"})
	s := c.Classify(request(0.5, 64.1, 0.5, game.VersionLatest))
	if !s.OnClimbable() || s.Medium != MediumClimbable || !s.ResetCond() || !s.CanClimbUp() {
		t.Fatalf("expected on ladder, got %v (%v)", s.Facts(), s.Medium)
	}

	w.SetBlock(cube.Pos{4, 70, 0}, block.State{Name: "minecraft:vine"})
	if s := c.Classify(request(4.5, 70.2, 0.5, game.V1_12)); !s.OnClimbable() || s.CanClimbUp() {
		t.Fatalf("legacy: loose vine must not be climbable upwards, got %v", s.Facts())
	}
	if s := c.Classify(request(4.5, 70.2, 0.5, game.VersionLatest)); !s.CanClimbUp() {
		t.Fatalf("modern: every climbable can be climbed")
	}
	w.SetBlock(cube.Pos{5, 70, 0}, stone())
	req := request(4.5, 70.2, 0.5, game.V1_12)
	req.Tick = 2
	if s := c.Classify(req); !s.CanClimbUp() {
		t.Fatalf("legacy: attached vine must be climbable, got %v", s.Facts())
	}
}

func TestStandsOnEntity(t *testing.T) {
	boat := cube.Box(0, 69.4, 0, 1.4, 70, 1.4)
	_, c := newTestClassifier(t, settings.DefaultSettings(), mockEntities{boxes: []cube.BBox{boat}})

	s := c.Classify(request(0.5, 70, 0.5, game.VersionLatest))
	if !s.StandsOnEntity() || !s.OnGround() {
		t.Fatalf("expected standing on the entity, got %v", s.Facts())
	}
	if s = c.Classify(request(0.5, 70.5, 0.5, game.VersionLatest)); s.StandsOnEntity() || s.OnGround() {
		t.Fatalf("expected in air above the entity, got %v", s.Facts())
	}
}

func TestUnavailableFailsClosed(t *testing.T) {
	_, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	s := c.Classify(request(1000.5, 64, 1000.5, game.VersionLatest))
	if !s.ShapeUnavailable() {
		t.Fatalf("expected unavailable shapes to be reported")
	}
	if !s.OnGround() {
		t.Fatalf("unavailable ground must count as ground, got %v", s.Facts())
	}
}

func TestInvalidConfiguration(t *testing.T) {
	w := world.New(world.OverworldRange, nil)
	cache := world.NewShapeCache(w, block.Vanilla())

	s := settings.DefaultSettings()
	s.Ground.DefaultMargin = 0.5
	if _, err := New(cache, s, nil); !errors.Is(err, oerror.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration, got %v", err)
	}
	if _, err := New(nil, settings.DefaultSettings(), nil); !errors.Is(err, oerror.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration for a nil cache, got %v", err)
	}
}

func TestMarginClamp(t *testing.T) {
	_, c := newTestClassifier(t, settings.DefaultSettings(), nil)
	for _, tc := range []struct{ in, expect float64 }{
		{0, game.YOnGroundDefault},
		{1e-9, game.YOnGroundMin},
		{0.5, game.YOnGroundMax},
		{0.01, 0.01},
	} {
		if got := c.margin(tc.in); got != tc.expect {
			t.Fatalf("margin(%v): expected %v, got %v", tc.in, tc.expect, got)
		}
	}
}
