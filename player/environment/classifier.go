package environment

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/oerror"
	"github.com/KweezyCode/NoCheatPlus/settings"
	"github.com/KweezyCode/NoCheatPlus/world"
	"github.com/KweezyCode/NoCheatPlus/world/collision"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// EntitySource reports the boxes of entities that other entities can stand on, such as boats.
type EntitySource interface {
	// EntityBoxes returns the boxes intersecting bb, leaving out the entity exclude.
	EntityBoxes(bb cube.BBox, exclude uuid.UUID) []cube.BBox
}

// Request describes one entity box to classify.
type Request struct {
	Entity   uuid.UUID
	Tick     uint64
	Position mgl64.Vec3
	Width    float64
	Height   float64
	Version  game.ClientVersion
	// YOnGround is the margin below the feet still counted as ground. Zero uses the configured default;
	// other values are clamped to the configured range.
	YOnGround float64
	// YDistance is the vertical distance of the move ending at Position.
	YDistance float64
	// JumpHeight is the vertical reach used to find ground below legacy climbables. Zero uses the normal
	// jump gain.
	JumpHeight float64
}

// Box returns the bounding box of the request.
func (r Request) Box() cube.BBox {
	return game.EntityBox(r.Position, r.Width, r.Height)
}

// Classifier classifies entity boxes against the shapes of a ShapeCache. Snapshots are kept per request
// until the entity classifies a later tick or the memo is full. A Classifier is safe for concurrent use,
// as long as every entity is only classified from one goroutine at a time.
type Classifier struct {
	cache       *world.ShapeCache
	gates       game.Gates
	entities    EntitySource
	workarounds *collision.Workarounds

	minMargin, maxMargin, defaultMargin float64
	standingMargin                      float64

	mu       deadlock.Mutex
	capacity int
	memo     *orderedmap.OrderedMap[Request, Snapshot]
	latest   map[uuid.UUID]uint64
	keys     map[uuid.UUID][]Request
}

// New creates a Classifier over cache. entities may be nil if no entity can be stood on.
func New(cache *world.ShapeCache, s settings.Settings, entities EntitySource) (*Classifier, error) {
	if cache == nil {
		return nil, oerror.InvalidConfiguration("classifier requires a shape cache")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	gates, err := s.Gates()
	if err != nil {
		return nil, err
	}
	return &Classifier{
		cache:          cache,
		gates:          gates,
		entities:       entities,
		workarounds:    collision.DefaultWorkarounds(),
		minMargin:      s.Ground.MinMargin,
		maxMargin:      s.Ground.MaxMargin,
		defaultMargin:  s.Ground.DefaultMargin,
		standingMargin: s.Entity.StandingMargin,
		capacity:       s.Memo.Capacity,
		memo:           orderedmap.NewOrderedMap[Request, Snapshot](),
		latest:         make(map[uuid.UUID]uint64),
		keys:           make(map[uuid.UUID][]Request),
	}, nil
}

// Gates returns the version gates of the classifier.
func (c *Classifier) Gates() game.Gates {
	return c.gates
}

// Classify returns the snapshot of req. A request seen before in the same tick returns the stored snapshot.
func (c *Classifier) Classify(req Request) Snapshot {
	c.mu.Lock()
	if s, ok := c.memo.Get(req); ok {
		c.mu.Unlock()
		return s
	}
	stale := false
	if latest, ok := c.latest[req.Entity]; !ok || req.Tick > latest {
		c.dropLocked(req.Entity)
		c.latest[req.Entity] = req.Tick
	} else if req.Tick < latest {
		stale = true
	}
	c.mu.Unlock()

	s := c.classify(req)
	if stale {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest[req.Entity] != req.Tick {
		return s
	}
	if _, ok := c.memo.Get(req); !ok {
		c.memo.Set(req, s)
		c.keys[req.Entity] = append(c.keys[req.Entity], req)
		for c.memo.Len() > c.capacity {
			c.evictOldestLocked()
		}
	}
	return s
}

// Forget drops everything stored for entity.
func (c *Classifier) Forget(entity uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropLocked(entity)
	delete(c.latest, entity)
}

// Len returns the amount of stored snapshots.
func (c *Classifier) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memo.Len()
}

func (c *Classifier) dropLocked(entity uuid.UUID) {
	for _, k := range c.keys[entity] {
		c.memo.Delete(k)
	}
	delete(c.keys, entity)
}

func (c *Classifier) evictOldestLocked() {
	el := c.memo.Front()
	if el == nil {
		return
	}
	k := el.Key
	c.memo.Delete(k)

	keys := c.keys[k.Entity]
	for i, other := range keys {
		if other == k {
			keys = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	if len(keys) == 0 {
		delete(c.keys, k.Entity)
		return
	}
	c.keys[k.Entity] = keys
}

func (c *Classifier) margin(m float64) float64 {
	if m == 0 {
		return c.defaultMargin
	}
	return max(c.minMargin, min(m, c.maxMargin))
}

func (c *Classifier) classify(req Request) Snapshot {
	view := c.cache.View(req.Version)
	k := &classification{
		c:         c,
		req:       req,
		version:   view.Version(),
		view:      view,
		geo:       collision.New(view, c.workarounds),
		bb:        req.Box(),
		yOnGround: c.margin(req.YOnGround),
	}
	return k.snapshot()
}
