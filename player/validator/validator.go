package validator

import (
	"io"
	"time"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/oerror"
	"github.com/KweezyCode/NoCheatPlus/player/envelope"
	"github.com/KweezyCode/NoCheatPlus/player/environment"
	"github.com/KweezyCode/NoCheatPlus/player/movement"
	"github.com/KweezyCode/NoCheatPlus/settings"
	"github.com/KweezyCode/NoCheatPlus/utils"
	"github.com/KweezyCode/NoCheatPlus/world"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// warnInterval limits how often unavailable shapes are logged per entity.
const warnInterval = time.Second

// tracker holds the moves and physics state of one entity.
type tracker struct {
	history *movement.History
	state   *movement.PhysicsState
	// clientOnGround is the on-ground state the client reported for the end of its last move.
	clientOnGround bool
}

// finish ends the current move of the tracker, if any.
func (t *tracker) finish() {
	cur, err := t.history.Current()
	if err != nil {
		return
	}
	t.state.EndTick(cur, envelope.VerticalFriction(cur.From), horizontalFriction(cur))
	t.history.Finish()
}

func horizontalFriction(r movement.Record) float64 {
	if !r.From.OnGround() {
		return game.HorizontalInertia
	}
	return float64(envelope.BlockFriction(r.From, r.Flying, r.Gliding)) * game.HorizontalInertia
}

// Validator classifies and records the moves of entities and tests them against the physics envelopes.
// Moves of one entity must not be evaluated concurrently; Pool takes care of that.
type Validator struct {
	cache      *world.ShapeCache
	classifier *environment.Classifier
	settings   settings.Settings
	gates      game.Gates
	table      *envelope.Table
	log        *logrus.Logger
	metrics    *metrics
	now        func() time.Time

	mu       deadlock.Mutex
	trackers map[uuid.UUID]*tracker
}

// New creates a Validator over cache. A nil logger discards logs and a nil registerer leaves the metrics
// unregistered. entities may be nil.
func New(cache *world.ShapeCache, s settings.Settings, log *logrus.Logger, r prometheus.Registerer, entities environment.EntitySource) (*Validator, error) {
	classifier, err := environment.New(cache, s, entities)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	m := newMetrics()
	if err := m.register(r); err != nil {
		return nil, oerror.New("register metrics: %v", err)
	}
	return &Validator{
		cache:      cache,
		classifier: classifier,
		settings:   s,
		gates:      classifier.Gates(),
		table:      envelope.DefaultTable(),
		log:        log,
		metrics:    m,
		now:        time.Now,
		trackers:   make(map[uuid.UUID]*tracker),
	}, nil
}

// Settings returns the settings the validator was created with.
func (v *Validator) Settings() settings.Settings {
	return v.settings
}

func (v *Validator) tracker(id uuid.UUID) *tracker {
	v.mu.Lock()
	defer v.mu.Unlock()
	t, ok := v.trackers[id]
	if !ok {
		t = &tracker{
			history: movement.NewHistory(v.settings.History.Capacity),
			state:   movement.NewPhysicsState(),
		}
		v.trackers[id] = t
		v.metrics.trackers.Set(float64(len(v.trackers)))
	}
	return t
}

func (v *Validator) lookup(id uuid.UUID) (*tracker, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	t, ok := v.trackers[id]
	return t, ok
}

// Disconnect drops the history and memoized snapshots of the entity.
func (v *Validator) Disconnect(id uuid.UUID) {
	v.mu.Lock()
	delete(v.trackers, id)
	v.metrics.trackers.Set(float64(len(v.trackers)))
	v.mu.Unlock()
	v.classifier.Forget(id)
}

// ClassifyEnvironment returns the environment snapshot of the request.
func (v *Validator) ClassifyEnvironment(req environment.Request) environment.Snapshot {
	v.metrics.classifications.Inc()
	s := v.classifier.Classify(req)
	if s.ShapeUnavailable() {
		v.metrics.unavailable.Inc()
	}
	return s
}

// RecordMove makes the move between from and to the current move of the entity, ending the move that was
// current before.
func (v *Validator) RecordMove(id uuid.UUID, from, to movement.Endpoint, meta movement.Metadata) movement.Record {
	t := v.tracker(id)
	t.finish()
	r := movement.NewRecord(from, to, meta)
	t.history.Push(r)
	t.clientOnGround = to.ClientOnGround
	return r
}

// History returns the move history of the entity.
func (v *Validator) History(id uuid.UUID) (*movement.History, bool) {
	t, ok := v.lookup(id)
	if !ok {
		return nil, false
	}
	return t.history, true
}

// State returns the physics state of the entity.
func (v *Validator) State(id uuid.UUID) (*movement.PhysicsState, bool) {
	t, ok := v.lookup(id)
	if !ok {
		return nil, false
	}
	return t.state, true
}

// TestEnvelope runs the envelope called name for the entity. The history and state of the entity are used
// unless in sets them.
func (v *Validator) TestEnvelope(id uuid.UUID, name string, in envelope.Input) (bool, envelope.Diagnostic) {
	if t, ok := v.lookup(id); ok {
		if in.History == nil {
			in.History = t.history
		}
		if in.State == nil {
			in.State = t.state
		}
	}
	ok, d := v.table.Test(name, in)
	if d.Reason == "" {
		v.metrics.envelope(name, ok)
	}
	return ok, d
}

// Evaluate classifies, records and tests one move. The move is finished once Evaluate returns.
func (v *Validator) Evaluate(r MoveReport) Result {
	t := v.tracker(r.Entity)
	t.finish()

	t.state.JumpAmplifier = 0
	if level, ok := r.effect(packet.EffectJumpBoost); ok {
		t.state.JumpAmplifier = float64(level)
	}

	var lastY float64
	if last, err := t.history.FirstPastMove(); err == nil {
		lastY = last.YDistance
	}
	base := environment.Request{
		Entity:     r.Entity,
		Tick:       r.Tick,
		Width:      r.Width,
		Height:     r.Height,
		Version:    r.Version,
		JumpHeight: game.LiftOffNormal.MaxGain(t.state.JumpAmplifier),
	}
	fromReq, toReq := base, base
	fromReq.Position, fromReq.YDistance = r.From, lastY
	toReq.Position, toReq.YDistance = r.To, r.To[1]-r.From[1]

	from, to := v.ClassifyEnvironment(fromReq), v.ClassifyEnvironment(toReq)
	rec := v.RecordMove(r.Entity,
		movement.Endpoint{Snapshot: from, ClientOnGround: t.clientOnGround},
		movement.Endpoint{Snapshot: to, ClientOnGround: r.ClientOnGround},
		movement.Metadata{
			Tick:        r.Tick,
			Sprinting:   r.Sprinting,
			Flying:      r.Flying,
			Gliding:     r.Gliding,
			InVehicle:   r.InVehicle,
			InWaterfall: v.inWaterfall(to),
		},
	)
	h := t.history

	opportune := false
	if !rec.TouchedGround {
		lost := toReq
		lost.YOnGround = v.settings.Ground.MaxMargin
		opportune = v.ClassifyEnvironment(lost).OnGround()
	}
	hop := t.state.BunnyHopDelay == 0 && envelope.Bunnyhop(h, t.state, opportune)
	if err := h.CorrectCurrent(func(c *movement.Correction) {
		c.TouchedGroundWorkaround = c.TouchedGroundWorkaround || opportune
		c.BunnyHop = hop
	}); err != nil {
		v.log.WithField("entity", r.Entity).Errorf("correct move: %v", err)
	}

	res := Result{From: from, To: to, Factors: v.factors(r, h)}
	res.LiquidPush = v.liquidPush(r, rec)
	switch {
	case r.exempt():
		res.Outcome = OutcomeExempt
	case h.NumberOfPastMoves() == 0:
		res.Outcome = OutcomeFirstMove
	default:
		v.check(r, h, t.state, opportune, &res)
	}
	res.Record, _ = h.Current()
	t.finish()

	v.metrics.moves.WithLabelValues(res.Outcome.String()).Inc()
	if (from.ShapeUnavailable() || to.ShapeUnavailable()) && t.state.RateLimit(v.now(), warnInterval) {
		v.log.WithFields(logrus.Fields{"entity": r.Entity, "tick": r.Tick, "to": r.To}).Warn("move consulted unavailable shapes")
	}
	return res
}

// check runs the envelopes that apply to the current move. opportune reports whether the move only reached
// ground through the lost ground margin.
func (v *Validator) check(r MoveReport, h *movement.History, s *movement.PhysicsState, opportune bool, res *Result) {
	this, err := h.Current()
	if err != nil {
		return
	}
	last, err := h.FirstPastMove()
	if err != nil {
		return
	}
	in := envelope.Input{History: h, State: s, OnGroundOpportune: opportune}

	if r.Gliding {
		v.test(r, res, "glide_vertical", in)
		v.test(r, res, "glide_horizontal_gain", in)
		return
	}
	if this.LiftOff() || opportune {
		v.test(r, res, "bunnyhop", in)
	}
	if envelope.InLiquid(this) && envelope.InLiquid(last) {
		in := in
		in.Friction = envelope.MediumFriction(this.From)
		in.MinGravity = game.GravityMin
		in.MaxOffset = game.GravityMax
		in.DecreaseByOffset = 2
		v.test(r, res, "friction", in)
		return
	}

	if _, ok := r.effect(packet.EffectSlowFalling); ok {
		return
	}
	if !envelope.InAir(this) || !envelope.InAir(last) || !last.ToIsValid || this.YDistance >= 0 && last.YDistance > 0 {
		return
	}
	if v.test(r, res, "falling", in) {
		return
	}
	limit := h.Capacity()
	if v.test(r, res, "noob_tower", in) || envelope.RecentlyInWaterfall(limit, h) || envelope.RecentlyInBubbleStream(limit, h) {
		return
	}
	v.violate(r, h, res, "falling")
}

// test runs the envelope called name and appends its diagnostic to res.
func (v *Validator) test(r MoveReport, res *Result, name string, in envelope.Input) bool {
	ok, d := v.table.Test(name, in)
	res.Diagnostics = append(res.Diagnostics, d)
	if d.Reason != "" {
		return false
	}
	v.metrics.envelope(name, ok)
	if !ok {
		v.log.WithFields(logrus.Fields{
			"entity":   r.Entity,
			"envelope": name,
			"offset":   game.Round64(d.Offset, 5),
			"inputs":   utils.OrderedMapString(d.Inputs),
		}).Debug("envelope failed")
	}
	return ok
}

func (v *Validator) violate(r MoveReport, h *movement.History, res *Result, name string) {
	res.Violations = append(res.Violations, name)
	v.metrics.violations.WithLabelValues(name).Inc()
	if err := h.MarkInvalid(); err != nil {
		v.log.Errorf("mark invalid: %v", err)
	}
	v.log.WithFields(logrus.Fields{"entity": r.Entity, "tick": r.Tick, "envelope": name}).Debug("move broke envelope")
}

func (v *Validator) factors(r MoveReport, h *movement.History) Factors {
	cur, err := h.Current()
	if err != nil {
		return Factors{}
	}
	from := cur.From
	return Factors{
		Vertical:             envelope.VerticalFriction(from),
		Horizontal:           horizontalFriction(cur),
		BlockFriction:        envelope.BlockFriction(from, r.Flying, r.Gliding),
		BlockSpeed:           envelope.BlockSpeedFactor(from, r.Flying, r.Gliding, r.SoulSpeed),
		StuckVertical:        envelope.StuckVertical(from, r.Flying),
		StuckHorizontal:      envelope.StuckHorizontal(from, r.Flying),
		PowderSnowSlowdown:   envelope.PowderSnowSlowdown(r.FreezeTicks, !r.LeatherBoots),
		CanStandOnPowderSnow: envelope.CanStandOnPowderSnow(from.Version, v.gates, r.LeatherBoots),
		SlopeSlowdown:        envelope.BunnySlopeSlowdown(h),
		LiftOff:              envelope.LiftOffOf(from),
		SwimBaseSpeedV:       envelope.SwimBaseSpeedV(r.Sprinting && from.InWater()),
	}
}

func (v *Validator) liquidPush(r MoveReport, rec movement.Record) (push mgl64.Vec3) {
	to := rec.To
	if !to.InLiquid() {
		return
	}
	liquid := block.FlagWater
	if !to.InWater() {
		liquid = block.FlagLava
	}
	return envelope.LiquidPush(v.cache.View(to.Version), v.gates, envelope.Push{
		Box:       to.Box,
		Liquid:    liquid,
		XDistance: rec.XDistance,
		ZDistance: rec.ZDistance,
		InWater:   to.InWater(),
		InLava:    to.InLava(),
		Flying:    r.Flying,
		Gliding:   r.Gliding,
		InVehicle: r.InVehicle,
		Nether:    r.Nether,
	})
}

// inWaterfall reports whether the feet of the snapshot are in falling water.
func (v *Validator) inWaterfall(s environment.Snapshot) bool {
	if !s.InWater() {
		return false
	}
	pos := cube.Pos{game.BlockCoord(s.Position[0]), game.BlockCoord(s.Box.Min()[1]), game.BlockCoord(s.Position[2])}
	shape := v.cache.View(s.Version).Shape(pos)
	return shape.Flags.Has(block.FlagWater) && shape.Data >= 8
}
