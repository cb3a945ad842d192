package envelope

import (
	"fmt"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/player/movement"
	"github.com/KweezyCode/NoCheatPlus/utils"
	"github.com/elliotchance/orderedmap/v2"
)

// Diagnostic describes the outcome of one envelope test.
type Diagnostic struct {
	Envelope string
	Passed   bool
	// Expected is the value the envelope is centred on, Actual the value tested against it.
	Expected, Actual float64
	Offset           float64
	// Reason is set when the envelope could not be tested at all.
	Reason string
	Inputs *orderedmap.OrderedMap[string, float64]
}

func (d Diagnostic) String() string {
	if d.Reason != "" {
		return fmt.Sprintf("%s: %s", d.Envelope, d.Reason)
	}
	return fmt.Sprintf("%s passed=%v expected=%v actual=%v offset=%v %s", d.Envelope, d.Passed,
		game.Round64(d.Expected, 5), game.Round64(d.Actual, 5), game.Round64(d.Offset, 5), utils.OrderedMapString(d.Inputs))
}

const (
	reasonHistory = "insufficient history"
	reasonUnknown = "unknown envelope"
)

// Input holds everything an envelope may consult. Fields an envelope does not use are ignored.
type Input struct {
	History *movement.History
	State   *movement.PhysicsState

	// Friction, MinGravity, MaxOffset and DecreaseByOffset parametrise the friction envelope.
	Friction, MinGravity        float64
	MaxOffset, DecreaseByOffset float64
	ExtraGravity                float64
	// MaxJumpGain defaults to the normal lift-off gain.
	MaxJumpGain float64
	// Limit bounds the past moves searched, zero meaning the whole history.
	Limit             int
	OnGroundOpportune bool
}

func (in Input) limit() int {
	if in.Limit <= 0 {
		return in.History.Capacity()
	}
	return in.Limit
}

func (in Input) state() *movement.PhysicsState {
	if in.State == nil {
		return movement.NewPhysicsState()
	}
	return in.State
}

// Func tests an envelope against in.
type Func func(in Input) Diagnostic

// Table maps envelope names to their tests.
type Table struct {
	m *orderedmap.OrderedMap[string, Func]
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{m: orderedmap.NewOrderedMap[string, Func]()}
}

// Register adds f under name, replacing an envelope of the same name.
func (t *Table) Register(name string, f Func) {
	t.m.Set(name, f)
}

// DefaultTable returns the table of every built-in envelope.
func DefaultTable() *Table {
	t := NewTable()
	t.Register("falling", CheckFalling)
	t.Register("friction", CheckFriction)
	t.Register("bunnyhop", CheckBunnyhop)
	t.Register("glide_vertical", CheckGlideVertical)
	t.Register("glide_horizontal_gain", CheckGlideHorizontalGain)
	t.Register("noob_tower", CheckNoobTower)
	t.Register("valid_lift_off", CheckValidLiftOff)
	return t
}

// Names returns the envelope names in registration order.
func (t *Table) Names() []string {
	return t.m.Keys()
}

// Test runs the envelope called name. Unknown names fail with a diagnostic saying so.
func (t *Table) Test(name string, in Input) (bool, Diagnostic) {
	f, ok := t.m.Get(name)
	if !ok {
		return false, Diagnostic{Envelope: name, Reason: reasonUnknown}
	}
	if in.History == nil {
		return false, Diagnostic{Envelope: name, Reason: reasonHistory}
	}
	d := f(in)
	d.Envelope = name
	return d.Passed, d
}

func insufficient(name string) Diagnostic {
	return Diagnostic{Envelope: name, Reason: reasonHistory}
}

func inputs(kv ...any) *orderedmap.OrderedMap[string, float64] {
	m := orderedmap.NewOrderedMap[string, float64]()
	for i := 0; i+1 < len(kv); i += 2 {
		var v float64
		switch x := kv[i+1].(type) {
		case float64:
			v = x
		case int:
			v = float64(x)
		case bool:
			if x {
				v = 1
			}
		}
		m.Set(kv[i].(string), v)
	}
	return m
}

// CheckFalling runs Falling for the current and last move.
func CheckFalling(in Input) Diagnostic {
	this, err := in.History.Current()
	if err != nil {
		return insufficient("falling")
	}
	last, err := in.History.FirstPastMove()
	if err != nil {
		return insufficient("falling")
	}
	s := in.state()
	expected := last.YDistance*s.LastFrictionVertical - game.GravityMin
	return Diagnostic{
		Envelope: "falling",
		Passed:   Falling(this.YDistance, last.YDistance, s.LastFrictionVertical, in.ExtraGravity),
		Expected: expected,
		Actual:   this.YDistance,
		Offset:   this.YDistance - expected,
		Inputs:   inputs("last_y", last.YDistance, "friction", s.LastFrictionVertical, "extra_gravity", in.ExtraGravity),
	}
}

// CheckFriction runs FrictionEnough for the current and last move.
func CheckFriction(in Input) Diagnostic {
	this, err := in.History.Current()
	if err != nil {
		return insufficient("friction")
	}
	last, err := in.History.FirstPastMove()
	if err != nil {
		return insufficient("friction")
	}
	expected := last.YDistance*in.Friction - in.MinGravity
	return Diagnostic{
		Envelope: "friction",
		Passed:   FrictionEnough(this, last, in.Friction, in.MinGravity, in.MaxOffset, in.DecreaseByOffset),
		Expected: expected,
		Actual:   this.YDistance,
		Offset:   frictionOffset(this, last, in.Friction, in.MinGravity),
		Inputs: inputs("last_y", last.YDistance, "friction", in.Friction, "min_gravity", in.MinGravity,
			"max_offset", in.MaxOffset, "decrease_by_offset", in.DecreaseByOffset),
	}
}

// CheckBunnyhop runs Bunnyhop.
func CheckBunnyhop(in Input) Diagnostic {
	this, err := in.History.Current()
	if err != nil {
		return insufficient("bunnyhop")
	}
	s := in.state()
	expected := LiftOffOf(this.From).MinGain(s.JumpAmplifier) - game.GravitySpan
	return Diagnostic{
		Envelope: "bunnyhop",
		Passed:   Bunnyhop(in.History, s, in.OnGroundOpportune),
		Expected: expected,
		Actual:   this.YDistance,
		Offset:   this.YDistance - expected,
		Inputs: inputs("jump_phase", s.JumpPhase, "sprinting", this.Sprinting, "low_jump", s.LowJump,
			"head_obstructed", this.HeadObstructed, "on_ground_opportune", in.OnGroundOpportune),
	}
}

// CheckGlideVertical runs GlideVerticalGain for the current and last move.
func CheckGlideVertical(in Input) Diagnostic {
	this, err := in.History.Current()
	if err != nil {
		return insufficient("glide_vertical")
	}
	last, err := in.History.FirstPastMove()
	if err != nil {
		return insufficient("glide_vertical")
	}
	return Diagnostic{
		Envelope: "glide_vertical",
		Passed:   GlideVerticalGain(this.YDistance, last.YDistance),
		Expected: last.YDistance,
		Actual:   this.YDistance,
		Offset:   this.YDistance - last.YDistance,
		Inputs:   inputs("last_y", last.YDistance),
	}
}

// CheckGlideHorizontalGain runs GlideHorizontalGain.
func CheckGlideHorizontalGain(in Input) Diagnostic {
	this, err := in.History.Current()
	if err != nil {
		return insufficient("glide_horizontal_gain")
	}
	last, err := in.History.FirstPastMove()
	if err != nil {
		return insufficient("glide_horizontal_gain")
	}
	return Diagnostic{
		Envelope: "glide_horizontal_gain",
		Passed:   GlideHorizontalGain(in.History),
		Expected: last.HDistance,
		Actual:   this.HDistance,
		Offset:   this.HDistance - last.HDistance,
		Inputs:   inputs("last_h", last.HDistance, "max_gain", game.GlideHorizontalGainMax),
	}
}

// CheckNoobTower runs NoobJumpsOffTower for the current move.
func CheckNoobTower(in Input) Diagnostic {
	this, err := in.History.Current()
	if err != nil {
		return insufficient("noob_tower")
	}
	s := in.state()
	gain := in.MaxJumpGain
	if gain == 0 {
		gain = game.LiftOffNormal.MaxGain(s.JumpAmplifier)
	}
	expected := gain*s.LastFrictionVertical - game.GravityMin
	return Diagnostic{
		Envelope: "noob_tower",
		Passed:   NoobJumpsOffTower(this.YDistance, gain, in.History, s),
		Expected: expected,
		Actual:   this.YDistance,
		Offset:   this.YDistance - expected,
		Inputs:   inputs("max_jump_gain", gain, "jump_phase", s.JumpPhase),
	}
}

// CheckValidLiftOff runs ValidLiftOffAvailable over the limit of past moves.
func CheckValidLiftOff(in Input) Diagnostic {
	s := in.state()
	limit := in.limit()
	return Diagnostic{
		Envelope: "valid_lift_off",
		Passed:   ValidLiftOffAvailable(limit, in.History, s),
		Expected: game.LiftOffNormal.MaxGain(s.JumpAmplifier) - game.GravityMax - game.YOnGroundMin,
		Inputs:   inputs("limit", limit, "past_moves", in.History.NumberOfPastMoves()),
	}
}
