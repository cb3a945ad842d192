package validator

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/player/envelope"
	"github.com/KweezyCode/NoCheatPlus/player/environment"
	"github.com/KweezyCode/NoCheatPlus/player/movement"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
)

// EffectsProvider bridges effect tracking (jump boost, levitation, slow falling, etc.).
type EffectsProvider interface {
	GetEffect(effectID int32) (level int32, ok bool)
}

// Effects maps packet effect ids to their level, starting at 1.
type Effects map[int32]int32

func (e Effects) GetEffect(effectID int32) (int32, bool) {
	level, ok := e[effectID]
	return level, ok
}

// MoveReport is the move of one entity in one tick as the server received it.
type MoveReport struct {
	Entity uuid.UUID
	Tick   uint64

	From, To       mgl64.Vec3
	ClientOnGround bool

	Sprinting bool
	Flying    bool
	Gliding   bool
	InVehicle bool
	// GameMode is one of the packet.GameType constants.
	GameMode int32
	Effects  EffectsProvider

	Version       game.ClientVersion
	Width, Height float64
	Nether        bool

	LeatherBoots bool
	SoulSpeed    bool
	FreezeTicks  int
}

func (r MoveReport) effect(id int32) (int32, bool) {
	if r.Effects == nil {
		return 0, false
	}
	return r.Effects.GetEffect(id)
}

// exempt reports whether moves of the report are never tested against envelopes.
func (r MoveReport) exempt() bool {
	if r.GameMode != packet.GameTypeSurvival && r.GameMode != packet.GameTypeAdventure {
		return true
	}
	if _, ok := r.effect(packet.EffectLevitation); ok {
		return true
	}
	return r.Flying || r.InVehicle
}

// Outcome describes which path the validator took for a move.
type Outcome uint8

const (
	OutcomeEvaluated Outcome = iota
	// OutcomeExempt is used for entities whose moves are not tested, such as creative or flying ones.
	OutcomeExempt
	// OutcomeFirstMove is used for the first move of an entity, which has no history to test against.
	OutcomeFirstMove
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEvaluated:
		return "evaluated"
	case OutcomeExempt:
		return "exempt"
	case OutcomeFirstMove:
		return "first_move"
	}
	return "unknown"
}

// Factors holds the friction and speed factors that applied to a move.
type Factors struct {
	Vertical, Horizontal float64
	BlockFriction        float32
	BlockSpeed           float32
	StuckVertical        float64
	StuckHorizontal      float64
	PowderSnowSlowdown   float32
	CanStandOnPowderSnow bool
	SlopeSlowdown        float64
	LiftOff              game.LiftOffEnvelope
	SwimBaseSpeedV       float64
}

// Result is the outcome of evaluating one MoveReport.
type Result struct {
	Outcome  Outcome
	Record   movement.Record
	From, To environment.Snapshot
	Factors  Factors
	// LiquidPush is the velocity the liquid around the destination adds to the next move.
	LiquidPush mgl64.Vec3

	Diagnostics []envelope.Diagnostic
	// Violations names the envelopes the move broke without any allowance applying.
	Violations []string
}

// Valid reports whether the move broke no envelope.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}
