package movement

import (
	"math"

	"github.com/KweezyCode/NoCheatPlus/player/environment"
)

// Endpoint is one end of a move.
type Endpoint struct {
	environment.Snapshot
	// ClientOnGround is the on-ground state the client reported.
	ClientOnGround bool
}

// Metadata holds the per-tick report properties of a move that are not derived from the environment.
type Metadata struct {
	Tick      uint64
	Sprinting bool
	Flying    bool
	Gliding   bool
	InVehicle bool
	// TouchedGround is set if the entity touched ground during the move, not just at one of its ends.
	TouchedGround bool
	// MultiMoveCount is the amount of moves merged into this one, zero for a single move.
	MultiMoveCount int
	InWaterfall    bool
}

// Record is one move of an entity. Records are values; once the tick they belong to is finished only the
// fields exposed through Correction may still change.
type Record struct {
	From, To Endpoint
	Tick     uint64

	XDistance, YDistance, ZDistance float64
	// HDistance is the horizontal distance of the move.
	HDistance float64

	// ToIsValid is false for a record whose To endpoint was never set.
	ToIsValid bool
	// Valid is cleared for moves that broke an envelope.
	Valid bool

	TouchedGround bool
	// TouchedGroundWorkaround is set once a lost ground workaround applied to the move.
	TouchedGroundWorkaround bool
	BunnyHop                bool
	HeadObstructed          bool
	InWaterfall             bool
	MultiMoveCount          int

	Sprinting bool
	Flying    bool
	Gliding   bool
	InVehicle bool
}

// NewRecord returns the record of a move between from and to.
func NewRecord(from, to Endpoint, meta Metadata) Record {
	d := to.Position.Sub(from.Position)
	return Record{
		From:           from,
		To:             to,
		Tick:           meta.Tick,
		XDistance:      d[0],
		YDistance:      d[1],
		ZDistance:      d[2],
		HDistance:      math.Hypot(d[0], d[2]),
		ToIsValid:      true,
		Valid:          true,
		TouchedGround:  meta.TouchedGround || from.OnGround() || to.OnGround(),
		HeadObstructed: from.HeadObstructed() || to.HeadObstructed(),
		InWaterfall:    meta.InWaterfall,
		MultiMoveCount: meta.MultiMoveCount,
		Sprinting:      meta.Sprinting,
		Flying:         meta.Flying,
		Gliding:        meta.Gliding,
		InVehicle:      meta.InVehicle,
	}
}

// LiftOff reports whether the move leaves the ground.
func (r Record) LiftOff() bool {
	return r.From.OnGround() && !r.To.OnGround()
}

// Correction holds the fields of the current record that may be corrected after it was pushed.
type Correction struct {
	TouchedGroundWorkaround bool
	BunnyHop                bool
}
