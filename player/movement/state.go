package movement

import (
	"time"

	"github.com/KweezyCode/NoCheatPlus/game"
)

// PhysicsState holds the counters of an entity carried from one tick to the next. It is only changed by
// EndTick, apart from the jump amplifier set from the effects of the entity.
type PhysicsState struct {
	// JumpPhase counts the ticks since the entity was last on ground.
	JumpPhase     int
	JumpAmplifier float64
	// LowJump is set when the last lift-off gained less height than a jump.
	LowJump bool

	LastFrictionVertical   float64
	LastFrictionHorizontal float64

	// BunnyHopDelay counts down the ticks until the next bunny hop is accepted.
	BunnyHopDelay int

	LastBounceTick uint64
	// BounceY is the vertical speed the last bounce may reach.
	BounceY float64

	LastRateLimited time.Time
}

// NewPhysicsState returns the state of an entity that has not moved yet.
func NewPhysicsState() *PhysicsState {
	return &PhysicsState{
		LastFrictionVertical:   game.FrictionMediumAir,
		LastFrictionHorizontal: game.HorizontalInertia,
	}
}

// EndTick updates the state once the move r was evaluated. frictionV and frictionH are the friction
// factors that applied to the move.
func (s *PhysicsState) EndTick(r Record, frictionV, frictionH float64) {
	s.LastFrictionVertical, s.LastFrictionHorizontal = frictionV, frictionH

	switch {
	case r.To.OnGround() || r.To.ResetCond():
		s.JumpPhase = 0
		s.LowJump = false
	default:
		s.JumpPhase++
	}
	if r.LiftOff() && r.YDistance > 0 && !r.HeadObstructed &&
		r.YDistance < game.LiftOffNormal.MinGain(s.JumpAmplifier)-game.GravitySpan {
		s.LowJump = true
	}

	if r.BunnyHop {
		s.BunnyHopDelay = game.BunnyhopMaxDelay
	} else if s.BunnyHopDelay > 0 {
		s.BunnyHopDelay--
	}

	if r.To.OnBouncyBlock() && r.YDistance < 0 {
		bounce := game.SlimeBounce
		if !r.To.OnSlime() {
			bounce = game.BedBounce
		}
		s.LastBounceTick = r.Tick
		s.BounceY = min(r.YDistance*bounce, game.BounceVerticalMax)
	}
}

// RateLimit reports whether at least every passed since it last returned true.
func (s *PhysicsState) RateLimit(now time.Time, every time.Duration) bool {
	if now.Sub(s.LastRateLimited) < every {
		return false
	}
	s.LastRateLimited = now
	return true
}
