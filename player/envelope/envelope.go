package envelope

import (
	"math"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/player/movement"
)

// Falling reports whether yDistance is a legitimate continuation of a fall at lastYDistance for the vertical
// friction passed. extraGravity widens the window on both sides. The lower bound is exclusive.
func Falling(yDistance, lastYDistance, lastFrictionVertical, extraGravity float64) bool {
	if yDistance >= lastYDistance {
		return false
	}
	frict := lastYDistance*lastFrictionVertical - game.GravityMin
	return yDistance <= frict+extraGravity && yDistance > frict-game.GravitySpan-extraGravity
}

// FrictionEnough reports whether the vertical distance of this move lies within maxOffset of the speed
// expected after friction decay from the last move, with the change between both moves bounded by
// maxOffset times decreaseByOffset.
func FrictionEnough(this, last movement.Record, friction, minGravity, maxOffset, decreaseByOffset float64) bool {
	return frictionOffset(this, last, friction, minGravity) <= maxOffset &&
		math.Abs(this.YDistance-last.YDistance) <= maxOffset*decreaseByOffset
}

func frictionOffset(this, last movement.Record, friction, minGravity float64) float64 {
	return math.Abs(this.YDistance - (last.YDistance*friction - minGravity))
}

// LiftOffOf returns the lift-off envelope of the medium the endpoint is in.
func LiftOffOf(from movement.Endpoint) game.LiftOffEnvelope {
	switch {
	case from.InLiquid():
		if from.OnGround() {
			return game.LiftOffLimitNearGround
		}
		return game.LiftOffLimitLiquid
	case from.InWeb(), from.InBerryBush(), from.InPowderSnow():
		return game.LiftOffNoJump
	case from.OnHoneyBlock():
		return game.LiftOffLimitSpecial
	}
	return game.LiftOffNormal
}

// Bunnyhop reports whether the current move is a sprint jump, either one lifting off the ground or one
// following a move on which ground was only touched through a lost ground workaround. onGroundOpportune is
// set when the caller found ground for the move that the endpoints missed.
func Bunnyhop(h *movement.History, s *movement.PhysicsState, onGroundOpportune bool) bool {
	this, err := h.Current()
	if err != nil || s.LowJump || !this.Sprinting {
		return false
	}
	y := this.YDistance
	if !(y > LiftOffOf(this.From).MinGain(s.JumpAmplifier)-game.GravitySpan || this.HeadObstructed && y > game.GravityMax) {
		return false
	}
	if s.JumpPhase == 0 && this.LiftOff() {
		return true
	}
	lastHop := false
	if last, err := h.FirstPastMove(); err == nil {
		lastHop = last.BunnyHop
	}
	return s.JumpPhase <= 1 && !this.To.OnGround() && (this.TouchedGroundWorkaround || onGroundOpportune) && !lastHop
}

// GlideVerticalGain reports whether the vertical gain between two gliding moves stays within the descend
// phase window.
func GlideVerticalGain(yDistance, lastYDistance float64) bool {
	d := yDistance - lastYDistance
	return yDistance < game.GlideDescendPhaseMin && lastYDistance < game.GlideDescendPhaseMin &&
		d > game.GlideDescendGainMaxNeg && d < game.GlideDescendGainMaxPos
}

// GlideHorizontalGain reports whether the last three moves glide downwards with strictly increasing
// horizontal speed, each step bounded by GlideHorizontalGainMax.
func GlideHorizontalGain(h *movement.History) bool {
	this, err := h.Current()
	if err != nil {
		return false
	}
	last, err := h.FirstPastMove()
	if err != nil {
		return false
	}
	past, err := h.SecondPastMove()
	if err != nil || !past.ToIsValid {
		return false
	}
	return GlideVerticalGain(this.YDistance, last.YDistance) &&
		GlideVerticalGain(last.YDistance, past.YDistance) &&
		this.HDistance > last.HDistance && last.HDistance > past.HDistance &&
		this.HDistance-last.HDistance < game.GlideHorizontalGainMax &&
		last.HDistance-past.HDistance < game.GlideHorizontalGainMax
}

// NoobJumpsOffTower reports whether the current move falls back after jumping off a block placed below the feet
// while pillaring upwards.
func NoobJumpsOffTower(yDistance, maxJumpGain float64, h *movement.History, s *movement.PhysicsState) bool {
	this, err := h.Current()
	if err != nil || !InAir(this) {
		return false
	}
	last, err := h.FirstPastMove()
	if err != nil {
		return false
	}
	switch s.JumpPhase {
	case 1:
		if !last.TouchedGroundWorkaround {
			return false
		}
	case 2:
		second, err := h.SecondPastMove()
		if err != nil || !InAir(last) || !second.Valid || !second.TouchedGroundWorkaround {
			return false
		}
	default:
		return false
	}
	return last.YDistance < maxJumpGain && last.YDistance > maxJumpGain*0.67 &&
		Falling(yDistance, maxJumpGain, s.LastFrictionVertical, game.GravitySpan)
}

// ValidLiftOffAvailable reports whether any of the last limit finished moves was a full jump off the ground.
func ValidLiftOffAvailable(limit int, h *movement.History, s *movement.PhysicsState) bool {
	minY := game.LiftOffNormal.MaxGain(s.JumpAmplifier) - game.GravityMax - game.YOnGroundMin
	for i := 0; i < min(limit, h.NumberOfPastMoves()); i++ {
		past, err := h.PastMove(i)
		if err != nil {
			return false
		}
		if past.LiftOff() && past.ToIsValid && past.YDistance > minY {
			return true
		}
	}
	return false
}

// RecentlyInBubbleStream reports whether one of the last limit moves started in a bubble stream while the
// current one does not.
func RecentlyInBubbleStream(limit int, h *movement.History) bool {
	this, err := h.Current()
	if err != nil || this.From.InBubbleStream() {
		return false
	}
	for i := 0; i < min(limit, h.NumberOfPastMoves()); i++ {
		past, err := h.PastMove(i)
		if err != nil {
			return false
		}
		if past.From.InBubbleStream() {
			return true
		}
	}
	return false
}

// RecentlyInWaterfall reports whether one of the last limit moves was in a waterfall. The search stops at
// the first move that has no destination.
func RecentlyInWaterfall(limit int, h *movement.History) bool {
	for i := 0; i < min(limit, h.NumberOfPastMoves()); i++ {
		past, err := h.PastMove(i)
		if err != nil || !past.ToIsValid {
			return false
		}
		if past.InWaterfall {
			return true
		}
	}
	return false
}
