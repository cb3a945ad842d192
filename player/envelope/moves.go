package envelope

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/player/movement"
)

// InAir reports whether the move never touched ground and neither end is in a resetting medium.
func InAir(r movement.Record) bool {
	return !r.TouchedGround && !r.From.ResetCond() && !r.To.ResetCond()
}

// XOROnGround reports whether exactly one end of the move is on ground.
func XOROnGround(r movement.Record) bool {
	return r.From.OnGround() != r.To.OnGround()
}

// ExcludeStaticSpeed is false if either end is in a medium with a fixed speed.
func ExcludeStaticSpeed(r movement.Record) bool {
	return !r.From.InWeb() && !r.To.InWeb() &&
		!r.From.OnClimbable() && !r.To.OnClimbable() &&
		!r.From.InBerryBush() && !r.To.InBerryBush()
}

// InLiquid reports whether both ends are in liquid.
func InLiquid(r movement.Record) bool {
	return r.From.InLiquid() && r.To.InLiquid() && ExcludeStaticSpeed(r)
}

// InWater reports whether both ends are in water.
func InWater(r movement.Record) bool {
	return r.From.InWater() && r.To.InWater() && ExcludeStaticSpeed(r)
}

func ResetCond(r movement.Record) bool {
	return r.From.ResetCond() || r.To.ResetCond()
}

func LeavingLiquid(r movement.Record) bool {
	return r.From.InLiquid() && !r.To.InLiquid() && ExcludeStaticSpeed(r)
}

func LeavingWater(r movement.Record) bool {
	return r.From.InWater() && !r.To.InWater() && ExcludeStaticSpeed(r)
}

func IntoLiquid(r movement.Record) bool {
	return !r.From.InLiquid() && r.To.InLiquid() && ExcludeStaticSpeed(r)
}

func IntoWater(r movement.Record) bool {
	return !r.From.InWater() && r.To.InWater() && ExcludeStaticSpeed(r)
}

// SplashMove reports whether the move leaves water right after the last move entered it from the air.
func SplashMove(this, last movement.Record) bool {
	return !this.TouchedGround && this.From.InWater() && !this.To.ResetCond() &&
		!last.TouchedGround && !last.From.ResetCond() && last.To.InWater() &&
		ExcludeStaticSpeed(this) && ExcludeStaticSpeed(last)
}

// SplashMoveNonStrict is SplashMove while allowing the last move to have touched ground.
func SplashMoveNonStrict(this, last movement.Record) bool {
	return !this.TouchedGround && this.From.InWater() && !this.To.ResetCond() &&
		!last.From.ResetCond() && last.To.InWater() &&
		ExcludeStaticSpeed(this) && ExcludeStaticSpeed(last)
}

// TouchedIce reports whether either end is on ice.
func TouchedIce(r movement.Record) bool {
	return r.From.OnIce() || r.From.OnBlueIce() || r.To.OnIce() || r.To.OnBlueIce()
}

// SwimBaseSpeedV returns the base vertical speed in water.
func SwimBaseSpeedV(swimming bool) float64 {
	if swimming {
		return game.WalkSpeed*game.ModSwim[2] + 0.1
	}
	return game.WalkSpeed*game.ModSwim[0] + 0.07
}
