package envelope

import (
	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/player/movement"
	"github.com/KweezyCode/NoCheatPlus/world/block"
)

// VerticalFriction returns the vertical inertia of the medium the move starts in.
func VerticalFriction(from movement.Endpoint) float64 {
	switch {
	case from.InWater():
		return game.WaterVerticalInertia
	case from.InLava():
		return game.LavaVerticalInertia
	}
	return game.FrictionMediumAir
}

// MediumFriction returns the vertical friction used by the medium envelopes, which are looser than the
// client's inertia in liquids.
func MediumFriction(from movement.Endpoint) float64 {
	switch {
	case from.InWater():
		return game.FrictionMediumWater
	case from.InLava():
		return game.FrictionMediumLava
	}
	return game.FrictionMediumAir
}

// StuckVertical returns the vertical speed multiplier of the block the entity is stuck in.
func StuckVertical(from movement.Endpoint, flying bool) float64 {
	switch {
	case flying:
		return 1
	case from.InBerryBush():
		return 0.75
	case from.InPowderSnow():
		return 1.5
	case from.InWeb():
		return 0.05
	}
	return 1
}

// StuckHorizontal returns the horizontal speed multiplier of the block the entity is stuck in.
func StuckHorizontal(from movement.Endpoint, flying bool) float64 {
	switch {
	case flying:
		return 1
	case from.InWeb():
		return 0.25
	case from.InBerryBush():
		return 0.8
	case from.InPowderSnow():
		return 0.8999999761581421
	}
	return 1
}

// BlockFriction returns the friction of the block below the move start.
func BlockFriction(from movement.Endpoint, flying, gliding bool) float32 {
	if flying || gliding {
		return 1
	}
	switch f := from.BlockBelowFlags; {
	case f.Has(block.FlagBlueIce):
		return game.BlueIceBlockFriction
	case f.Has(block.FlagIce):
		return game.IceBlockFriction
	case f.Has(block.FlagSlime):
		return game.SlimeBlockFriction
	}
	return game.DefaultBlockFriction
}

// BlockSpeedFactor returns the speed multiplier of the block at the feet, or of the block below if the
// feet block has none and is not water.
func BlockSpeedFactor(from movement.Endpoint, flying, gliding, soulSpeed bool) float32 {
	if flying || gliding {
		return 1
	}
	factor := speedFactorOf(from.SurfaceFlags, soulSpeed)
	if factor == 1 && !from.SurfaceFlags.Has(block.FlagWater) && !from.SurfaceFlags.Has(block.FlagBubbleColumn) {
		factor = speedFactorOf(from.BlockBelowFlags, soulSpeed)
	}
	return factor
}

func speedFactorOf(f block.Flags, soulSpeed bool) float32 {
	switch {
	case f.Has(block.FlagSoulSand):
		if soulSpeed {
			return 1
		}
		return game.SoulSandSpeedFactor
	case f.Has(block.FlagSticky):
		return game.HoneySpeedFactor
	}
	return 1
}

// PowderSnowSlowdown returns the speed penalty for freezeTicks ticks spent in powder snow. Entities that
// cannot freeze get none.
func PowderSnowSlowdown(freezeTicks int, canFreeze bool) float32 {
	if !canFreeze || freezeTicks <= 0 {
		return 0
	}
	return game.PowderSnowSlowdownBase * float32(min(freezeTicks, game.MaxFreezeTicks)) / game.MaxFreezeTicks
}

// CanStandOnPowderSnow reports whether the client supports powder snow and the entity wears leather boots.
func CanStandOnPowderSnow(v game.ClientVersion, g game.Gates, leatherBoots bool) bool {
	return game.Has(v, g.PowderSnowSince) && leatherBoots
}

// SlopeSlowdown returns the speed decrease modifier after a bunny hop following the move passed.
func SlopeSlowdown(last movement.Record) float64 {
	switch {
	case last.From.OnBlueIce() || last.To.OnBlueIce():
		return 0.142027114267269
	case last.From.OnIce() || last.To.OnIce():
		return 0.159036144578313
	case last.From.OnBouncyBlock() || last.To.OnBouncyBlock():
		return 0.594594594594595
	}
	return 0.66
}

// BunnySlopeSlowdown returns SlopeSlowdown for the last finished move, or the ordinary modifier without one.
func BunnySlopeSlowdown(h *movement.History) float64 {
	last, err := h.FirstPastMove()
	if err != nil {
		return SlopeSlowdown(movement.Record{})
	}
	return SlopeSlowdown(last)
}
