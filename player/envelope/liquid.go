package envelope

import (
	"math"

	"github.com/KweezyCode/NoCheatPlus/game"
	"github.com/KweezyCode/NoCheatPlus/world/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// LiquidSource provides the liquid heights and flags around an entity. *world.View implements it.
type LiquidSource interface {
	LiquidHeight(pos cube.Pos, liquid block.Flags) float64
	Flags(pos cube.Pos) block.Flags
	Version() game.ClientVersion
}

// Push describes the entity a liquid push is computed for.
type Push struct {
	Box cube.BBox
	// Liquid is block.FlagWater or block.FlagLava.
	Liquid block.Flags
	// XDistance and ZDistance are the horizontal distances of the move.
	XDistance, ZDistance float64

	InWater, InLava bool
	Flying, Gliding bool
	InVehicle       bool
	// Nether raises the lava push.
	Nether bool
}

// LiquidPush returns the velocity the liquid flow around the entity adds to its move.
func LiquidPush(src LiquidSource, g game.Gates, p Push) mgl64.Vec3 {
	v := src.Version()
	if p.Flying || p.Gliding || p.InLava && !g.LavaPushes(v) {
		return mgl64.Vec3{}
	}
	legacy := g.Liquid(v) == game.LiquidContracted
	contraction := 0.0
	if legacy {
		contraction = game.LegacyLiquidContract
	}
	mn, mx := p.Box.Min(), p.Box.Max()
	minX, maxX := game.BlockCoord(mn[0]+game.LiquidBoxInset), game.CeilCoord(mx[0]-game.LiquidBoxInset)
	minY, maxY := game.BlockCoord(mn[1]+game.LiquidBoxInset+contraction), game.CeilCoord(mx[1]-game.LiquidBoxInset-contraction)
	minZ, maxZ := game.BlockCoord(mn[2]+game.LiquidBoxInset), game.CeilCoord(mx[2]-game.LiquidBoxInset)

	var (
		push  mgl64.Vec3
		depth float64
		n     int
	)
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				pos := cube.Pos{x, y, z}
				h := src.LiquidHeight(pos, p.Liquid)
				if h == 0 {
					continue
				}
				if legacy {
					if float64(maxY) >= float64(float32(y+1))-h {
						push = push.Add(FlowForce(src, pos, p.Liquid))
					}
					continue
				}
				top := float64(y) + h
				if top < mn[1] {
					continue
				}
				depth = max(top-mn[1], depth)
				flow := FlowForce(src, pos, p.Liquid)
				if depth < 0.4 {
					flow = flow.Mul(depth)
				}
				push = push.Add(flow)
				n++
			}
		}
	}

	if push.LenSqr() == 0 {
		return push
	}
	if legacy {
		if p.InWater {
			push = push.Normalize().Mul(game.WaterFlowScale)
		}
		return push
	}
	if n > 0 {
		push = push.Mul(1 / float64(n))
	}
	if p.InVehicle {
		push = push.Normalize()
	}
	switch {
	case p.InWater:
		push = push.Mul(game.WaterFlowScale)
	case p.Nether:
		push = push.Mul(game.LavaFlowScaleNether)
	default:
		push = push.Mul(game.LavaFlowScale)
	}
	if math.Abs(p.XDistance) < game.NegligibleSpeedThreshold && math.Abs(p.ZDistance) < game.NegligibleSpeedThreshold &&
		push.Len() < game.NegligiblePushMin {
		push = push.Normalize().Mul(game.NegligiblePushMin)
	}
	return push
}

var flowFaces = [...]cube.Face{cube.FaceNorth, cube.FaceEast, cube.FaceSouth, cube.FaceWest}

// FlowForce returns the normalised flow direction of the liquid at pos, computed from the height
// differences to its horizontal neighbours. Levels are compared in single precision like the client does.
func FlowForce(src LiquidSource, pos cube.Pos, liquid block.Flags) mgl64.Vec3 {
	level := float32(src.LiquidHeight(pos, liquid))
	var x, z float64
	for _, face := range flowFaces {
		side := pos.Side(face)
		if !affectsFlow(src, pos, side, liquid) {
			continue
		}
		var force float32
		sideLevel := float32(src.LiquidHeight(side, liquid))
		if sideLevel == 0 {
			if src.Flags(side).Has(block.FlagSolid) {
				continue
			}
			below := side.Side(cube.FaceDown)
			if !affectsFlow(src, pos, below, liquid) {
				continue
			}
			if belowLevel := float32(src.LiquidHeight(below, liquid)); belowLevel > 0 {
				force = level - (belowLevel - 0.8888889)
			}
		} else if sideLevel > 0 {
			force = level - sideLevel
		}
		if force == 0 {
			continue
		}
		dx, dz := float32(side.X()-pos.X()), float32(side.Z()-pos.Z())
		x += float64(dx * force)
		z += float64(dz * force)
	}
	v := mgl64.Vec3{x, 0, z}
	l := v.Len()
	if l < game.FlowNormalizeThreshold {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// affectsFlow reports whether the liquid at other takes part in the flow of the liquid at pos: other holds
// no liquid, or both hold some.
func affectsFlow(src LiquidSource, pos, other cube.Pos, liquid block.Flags) bool {
	h := src.LiquidHeight(other, liquid)
	return h == 0 || h > 0 && src.LiquidHeight(pos, liquid) > 0
}
