package block

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Box builders for Definition.Boxes. Data layouts:
//   - facing blocks: data&3 indexes facings
//   - fences, walls, panes: data bits 1/2/4/8 connect north/east/south/west
//   - trapdoors: data&4 open, data&8 top half
//   - slabs: 0 bottom, 1 top, 2 double
//   - stairs: data&4 upside down

var facings = [4]cube.Direction{cube.North, cube.East, cube.South, cube.West}

const (
	connectNorth = 1 << iota
	connectEast
	connectSouth
	connectWest
)

func full() cube.BBox {
	return cube.Box(0, 0, 0, 1, 1, 1)
}

func fullBox(uint8) []cube.BBox {
	return []cube.BBox{full()}
}

// height returns a builder for a full-width box of height h.
func height(h float64) func(uint8) []cube.BBox {
	return func(uint8) []cube.BBox {
		return []cube.BBox{cube.Box(0, 0, 0, 1, h, 1)}
	}
}

// centred returns a builder for a box inset horizontally by inset on every side.
func centred(inset, h float64) func(uint8) []cube.BBox {
	return func(uint8) []cube.BBox {
		return []cube.BBox{cube.Box(inset, 0, inset, 1-inset, h, 1-inset)}
	}
}

// connected returns a builder for posts with arms inset by inset, as used by fences, walls and panes.
// armInset is the inset of the connecting arms, which may differ from the post.
func connected(inset, armInset, h float64) func(uint8) []cube.BBox {
	return func(data uint8) (bbs []cube.BBox) {
		west, east := data&connectWest != 0, data&connectEast != 0
		if west || east {
			bb := cube.Box(0, 0, 0, 1, h, 1).Stretch(cube.Z, -armInset)
			if !west {
				bb = bb.ExtendTowards(cube.FaceWest, -inset)
			} else if !east {
				bb = bb.ExtendTowards(cube.FaceEast, -inset)
			}
			bbs = append(bbs, bb)
		}
		north, south := data&connectNorth != 0, data&connectSouth != 0
		if north || south {
			bb := cube.Box(0, 0, 0, 1, h, 1).Stretch(cube.X, -armInset)
			if !north {
				bb = bb.ExtendTowards(cube.FaceNorth, -inset)
			} else if !south {
				bb = bb.ExtendTowards(cube.FaceSouth, -inset)
			}
			bbs = append(bbs, bb)
		}
		if len(bbs) == 0 {
			bbs = append(bbs, cube.Box(inset, 0, inset, 1-inset, h, 1-inset))
		}
		return bbs
	}
}

func slab(data uint8) []cube.BBox {
	switch data {
	case 1:
		return []cube.BBox{cube.Box(0, 0.5, 0, 1, 1, 1)}
	case 2:
		return []cube.BBox{full()}
	default:
		return []cube.BBox{cube.Box(0, 0, 0, 1, 0.5, 1)}
	}
}

func stairs(data uint8) []cube.BBox {
	facing := facings[data&3]
	base := cube.Box(0, 0, 0, 1, 0.5, 1)
	step := cube.Box(0.5, 0.5, 0.5, 0.5, 1, 0.5).
		ExtendTowards(facing.Face(), 0.5).
		Stretch(facing.RotateRight().Face().Axis(), 0.5)
	if data&4 != 0 {
		base = cube.Box(0, 0.5, 0, 1, 1, 1)
		step = cube.Box(step.Min()[0], 0, step.Min()[2], step.Max()[0], 0.5, step.Max()[2])
	}
	return []cube.BBox{base, step}
}

func trapdoor(data uint8) []cube.BBox {
	const thickness = 3.0 / 16.0
	if data&4 != 0 {
		face := facings[data&3].Face()
		return []cube.BBox{full().ExtendTowards(face.Opposite(), -(1 - thickness))}
	}
	if data&8 != 0 {
		return []cube.BBox{cube.Box(0, 1-thickness, 0, 1, 1, 1)}
	}
	return []cube.BBox{cube.Box(0, 0, 0, 1, thickness, 1)}
}

func fenceGate(data uint8) []cube.BBox {
	switch facings[data&3] {
	case cube.North, cube.South:
		return []cube.BBox{cube.Box(0, 0, 0.375, 1, 1.5, 0.625)}
	default:
		return []cube.BBox{cube.Box(0.375, 0, 0, 0.625, 1.5, 1)}
	}
}

func ladder(data uint8) []cube.BBox {
	const depth = 3.0 / 16.0
	face := facings[data&3].Face()
	return []cube.BBox{full().ExtendTowards(face.Opposite(), -(1 - depth))}
}

func cauldron(uint8) []cube.BBox {
	const wall = 0.125
	return []cube.BBox{
		cube.Box(0, 0, 0, 1, 0.3125, 1),
		cube.Box(0, 0, 0, wall, 1, 1),
		cube.Box(1-wall, 0, 0, 1, 1, 1),
		cube.Box(0, 0, 0, 1, 1, wall),
		cube.Box(0, 0, 1-wall, 1, 1, 1),
	}
}

func hopper(uint8) []cube.BBox {
	return []cube.BBox{
		cube.Box(0, 0.625, 0, 1, 1, 1),
		cube.Box(0.25, 0.25, 0.25, 0.75, 0.625, 0.75),
		cube.Box(0.375, 0, 0.375, 0.625, 0.25, 0.625),
	}
}

func snowLayer(data uint8) []cube.BBox {
	return []cube.BBox{cube.Box(0, 0, 0, 1, 0.125*float64(data%8+1), 1)}
}
