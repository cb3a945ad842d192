package game

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// AABBFromDimensions returns a bounding box centred on the origin horizontally with its base at y=0.
func AABBFromDimensions(width, height float64) cube.BBox {
	h := width / 2
	return cube.Box(-h, 0, -h, h, height, h)
}

// EntityBox returns the bounding box of an entity with the given dimensions standing at pos.
func EntityBox(pos mgl64.Vec3, width, height float64) cube.BBox {
	return AABBFromDimensions(width, height).Translate(pos)
}

// Contract shrinks bb by dx/dy/dz on every side. Unlike Grow it never panics on inverted results;
// collapsed axes are clamped to the centre.
func Contract(bb cube.BBox, dx, dy, dz float64) cube.BBox {
	mn, mx := bb.Min(), bb.Max()
	mn, mx = mgl64.Vec3{mn[0] + dx, mn[1] + dy, mn[2] + dz}, mgl64.Vec3{mx[0] - dx, mx[1] - dy, mx[2] - dz}
	for i := 0; i < 3; i++ {
		if mn[i] > mx[i] {
			c := (mn[i] + mx[i]) / 2
			mn[i], mx[i] = c, c
		}
	}
	return cube.Box(mn[0], mn[1], mn[2], mx[0], mx[1], mx[2])
}

// Box returns a bounding box from raw bounds.
func Box(minX, minY, minZ, maxX, maxY, maxZ float64) cube.BBox {
	return cube.Box(minX, minY, minZ, maxX, maxY, maxZ)
}

// HorizontalMargin returns the margin that, removed from both sides, leaves half the box width.
func HorizontalMargin(bb cube.BBox) float64 {
	return bb.Width() / 4
}

// BlockCoord floors a world coordinate to its block coordinate.
func BlockCoord(v float64) int {
	return int(math.Floor(v))
}

// CeilCoord returns the ceiling of v as a block coordinate.
func CeilCoord(v float64) int {
	return int(math.Ceil(v))
}

// HorizontalDistance returns the length of the x/z components of delta.
func HorizontalDistance(delta mgl64.Vec3) float64 {
	return math.Hypot(delta[0], delta[2])
}
