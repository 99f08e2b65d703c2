package raycast

import (
	"fmt"
	"math"

	"github.com/taigrr/raycast/pkg/grid"
	"github.com/taigrr/raycast/pkg/math2d"
)

// Side is the grid-line axis a ray crossed last before hitting a wall.
type Side int

const (
	SideX Side = iota // crossed a vertical grid line (east/west face)
	SideY             // crossed a horizontal grid line (north/south face)
)

// Hit describes where a ray stopped.
type Hit struct {
	CellX, CellY int
	Side         Side
	Tile         grid.Tile

	// Distance is the perpendicular distance to the wall, measured along
	// the camera direction rather than along the ray.
	Distance float64
}

// Segment is the vertical slice drawn for one screen column.
type Segment struct {
	Column   int
	YTop     int
	YBottom  int
	Tile     grid.Tile
	YSide    bool
	Distance float64
}

// axis holds the DDA state for one axis.
type axis struct {
	delta float64 // ray length between two grid lines on this axis
	side  float64 // ray length to the next grid line on this axis
	step  int
}

// newAxis prepares an axis for ray component dir starting at pos in cell.
// A zero component never crosses a grid line, so both distances are +Inf
// and the axis loses every comparison.
func newAxis(dir, pos float64, cell int) axis {
	if dir == 0 {
		return axis{delta: math.Inf(1), side: math.Inf(1), step: 1}
	}
	delta := math.Abs(1 / dir)
	if dir < 0 {
		return axis{delta: delta, side: (pos - float64(cell)) * delta, step: -1}
	}
	return axis{delta: delta, side: (float64(cell) + 1 - pos) * delta, step: 1}
}

// CastRay walks the grid from the camera position along rayDir until it
// enters a wall cell.
func (e *Engine) CastRay(rayDir math2d.Vec2) Hit {
	return castRay(e.m, e.cam.Position, rayDir)
}

func castRay(m *grid.Map, pos, rayDir math2d.Vec2) Hit {
	mapX, mapY := int(math.Floor(pos.X)), int(math.Floor(pos.Y))
	ax := newAxis(rayDir.X, pos.X, mapX)
	ay := newAxis(rayDir.Y, pos.Y, mapY)

	// Ties step the y axis.
	side := SideX
	for {
		if ax.side < ay.side {
			ax.side += ax.delta
			mapX += ax.step
			side = SideX
		} else {
			ay.side += ay.delta
			mapY += ay.step
			side = SideY
		}
		if m.At(mapX, mapY) != grid.Empty {
			break
		}
	}

	// The last step overshoots by one delta.
	dist := ax.side - ax.delta
	if side == SideY {
		dist = ay.side - ay.delta
	}

	return Hit{
		CellX:    mapX,
		CellY:    mapY,
		Side:     side,
		Tile:     m.At(mapX, mapY),
		Distance: dist,
	}
}

// Project returns the clamped top and bottom rows of a wall slice at
// distance dist on a screen height rows tall.
func Project(dist float64, height int) (top, bottom int) {
	h := float64(height)
	lineHeight := h / dist
	maxY := h - 1
	return int(clamp(h/2-lineHeight/2, 0, maxY)), int(clamp(h/2+lineHeight/2, 0, maxY))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lines casts one ray per column and returns the wall slices in column
// order.
func (e *Engine) Lines(width, height int) ([]Segment, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	segs := make([]Segment, width)
	castColumns(e.m, e.cam, segs, 0, width, height)
	return segs, nil
}

// castColumns fills segs[lo:hi].
func castColumns(m *grid.Map, cam Camera, segs []Segment, lo, hi, height int) {
	width := len(segs)
	for x := lo; x < hi; x++ {
		hit := castRay(m, cam.Position, cam.RayDir(x, width))
		top, bottom := Project(hit.Distance, height)
		segs[x] = Segment{
			Column:   x,
			YTop:     top,
			YBottom:  bottom,
			Tile:     hit.Tile,
			YSide:    hit.Side == SideY,
			Distance: hit.Distance,
		}
	}
}
