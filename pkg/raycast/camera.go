package raycast

import "github.com/taigrr/raycast/pkg/math2d"

// Camera is the viewer pose on the grid.
type Camera struct {
	// Position in map space; cell (x, y) covers [x, x+1) × [y, y+1).
	Position math2d.Vec2

	// Direction the camera faces. Its length scales the distance to the
	// projection plane.
	Direction math2d.Vec2

	// Plane is the projection plane half-width vector. Its length relative
	// to Direction sets the horizontal field of view.
	Plane math2d.Vec2
}

// Transform moves the camera along its facing direction by move, then
// rotates Direction and Plane together by rotation radians.
//
// Positive rotation is counter-clockwise in map space (x right, y up). On a
// minimap drawn with y growing downwards the same turn appears clockwise.
// Rotation is orthogonal, so |Direction| and |Plane| are preserved and the
// field of view never drifts.
func (c *Camera) Transform(move, rotation float64) {
	if move != 0 {
		c.Position = c.Position.Add(c.Direction.Scale(move))
	}
	if rotation != 0 {
		rot := math2d.Rotation(rotation)
		c.Direction = rot.MulVec2(c.Direction)
		c.Plane = rot.MulVec2(c.Plane)
	}
}

// RayDir returns the ray direction for screen column x of width columns.
// Column 0 maps to Direction-Plane and the last column approaches
// Direction+Plane.
func (c Camera) RayDir(x, width int) math2d.Vec2 {
	cameraX := 2*float64(x)/float64(width) - 1
	return c.Direction.Add(c.Plane.Scale(cameraX))
}
