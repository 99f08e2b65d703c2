package math2d

import "math"

// Mat2 is a 2x2 matrix stored in row-major order.
//
// | 0  1 |
// | 2  3 |
type Mat2 [4]float64

// Identity2 returns the identity matrix.
func Identity2() Mat2 {
	return Mat2{
		1, 0,
		0, 1,
	}
}

// Rotation creates a counter-clockwise rotation matrix for angle radians:
//
// | cos -sin |
// | sin  cos |
func Rotation(angle float64) Mat2 {
	s, c := math.Sincos(angle)
	return Mat2{
		c, -s,
		s, c,
	}
}

// Mul returns the matrix product m * n.
func (m Mat2) Mul(n Mat2) Mat2 {
	return Mat2{
		m[0]*n[0] + m[1]*n[2], m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2], m[2]*n[1] + m[3]*n[3],
	}
}

// MulVec2 transforms v by m. Both output components are computed from the
// original v.
func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[1]*v.Y,
		m[2]*v.X + m[3]*v.Y,
	}
}

// Det returns the determinant.
func (m Mat2) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Transpose returns the transposed matrix. For a rotation this is its inverse.
func (m Mat2) Transpose() Mat2 {
	return Mat2{
		m[0], m[2],
		m[1], m[3],
	}
}
