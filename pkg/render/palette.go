package render

import (
	"image/color"

	"github.com/taigrr/raycast/pkg/grid"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
	ColorCeiling = color.RGBA{30, 30, 40, 255}
	ColorFloor   = color.RGBA{60, 60, 60, 255}
)

// RGB creates an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Palette maps tile ids to wall colours.
type Palette struct {
	Tiles    map[grid.Tile]Color
	Fallback Color
}

// DefaultPalette colours tiles 1-4 red, green, blue and white; anything
// else is yellow.
func DefaultPalette() Palette {
	return Palette{
		Tiles: map[grid.Tile]Color{
			1: ColorRed,
			2: ColorGreen,
			3: ColorBlue,
			4: ColorWhite,
		},
		Fallback: ColorYellow,
	}
}

// Color returns the colour for tile id.
func (p Palette) Color(id grid.Tile) Color {
	if c, ok := p.Tiles[id]; ok {
		return c
	}
	return p.Fallback
}

// Wall returns the colour of a wall slice. Y-side faces are drawn at half
// brightness so the two wall orientations read differently.
func (p Palette) Wall(id grid.Tile, ySide bool) Color {
	c := p.Color(id)
	if ySide {
		return Shade(c, 0.5)
	}
	return c
}

// Shade scales the RGB channels of c by f, leaving alpha alone.
func Shade(c Color, f float64) Color {
	scale := func(v uint8) uint8 {
		s := float64(v) * f
		switch {
		case s <= 0:
			return 0
		case s >= 255:
			return 255
		}
		return uint8(s)
	}
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
