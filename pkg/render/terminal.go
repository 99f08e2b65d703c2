package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// halfBlock is the upper half block; its foreground is the top pixel and
// its background the bottom one.
const halfBlock = "▀"

// Draw paints the framebuffer onto scr inside area, two pixel rows per
// terminal row.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		top := (row - area.Min.Y) * 2
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: halfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: toColor(fb.GetPixel(x, top)),
					Bg: toColor(fb.GetPixel(x, top+1)),
				},
			})
		}
	}
}

// TerminalSize returns the framebuffer dimensions that fill a cols × rows
// terminal.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// toColor maps fully transparent pixels to the terminal default colour.
func toColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
