package render

import (
	"fmt"
	"math"

	"github.com/taigrr/raycast/pkg/grid"
	"github.com/taigrr/raycast/pkg/raycast"
)

// DrawScene paints a flat ceiling and floor, then one wall slice per
// segment.
func DrawScene(fb *Framebuffer, segs []raycast.Segment, pal Palette, ceiling, floor Color) {
	half := fb.Height / 2
	fb.FillRows(0, half, ceiling)
	fb.FillRows(half, fb.Height, floor)
	for _, s := range segs {
		fb.DrawVLine(s.Column, s.YTop, s.YBottom, pal.Wall(s.Tile, s.YSide))
	}
}

// Minimap describes the top-down overlay.
type Minimap struct {
	X, Y   int // top-left corner in pixels
	Cell   int // pixels per map cell
	Alpha  float64
	Camera Color

	// Border is drawn one pixel outside the map unless fully transparent.
	Border Color
}

// DefaultMinimap places a two pixel per cell map in the top-left corner.
func DefaultMinimap() Minimap {
	return Minimap{X: 1, Y: 1, Cell: 2, Alpha: 0.6, Camera: ColorYellow, Border: ColorGray}
}

// Draw renders m and the camera pose. It only reads cam.
func (mm Minimap) Draw(fb *Framebuffer, m *grid.Map, cam raycast.Camera, pal Palette) {
	if mm.Cell <= 0 {
		return
	}
	rows := m.Rows()
	for y := range rows {
		for x := range m.Cols() {
			c := ColorBlack
			if t := m.At(x, y); t != grid.Empty {
				c = Shade(pal.Color(t), mm.Alpha)
			}
			fb.DrawRect(mm.X+x*mm.Cell, mm.Y+(rows-1-y)*mm.Cell, mm.Cell, mm.Cell, c)
		}
	}
	if mm.Border.A != 0 {
		fb.DrawRectOutline(mm.X-1, mm.Y-1, m.Cols()*mm.Cell+2, rows*mm.Cell+2, mm.Border)
	}

	// Map y grows upwards so the overlay matches the first-person view.
	cell := float64(mm.Cell)
	px := func(wx, wy float64) (int, int) {
		return mm.X + int(math.Floor(wx*cell)), mm.Y + int(math.Floor((float64(rows)-wy)*cell))
	}

	cx, cy := px(cam.Position.X, cam.Position.Y)
	left := cam.Position.Add(cam.Direction.Sub(cam.Plane).Scale(2))
	right := cam.Position.Add(cam.Direction.Add(cam.Plane).Scale(2))
	lx, ly := px(left.X, left.Y)
	rx, ry := px(right.X, right.Y)
	fov := Shade(mm.Camera, 0.5)
	fb.DrawLine(cx, cy, lx, ly, fov)
	fb.DrawLine(cx, cy, rx, ry, fov)

	ahead := cam.Position.Add(cam.Direction.Normalize().Scale(3))
	fx, fy := px(ahead.X, ahead.Y)
	fb.DrawLine(cx, cy, fx, fy, mm.Camera)
	fb.SetPixel(cx, cy, ColorWhite)
}

// Renderer turns engine output into frames.
type Renderer struct {
	Engine  *raycast.Engine
	Palette Palette
	Ceiling Color
	Floor   Color

	// Minimap is drawn when ShowMinimap is set.
	Minimap     Minimap
	ShowMinimap bool

	// Workers > 1 casts columns concurrently.
	Workers int
}

// NewRenderer creates a renderer with the default palette and minimap.
func NewRenderer(e *raycast.Engine) *Renderer {
	return &Renderer{
		Engine:      e,
		Palette:     DefaultPalette(),
		Ceiling:     ColorCeiling,
		Floor:       ColorFloor,
		Minimap:     DefaultMinimap(),
		ShowMinimap: true,
	}
}

// Frame casts the current view at the framebuffer's size and draws it.
func (r *Renderer) Frame(fb *Framebuffer) error {
	segs, err := r.Engine.LinesParallel(fb.Width, fb.Height, r.Workers)
	if err != nil {
		return fmt.Errorf("cast frame: %w", err)
	}
	DrawScene(fb, segs, r.Palette, r.Ceiling, r.Floor)
	if r.ShowMinimap {
		r.Minimap.Draw(fb, r.Engine.Map(), r.Engine.Camera(), r.Palette)
	}
	return nil
}

// Snapshot renders a single width × height frame to a PNG file.
func (r *Renderer) Snapshot(path string, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("snapshot: %w: got %dx%d", raycast.ErrInvalidDimensions, width, height)
	}
	fb := NewFramebuffer(width, height)
	if err := r.Frame(fb); err != nil {
		return err
	}
	if err := fb.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
