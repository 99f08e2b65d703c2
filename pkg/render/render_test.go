package render

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/raycast/pkg/grid"
	"github.com/taigrr/raycast/pkg/math2d"
	"github.com/taigrr/raycast/pkg/raycast"
)

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(-1, 0, ColorRed)
	fb.SetPixel(4, 0, ColorRed)
	fb.SetPixel(0, 3, ColorRed)
	for i, p := range fb.Pixels {
		if p != (Color{}) {
			t.Fatalf("pixel %d = %v after out of range writes", i, p)
		}
	}
	if got := fb.GetPixel(10, 10); got != (Color{}) {
		t.Errorf("GetPixel out of range = %v, want zero", got)
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"horizontal", 0, 1, 3, 1, [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}}},
		{"vertical reversed", 2, 3, 2, 0, [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}}},
		{"diagonal", 0, 0, 3, 3, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"single point", 1, 1, 1, 1, [][2]int{{1, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(4, 4)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorWhite)

			count := 0
			for _, p := range fb.Pixels {
				if p == ColorWhite {
					count++
				}
			}
			if count != len(tc.want) {
				t.Errorf("drew %d pixels, want %d", count, len(tc.want))
			}
			for _, p := range tc.want {
				if fb.GetPixel(p[0], p[1]) != ColorWhite {
					t.Errorf("pixel %v not set", p)
				}
			}
		})
	}
}

func TestDrawVLineClamps(t *testing.T) {
	fb := NewFramebuffer(3, 5)
	fb.DrawVLine(1, 3, -4, ColorGreen)
	fb.DrawVLine(2, 2, 99, ColorBlue)
	fb.DrawVLine(7, 0, 4, ColorRed)

	for y := range 5 {
		wantG := y <= 3
		if got := fb.GetPixel(1, y) == ColorGreen; got != wantG {
			t.Errorf("column 1 row %d green = %v, want %v", y, got, wantG)
		}
		wantB := y >= 2
		if got := fb.GetPixel(2, y) == ColorBlue; got != wantB {
			t.Errorf("column 2 row %d blue = %v, want %v", y, got, wantB)
		}
	}
}

func TestPalette(t *testing.T) {
	pal := DefaultPalette()

	tests := []struct {
		tile  grid.Tile
		ySide bool
		want  Color
	}{
		{1, false, ColorRed},
		{1, true, RGB(127, 0, 0)},
		{2, false, ColorGreen},
		{3, true, RGB(0, 0, 127)},
		{4, true, RGB(127, 127, 127)},
		{5, false, ColorYellow},
		{200, true, RGB(127, 127, 0)},
	}
	for _, tc := range tests {
		if got := pal.Wall(tc.tile, tc.ySide); got != tc.want {
			t.Errorf("Wall(%d, %v) = %v, want %v", tc.tile, tc.ySide, got, tc.want)
		}
	}

	if got := Shade(RGB(200, 100, 10), 2); got != RGB(255, 200, 20) {
		t.Errorf("Shade saturates to %v, want %v", got, RGB(255, 200, 20))
	}
}

func newRoomEngine(t *testing.T) *raycast.Engine {
	t.Helper()
	m := grid.MustNew([][]grid.Tile{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 2},
		{1, 0, 0, 0, 2},
		{1, 0, 0, 0, 2},
		{1, 1, 1, 1, 1},
	})
	e, err := raycast.New(raycast.Config{
		Map: m,
		Camera: raycast.Camera{
			Position:  math2d.V2(1.5, 2.5),
			Direction: math2d.V2(1, 0),
			Plane:     math2d.V2(0, 0.66),
		},
	})
	if err != nil {
		t.Fatalf("raycast.New: %v", err)
	}
	return e
}

func TestDrawScene(t *testing.T) {
	e := newRoomEngine(t)
	fb := NewFramebuffer(8, 40)

	segs, err := e.Lines(fb.Width, fb.Height)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	DrawScene(fb, segs, DefaultPalette(), ColorCeiling, ColorFloor)

	// The centre column looks straight at the green wall 2.5 cells away:
	// 16 rows tall, centred on row 20.
	if got := fb.GetPixel(4, 20); got != ColorGreen {
		t.Errorf("centre pixel = %v, want green", got)
	}
	if got := fb.GetPixel(4, 0); got != ColorCeiling {
		t.Errorf("top pixel = %v, want ceiling", got)
	}
	if got := fb.GetPixel(4, 39); got != ColorFloor {
		t.Errorf("bottom pixel = %v, want floor", got)
	}
}

func TestMinimapDoesNotMoveCamera(t *testing.T) {
	e := newRoomEngine(t)
	before := e.Camera()

	fb := NewFramebuffer(40, 40)
	mm := DefaultMinimap()
	mm.Cell = 4
	mm.Draw(fb, e.Map(), e.Camera(), DefaultPalette())

	if e.Camera() != before {
		t.Errorf("camera changed from %+v to %+v", before, e.Camera())
	}
	cx, cy := mm.X+6, mm.Y+10 // (1.5, 2.5) at 4 px per cell
	if got := fb.GetPixel(cx, cy); got != ColorWhite {
		t.Errorf("camera marker = %v, want white", got)
	}
	if got := fb.GetPixel(mm.X, mm.Y); got != Shade(ColorRed, mm.Alpha) {
		t.Errorf("corner wall = %v, want shaded red", got)
	}

	// 5x5 cells at 4 px with a one pixel frame around them.
	for _, p := range [][2]int{{0, 0}, {21, 0}, {0, 21}, {21, 21}, {10, 0}} {
		if got := fb.GetPixel(p[0], p[1]); got != ColorGray {
			t.Errorf("border pixel %v = %v, want gray", p, got)
		}
	}
	if got := fb.GetPixel(22, 22); got == ColorGray {
		t.Errorf("pixel outside border is gray")
	}
}

func TestRendererSnapshot(t *testing.T) {
	r := NewRenderer(newRoomEngine(t))
	r.Workers = 3

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := r.Snapshot(path, 32, 24); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("snapshot size = %dx%d, want 32x24", b.Dx(), b.Dy())
	}

	for _, size := range [][2]int{{0, 24}, {-10, 400}, {400, -10}, {-3, -3}} {
		err := r.Snapshot(path, size[0], size[1])
		if !errors.Is(err, raycast.ErrInvalidDimensions) {
			t.Errorf("Snapshot(%d, %d) error = %v, want ErrInvalidDimensions", size[0], size[1], err)
		}
	}
}

func TestDrawToScreen(t *testing.T) {
	fb := NewFramebuffer(2, 4)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(0, 1, ColorBlue)
	fb.SetPixel(1, 2, ColorGreen)

	scr := uv.NewScreenBuffer(2, 2)
	fb.Draw(scr, uv.Rect(0, 0, 2, 2))

	cell := scr.CellAt(0, 0)
	if cell == nil || cell.Content != halfBlock {
		t.Fatalf("cell (0, 0) = %+v, want half block", cell)
	}
	if cell.Style.Fg != ColorRed || cell.Style.Bg != ColorBlue {
		t.Errorf("cell (0, 0) fg/bg = %v/%v, want red/blue", cell.Style.Fg, cell.Style.Bg)
	}
	if cell := scr.CellAt(1, 1); cell == nil || cell.Style.Fg != ColorGreen || cell.Style.Bg != nil {
		t.Errorf("cell (1, 1) = %+v, want green over default", cell)
	}
}
