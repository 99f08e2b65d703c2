// Package raycast renders a first-person view of a tile grid with DDA
// raycasting.
//
// Each frame the caller adjusts the camera with TransformCam and asks for
// one vertical Segment per screen column with Lines. Drawing the segments is
// left to the caller.
package raycast

import (
	"errors"
	"fmt"

	"github.com/taigrr/raycast/pkg/grid"
	"github.com/taigrr/raycast/pkg/math2d"
)

var (
	ErrNilMap            = errors.New("raycast: nil map")
	ErrDegenerateCamera  = errors.New("raycast: degenerate camera")
	ErrInvalidDimensions = errors.New("raycast: width and height must be positive")
)

// Config holds everything needed to build an Engine.
type Config struct {
	Map    *grid.Map
	Camera Camera
}

// DefaultConfig returns the built-in map and its start pose.
func DefaultConfig() Config {
	return Config{
		Map: grid.Default(),
		Camera: Camera{
			Position:  math2d.V2(grid.DefaultPosition[0], grid.DefaultPosition[1]),
			Direction: math2d.V2(grid.DefaultDirection[0], grid.DefaultDirection[1]),
			Plane:     math2d.V2(grid.DefaultPlane[0], grid.DefaultPlane[1]),
		},
	}
}

// Engine owns the camera and casts rays against its map.
//
// The map must be enclosed by wall tiles. This is not checked per frame; a
// ray escaping an open map indexes out of range and panics. Use
// grid.Map.Validate when loading untrusted layouts.
type Engine struct {
	m   *grid.Map
	cam Camera
}

// New creates an engine. The camera must face somewhere and start in an
// empty cell.
func New(cfg Config) (*Engine, error) {
	if cfg.Map == nil {
		return nil, ErrNilMap
	}
	if cfg.Camera.Direction.LenSq() == 0 {
		return nil, fmt.Errorf("%w: zero direction", ErrDegenerateCamera)
	}
	if p := cfg.Camera.Position; cfg.Map.Solid(p.X, p.Y) {
		return nil, fmt.Errorf("%w: position (%g, %g) is inside a wall", ErrDegenerateCamera, p.X, p.Y)
	}
	return &Engine{m: cfg.Map, cam: cfg.Camera}, nil
}

// Camera returns a copy of the current camera.
func (e *Engine) Camera() Camera {
	return e.cam
}

// Map returns the engine's map. It must not be modified.
func (e *Engine) Map() *grid.Map {
	return e.m
}

// TransformCam moves and turns the camera. See Camera.Transform for the sign
// convention. No collision is applied; callers that want it should check
// CanMove first.
func (e *Engine) TransformCam(move, rotation float64) {
	e.cam.Transform(move, rotation)
}

// CanMove reports whether moving by move along the facing direction ends in
// an empty cell.
func (e *Engine) CanMove(move float64) bool {
	next := e.cam.Position.Add(e.cam.Direction.Scale(move))
	return !e.m.Solid(next.X, next.Y)
}
