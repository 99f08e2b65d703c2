package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/taigrr/raycast/pkg/grid"
	"github.com/taigrr/raycast/pkg/math2d"
	"github.com/taigrr/raycast/pkg/raycast"
)

// EnvPrefix prefixes environment overrides, e.g. RAYCAST_FPS=30.
const EnvPrefix = "RAYCAST"

var ErrBadVector = errors.New("config: vector must have exactly two components")

// MapConfig selects the level. File wins over Layout; both empty means the
// built-in map.
type MapConfig struct {
	File   string   `json:"file" mapstructure:"file"`
	Layout []string `json:"layout" mapstructure:"layout"`
}

// CameraConfig is the start pose.
type CameraConfig struct {
	Position  []float64 `json:"position" mapstructure:"position"`
	Direction []float64 `json:"direction" mapstructure:"direction"`
	Plane     []float64 `json:"plane" mapstructure:"plane"`
}

// ControlsConfig tunes input handling.
type ControlsConfig struct {
	MoveSpeed  float64 `json:"moveSpeed" mapstructure:"moveSpeed"`
	TurnSpeed  float64 `json:"turnSpeed" mapstructure:"turnSpeed"`
	InvertTurn bool    `json:"invertTurn" mapstructure:"invertTurn"`
}

// RenderConfig controls the terminal view.
type RenderConfig struct {
	Minimap     bool `json:"minimap" mapstructure:"minimap"`
	MinimapCell int  `json:"minimapCell" mapstructure:"minimapCell"`
}

// Settings is the resolved configuration.
type Settings struct {
	LogLevel string         `json:"logLevel" mapstructure:"logLevel"`
	LogFile  string         `json:"logFile" mapstructure:"logFile"`
	FPS      int            `json:"fps" mapstructure:"fps"`
	Workers  int            `json:"workers" mapstructure:"workers"`
	Map      MapConfig      `json:"map" mapstructure:"map"`
	Camera   CameraConfig   `json:"camera" mapstructure:"camera"`
	Controls ControlsConfig `json:"controls" mapstructure:"controls"`
	Render   RenderConfig   `json:"render" mapstructure:"render"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("fps", 60)
	v.SetDefault("workers", 0)

	v.SetDefault("map.file", "")
	v.SetDefault("map.layout", []string{})

	v.SetDefault("camera.position", grid.DefaultPosition[:])
	v.SetDefault("camera.direction", grid.DefaultDirection[:])
	v.SetDefault("camera.plane", grid.DefaultPlane[:])

	v.SetDefault("controls.moveSpeed", 3.0)
	v.SetDefault("controls.turnSpeed", 2.0)
	v.SetDefault("controls.invertTurn", false)

	v.SetDefault("render.minimap", true)
	v.SetDefault("render.minimapCell", 2)
}

// New returns a viper instance with defaults and environment overrides
// registered but no file read.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path, if set, on top of the defaults. The
// format follows the file extension (json, yaml, toml).
func Load(path string) (*Settings, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return Decode(v)
}

// Decode unmarshals v into Settings.
func Decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if s.FPS <= 0 {
		return nil, fmt.Errorf("config: fps must be positive, got %d", s.FPS)
	}
	return &s, nil
}

// LoadMap resolves the configured level and checks that it is closed.
func (s *Settings) LoadMap() (*grid.Map, error) {
	switch {
	case s.Map.File != "":
		return grid.Load(s.Map.File)
	case len(s.Map.Layout) > 0:
		m, err := grid.ParseRows(s.Map.Layout)
		if err != nil {
			return nil, fmt.Errorf("parse map layout: %w", err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("validate map layout: %w", err)
		}
		return m, nil
	}
	return grid.Default(), nil
}

// EngineConfig builds the engine configuration from the settings.
func (s *Settings) EngineConfig() (raycast.Config, error) {
	m, err := s.LoadMap()
	if err != nil {
		return raycast.Config{}, err
	}
	pos, err := vec(s.Camera.Position, "camera.position")
	if err != nil {
		return raycast.Config{}, err
	}
	dir, err := vec(s.Camera.Direction, "camera.direction")
	if err != nil {
		return raycast.Config{}, err
	}
	plane, err := vec(s.Camera.Plane, "camera.plane")
	if err != nil {
		return raycast.Config{}, err
	}
	return raycast.Config{
		Map:    m,
		Camera: raycast.Camera{Position: pos, Direction: dir, Plane: plane},
	}, nil
}

func vec(v []float64, key string) (math2d.Vec2, error) {
	if len(v) != 2 {
		return math2d.Vec2{}, fmt.Errorf("%w: %s has %d", ErrBadVector, key, len(v))
	}
	return math2d.V2(v[0], v[1]), nil
}
