// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/Faultbox/tinyrender/pkg/math"
)

// Shading modes for the lit pass.
const (
	ShadingPhong   = "phong"
	ShadingGouraud = "gouraud"
	ShadingFlat    = "flat"
	ShadingDepth   = "depth"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all renderer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Light   LightConfig   `yaml:"light"`
	Shadow  ShadowConfig  `yaml:"shadow"`
	Output  OutputConfig  `yaml:"output"`
	Model   ModelConfig   `yaml:"model"`
	Logging LoggingConfig `yaml:"logging"`
}

// Vec is a 3-component vector as written in YAML: [x, y, z].
type Vec [3]float32

// Vec3 converts v for use with the math package.
func (v Vec) Vec3() math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// RGBA is a colour as written in YAML: [r, g, b, a].
type RGBA [4]uint8

// Color converts c to a color.RGBA.
func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// RenderConfig holds frame and rasterization settings.
type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Margin is the viewport inset on each side, as a fraction of the frame.
	Margin     float32 `yaml:"margin"`
	Workers    int     `yaml:"workers"` // 0 = GOMAXPROCS
	Shading    string  `yaml:"shading"`
	ToonBands  int     `yaml:"toon_bands"` // Gouraud only, 0 = smooth
	Color      RGBA    `yaml:"color"`      // Gouraud and flat surface colour
	Background RGBA    `yaml:"background"`
	Wireframe  bool    `yaml:"wireframe"`
	WireColor  RGBA    `yaml:"wire_color"`
}

// CameraConfig holds the lit-pass camera.
type CameraConfig struct {
	Eye         Vec  `yaml:"eye"`
	Center      Vec  `yaml:"center"`
	Up          Vec  `yaml:"up"`
	Perspective bool `yaml:"perspective"`
	// Orbit, when set, overrides Eye.
	Orbit *OrbitConfig `yaml:"orbit,omitempty"`
}

// OrbitConfig places the eye on a sphere around the camera center.
// Angles are in degrees.
type OrbitConfig struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"`
	Yaw      float32 `yaml:"yaw"`
}

// LightConfig holds the directional light. A zero Direction selects the
// sun angles instead.
type LightConfig struct {
	Direction Vec     `yaml:"direction"`
	Longitude float32 `yaml:"longitude"`
	Latitude  float32 `yaml:"latitude"`
}

// ShadowConfig holds shadow pass settings.
type ShadowConfig struct {
	Enabled bool    `yaml:"enabled"`
	Size    int     `yaml:"size"` // Shadow buffer side, 0 = frame size
	Bias    float32 `yaml:"bias"`
	Ambient float32 `yaml:"ambient"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	Frame string `yaml:"frame"`
	Depth string `yaml:"depth"` // Shadow pass image, empty to skip
	Flip  bool   `yaml:"flip"`  // Put the frame's y axis up
}

// ModelConfig holds the meshes to render.
type ModelConfig struct {
	Paths     []string `yaml:"paths"`
	Normalize bool     `yaml:"normalize"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:      800,
			Height:     800,
			Margin:     0.125,
			Workers:    0,
			Shading:    ShadingPhong,
			Color:      RGBA{255, 255, 255, 255},
			Background: RGBA{0, 0, 0, 255},
			WireColor:  RGBA{255, 255, 255, 255},
		},
		Camera: CameraConfig{
			Eye:         Vec{1, 1, 4},
			Center:      Vec{0, 0, 0},
			Up:          Vec{0, 1, 0},
			Perspective: true,
		},
		Light: LightConfig{
			Direction: Vec{1, 1, 0},
		},
		Shadow: ShadowConfig{
			Enabled: true,
			Bias:    43.34,
			Ambient: 0.3,
		},
		Output: OutputConfig{
			Frame: "framebuffer.tga",
			Flip:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting that cannot be rendered.
func (c *Config) Validate() error {
	switch {
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	case c.Render.Margin < 0 || c.Render.Margin >= 0.5:
		return fmt.Errorf("%w: margin %v outside [0, 0.5)", ErrInvalid, c.Render.Margin)
	case c.Render.ToonBands < 0:
		return fmt.Errorf("%w: toon_bands %d", ErrInvalid, c.Render.ToonBands)
	case c.Shadow.Size < 0:
		return fmt.Errorf("%w: shadow size %d", ErrInvalid, c.Shadow.Size)
	case c.Shadow.Ambient < 0 || c.Shadow.Ambient > 1:
		return fmt.Errorf("%w: shadow ambient %v outside [0, 1]", ErrInvalid, c.Shadow.Ambient)
	case c.Camera.Orbit != nil && c.Camera.Orbit.Distance <= 0:
		return fmt.Errorf("%w: orbit distance %v", ErrInvalid, c.Camera.Orbit.Distance)
	case c.Camera.Orbit == nil && c.Camera.Eye == c.Camera.Center:
		return fmt.Errorf("%w: camera eye equals center", ErrInvalid)
	}

	switch c.Render.Shading {
	case ShadingPhong, ShadingGouraud, ShadingFlat, ShadingDepth:
	default:
		return fmt.Errorf("%w: unknown shading %q", ErrInvalid, c.Render.Shading)
	}
	return nil
}
