// Package config loads the viewer configuration from YAML.
package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"meshview/linear"
	"meshview/mesh"
	"meshview/scene"
)

// Config is the full viewer configuration.
type Config struct {
	Window     Window   `yaml:"window"`
	Mesh       string   `yaml:"mesh"`
	Camera     Camera   `yaml:"camera"`
	Step       float64  `yaml:"step"`
	Background [3]uint8 `yaml:"background"`
	HUD        bool     `yaml:"hud"`
	Objects    []Object `yaml:"objects"`
}

// Window is the size and title of the render surface.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Camera is the fixed viewing setup.
type Camera struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	Up       [3]float64 `yaml:"up"`
	Scale    [3]float64 `yaml:"scale"`
	Offset   [2]float64 `yaml:"offset"`
}

// Object routes mesh groups whose name contains Match into one coloured
// object. The object with an empty Match takes everything else.
type Object struct {
	Name  string   `yaml:"name"`
	Match string   `yaml:"match"`
	Color [3]uint8 `yaml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: Window{Width: 1280, Height: 760, Title: "meshview"},
		Mesh:   "9.obj",
		Camera: Camera{
			Position: [3]float64{0.6, 0.4, 0.8},
			Up:       [3]float64{0, 1, 0},
			Scale:    [3]float64{0.2, 0.5, 0.2},
			Offset:   [2]float64{250, -200},
		},
		Step:       10,
		Background: [3]uint8{255, 255, 255},
		HUD:        true,
		Objects: []Object{
			{Name: "circle", Match: "Окружность", Color: [3]uint8{100, 0, 0}},
			{Name: "body", Color: [3]uint8{0, 0, 100}},
		},
	}
}

// Loader handles loading and validating YAML configuration files
type Loader struct{}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a YAML file over Default. A relative mesh path is resolved
// against the directory of the file.
func (l *Loader) Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if !filepath.IsAbs(cfg.Mesh) {
		dir, err := filepath.Abs(filepath.Dir(configPath))
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path of config directory: %w", err)
		}
		cfg.Mesh = filepath.Join(dir, cfg.Mesh)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (l *Loader) Validate(cfg *Config) error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Mesh == "" {
		return fmt.Errorf("mesh file must be specified")
	}
	if math.IsNaN(cfg.Step) || math.IsInf(cfg.Step, 0) {
		return fmt.Errorf("rotation step must be finite")
	}

	if err := validateCamera(cfg.Camera); err != nil {
		return err
	}
	right, up, back := cfg.SceneCamera().Basis()
	if back.IsZero() {
		return fmt.Errorf("camera position and target must differ")
	}
	if right.IsZero() || up.IsZero() {
		return fmt.Errorf("camera up must not be parallel to the view direction")
	}

	if len(cfg.Objects) == 0 {
		return fmt.Errorf("at least one object must be defined")
	}
	seen := map[string]bool{}
	defaults := 0
	for i, o := range cfg.Objects {
		if o.Name == "" {
			return fmt.Errorf("object %d: name is required", i)
		}
		if seen[o.Name] {
			return fmt.Errorf("object %s: duplicate name", o.Name)
		}
		seen[o.Name] = true
		if o.Match == "" {
			defaults++
		}
	}
	if defaults != 1 {
		return fmt.Errorf("exactly one object must have an empty match, got %d", defaults)
	}
	return nil
}

// maxScale bounds camera.scale; larger factors put vertices so far off the
// surface that nothing useful is left to draw.
const maxScale = 1e6

func validateCamera(c Camera) error {
	for _, vs := range [][]float64{c.Position[:], c.Target[:], c.Up[:], c.Scale[:], c.Offset[:]} {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("camera values must be finite")
			}
		}
	}
	for _, s := range c.Scale {
		if s == 0 || math.Abs(s) > maxScale {
			return fmt.Errorf("camera scale must be non-zero and at most %g in magnitude, got %v", float64(maxScale), c.Scale)
		}
	}
	return nil
}

func vec(a [3]float64) linear.Vec3 { return linear.V3(a[0], a[1], a[2]) }

func rgb(c [3]uint8) color.RGBA { return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF} }

// SceneCamera converts the camera section.
func (c *Config) SceneCamera() scene.Camera {
	return scene.Camera{
		Position: vec(c.Camera.Position),
		Target:   vec(c.Camera.Target),
		Up:       vec(c.Camera.Up),
		Scale:    vec(c.Camera.Scale),
		OffsetX:  c.Camera.Offset[0],
		OffsetY:  c.Camera.Offset[1],
	}
}

// Rules converts the objects section into routing rules.
func (c *Config) Rules() []mesh.Rule {
	rules := make([]mesh.Rule, len(c.Objects))
	for i, o := range c.Objects {
		rules[i] = mesh.Rule{Name: o.Name, Match: o.Match, Color: rgb(o.Color)}
	}
	return rules
}

// BackgroundColor returns the clear colour.
func (c *Config) BackgroundColor() color.RGBA { return rgb(c.Background) }
