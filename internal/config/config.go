// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/trackview/internal/scene/facelist"
)

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Rendering RenderingConfig `yaml:"rendering"`
	Camera    CameraConfig    `yaml:"camera"`
	Route     RouteConfig     `yaml:"route"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderingConfig holds face list and pass settings.
type RenderingConfig struct {
	// Transparency is "performance" or "quality".
	Transparency    string `yaml:"transparency"`
	BackfaceCulling bool   `yaml:"backface_culling"`
	// DisplayLists draws static groups from compiled batches instead of
	// face by face.
	DisplayLists bool `yaml:"display_lists"`
	// LightingAmount is the ambient day light level in [0,1].
	LightingAmount  float64 `yaml:"lighting_amount"`
	CheckInvariants bool    `yaml:"check_invariants"`
	InitialCapacity int     `yaml:"initial_capacity"`
}

// CameraConfig holds viewer camera settings.
type CameraConfig struct {
	// Restriction is "cab3d", "off" or "on".
	Restriction  string  `yaml:"restriction"`
	ViewDistance float64 `yaml:"view_distance"`
	Speed        float64 `yaml:"speed"`
	FOV          float32 `yaml:"fov"`
}

// RouteConfig holds the generated demo route settings.
type RouteConfig struct {
	Blocks      int     `yaml:"blocks"`
	BlockLength float64 `yaml:"block_length"`
	Seed        uint64  `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Rendering: RenderingConfig{
			Transparency:    "performance",
			BackfaceCulling: true,
			DisplayLists:    true,
			LightingAmount:  1,
			InitialCapacity: 256,
		},
		Camera: CameraConfig{
			Restriction:  "cab3d",
			ViewDistance: 600,
			Speed:        25,
			FOV:          60,
		},
		Route: RouteConfig{
			Blocks:      64,
			BlockLength: 25,
			Seed:        1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Classifier builds the face classifier described by the rendering and
// camera settings.
func (c *Config) Classifier() (facelist.Classifier, error) {
	mode, err := facelist.ParseTransparencyMode(c.Rendering.Transparency)
	if err != nil {
		return facelist.Classifier{}, fmt.Errorf("rendering.transparency: %w", err)
	}
	restriction, err := facelist.ParseCameraRestriction(c.Camera.Restriction)
	if err != nil {
		return facelist.Classifier{}, fmt.Errorf("camera.restriction: %w", err)
	}
	return facelist.Classifier{Transparency: mode, Restriction: restriction}, nil
}

// Validate reports every setting that is out of range.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if _, err := c.Classifier(); err != nil {
		errs = append(errs, err)
	}
	if c.Rendering.LightingAmount < 0 || c.Rendering.LightingAmount > 1 {
		errs = append(errs, fmt.Errorf("rendering.lighting_amount: %v not in [0,1]", c.Rendering.LightingAmount))
	}
	if c.Rendering.InitialCapacity < 0 {
		errs = append(errs, fmt.Errorf("rendering.initial_capacity: %d is negative", c.Rendering.InitialCapacity))
	}
	if c.Camera.ViewDistance <= 0 {
		errs = append(errs, fmt.Errorf("camera.view_distance: must be positive, got %v", c.Camera.ViewDistance))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov: %v not in (0,180)", c.Camera.FOV))
	}
	if c.Route.Blocks <= 0 {
		errs = append(errs, fmt.Errorf("route.blocks: must be positive, got %d", c.Route.Blocks))
	}
	if c.Route.BlockLength <= 0 {
		errs = append(errs, fmt.Errorf("route.block_length: must be positive, got %v", c.Route.BlockLength))
	}
	return errors.Join(errs...)
}
