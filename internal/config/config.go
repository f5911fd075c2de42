// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors.
var (
	ErrInvalidResolution = errors.New("invalid window resolution")
	ErrInvalidSkull      = errors.New("selected skull out of range")
	ErrInvalidCamera     = errors.New("invalid camera radius")
)

// SkullCount is the number of skulls placed in the room.
const SkullCount = 2

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width" toml:"width"`
	Height     int  `yaml:"height" toml:"height"`
	Fullscreen bool `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool `yaml:"vsync" toml:"vsync"`

	// ScreenshotDir receives the PNG frames captured with F12.
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// SceneConfig holds asset locations and scene toggles.
type SceneConfig struct {
	ModelPath     string `yaml:"model_path" toml:"model_path"`         // skull text model
	TextureDir    string `yaml:"texture_dir" toml:"texture_dir"`       // bricks, checkerboard and ice images
	ShaderDir     string `yaml:"shader_dir" toml:"shader_dir"`         // empty uses embedded shaders, no hot reload
	Shadows       bool   `yaml:"shadows" toml:"shadows"`               // draw the planar shadow layer
	SelectedSkull int    `yaml:"selected_skull" toml:"selected_skull"` // skull moved by the keyboard at startup
}

// CameraConfig holds the initial orbit camera position in spherical
// coordinates. Angles are in radians.
type CameraConfig struct {
	Theta  float32 `yaml:"theta" toml:"theta"`
	Phi    float32 `yaml:"phi" toml:"phi"`
	Radius float32 `yaml:"radius" toml:"radius"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			ModelPath:  "models/skull.txt",
			TextureDir: "textures",
			Shadows:    false,
		},
		Camera: CameraConfig{
			Theta:  1.24 * math.Pi,
			Phi:    0.42 * math.Pi,
			Radius: 12,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would otherwise fail deep inside the renderer.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Scene.SelectedSkull < 0 || c.Scene.SelectedSkull >= SkullCount {
		return fmt.Errorf("%w: %d", ErrInvalidSkull, c.Scene.SelectedSkull)
	}
	if c.Camera.Radius <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidCamera, c.Camera.Radius)
	}
	return nil
}
