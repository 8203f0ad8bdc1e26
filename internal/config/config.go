package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the startup configuration of the engine and the sandbox app.
type Config struct {
	Window   WindowConfig   `mapstructure:"window" yaml:"window"`
	Renderer RendererConfig `mapstructure:"renderer" yaml:"renderer"`
	Camera   CameraConfig   `mapstructure:"camera" yaml:"camera"`
	App      AppConfig      `mapstructure:"app" yaml:"app"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

type WindowConfig struct {
	Title  string `mapstructure:"title" yaml:"title"`
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	VSync  bool   `mapstructure:"vsync" yaml:"vsync"`
}

type RendererConfig struct {
	Backend    string    `mapstructure:"backend" yaml:"backend"`
	ClearColor []float32 `mapstructure:"clear_color" yaml:"clear_color"`
}

type CameraConfig struct {
	MinZoom        float32 `mapstructure:"min_zoom" yaml:"min_zoom"`
	MaxZoom        float32 `mapstructure:"max_zoom" yaml:"max_zoom"`
	ZoomSpeed      float32 `mapstructure:"zoom_speed" yaml:"zoom_speed"`
	EnableRotation bool    `mapstructure:"enable_rotation" yaml:"enable_rotation"`
	// AxisAlignedMovement moves the arrow keys along the world axes instead
	// of the diagonals.
	AxisAlignedMovement bool `mapstructure:"axis_aligned_movement" yaml:"axis_aligned_movement"`
}

type AppConfig struct {
	FPSLimit int `mapstructure:"fps_limit" yaml:"fps_limit"`
	// IdleFPSLimit caps the loop while the window is minimized; 0 leaves it
	// at FPSLimit.
	IdleFPSLimit int `mapstructure:"idle_fps_limit" yaml:"idle_fps_limit"`
	// SpinMicros is how long before a frame deadline the limiter stops
	// sleeping and spins.
	SpinMicros int    `mapstructure:"spin_micros" yaml:"spin_micros"`
	AssetsDir  string `mapstructure:"assets_dir" yaml:"assets_dir"`
	// MaxFrames stops the loop after this many frames; 0 runs until the window closes.
	MaxFrames int `mapstructure:"max_frames" yaml:"max_frames"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	File    string `mapstructure:"file" yaml:"file"`
	Console bool   `mapstructure:"console" yaml:"console"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Fracture Sandbox",
			Width:  1280,
			Height: 720,
			VSync:  false,
		},
		Renderer: RendererConfig{
			Backend:    "opengl",
			ClearColor: []float32{0.1, 0.1, 0.2, 1.0},
		},
		Camera: CameraConfig{
			MinZoom:        0.25,
			MaxZoom:        100,
			ZoomSpeed:      40,
			EnableRotation: true,
		},
		App: AppConfig{
			FPSLimit:     144,
			IdleFPSLimit: 30,
			SpinMicros:   200,
			AssetsDir:    "assets",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// Load reads configuration from cfgFile (or ./fracture.yaml when empty),
// FRACTURE_* environment variables and defaults, in increasing precedence
// order of defaults < file < env.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("fracture")
	}

	v.SetEnvPrefix("FRACTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New("window.width and window.height must be positive")
	}
	if c.Renderer.Backend == "" {
		return errors.New("renderer.backend must be set")
	}
	if len(c.Renderer.ClearColor) != 4 {
		return fmt.Errorf("renderer.clear_color must have 4 components, got %d", len(c.Renderer.ClearColor))
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MinZoom > c.Camera.MaxZoom {
		return errors.New("camera.min_zoom must be positive and not above camera.max_zoom")
	}
	if c.App.FPSLimit < 0 {
		return errors.New("app.fps_limit must not be negative")
	}
	if c.App.IdleFPSLimit < 0 {
		return errors.New("app.idle_fps_limit must not be negative")
	}
	if c.App.SpinMicros < 0 {
		return errors.New("app.spin_micros must not be negative")
	}

	validLevels := []string{"trace", "debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("window.title", cfg.Window.Title)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("window.vsync", cfg.Window.VSync)

	v.SetDefault("renderer.backend", cfg.Renderer.Backend)
	v.SetDefault("renderer.clear_color", cfg.Renderer.ClearColor)

	v.SetDefault("camera.min_zoom", cfg.Camera.MinZoom)
	v.SetDefault("camera.max_zoom", cfg.Camera.MaxZoom)
	v.SetDefault("camera.zoom_speed", cfg.Camera.ZoomSpeed)
	v.SetDefault("camera.enable_rotation", cfg.Camera.EnableRotation)
	v.SetDefault("camera.axis_aligned_movement", cfg.Camera.AxisAlignedMovement)

	v.SetDefault("app.fps_limit", cfg.App.FPSLimit)
	v.SetDefault("app.idle_fps_limit", cfg.App.IdleFPSLimit)
	v.SetDefault("app.spin_micros", cfg.App.SpinMicros)
	v.SetDefault("app.assets_dir", cfg.App.AssetsDir)
	v.SetDefault("app.max_frames", cfg.App.MaxFrames)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.console", cfg.Logging.Console)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
