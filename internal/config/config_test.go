package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Renderer.Backend != "opengl" {
		t.Errorf("backend = %q, want opengl", cfg.Renderer.Backend)
	}
	if cfg.Camera.MinZoom != 0.25 || cfg.Camera.MaxZoom != 100 {
		t.Errorf("zoom bounds = [%v, %v], want [0.25, 100]", cfg.Camera.MinZoom, cfg.Camera.MaxZoom)
	}
	if len(cfg.Renderer.ClearColor) != 4 {
		t.Errorf("clear color = %v", cfg.Renderer.ClearColor)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	doc := `
window:
  title: Test
  width: 800
  height: 600
renderer:
  backend: headless
  clear_color: [1, 0.5, 0, 1]
camera:
  max_zoom: 10
  axis_aligned_movement: true
app:
  idle_fps_limit: 15
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FRACTURE_APP_FPS_LIMIT", "30")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 || cfg.Window.Title != "Test" {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Renderer.Backend != "headless" {
		t.Errorf("backend = %q", cfg.Renderer.Backend)
	}
	if cfg.Renderer.ClearColor[1] != 0.5 {
		t.Errorf("clear color = %v", cfg.Renderer.ClearColor)
	}
	if cfg.Camera.MaxZoom != 10 || cfg.Camera.MinZoom != 0.25 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.App.FPSLimit != 30 {
		t.Errorf("fps limit = %d, want 30 from env", cfg.App.FPSLimit)
	}
	if !cfg.Camera.AxisAlignedMovement {
		t.Errorf("axis_aligned_movement not read from file")
	}
	if cfg.App.IdleFPSLimit != 15 || cfg.App.SpinMicros != 200 {
		t.Errorf("limiter = idle %d spin %d, want 15 and the 200 default", cfg.App.IdleFPSLimit, cfg.App.SpinMicros)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"empty backend", func(c *Config) { c.Renderer.Backend = "" }},
		{"short clear color", func(c *Config) { c.Renderer.ClearColor = []float32{1, 1} }},
		{"inverted zoom", func(c *Config) { c.Camera.MinZoom = 200 }},
		{"negative fps", func(c *Config) { c.App.FPSLimit = -1 }},
		{"negative idle fps", func(c *Config) { c.App.IdleFPSLimit = -1 }},
		{"negative spin", func(c *Config) { c.App.SpinMicros = -5 }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestRuntimeSettingsClamp(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())

	SetFPSLimit(-5)
	if got := GetFPSLimit(); got != 0 {
		t.Errorf("negative limit = %d, want 0", got)
	}
	SetFPSLimit(5000)
	if got := GetFPSLimit(); got != 1000 {
		t.Errorf("huge limit = %d, want 1000", got)
	}

	cfg := DefaultConfig()
	cfg.App.FPSLimit = 60
	cfg.Window.VSync = true
	Apply(cfg)
	if GetFPSLimit() != 60 || !GetVSync() {
		t.Errorf("Apply did not copy settings")
	}
	SetVSync(false)
}
