package sandbox

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus/hooks/test"

	"fracture/internal/debugui"
	"fracture/internal/events"
	"fracture/internal/graphics"
	"fracture/internal/input"
	"fracture/internal/layer"
	"fracture/internal/renderer"
	"fracture/internal/renderer/headless"
)

const assetsDir = "../../assets"

func newSandbox(t *testing.T, assets string) (*Sandbox2D, *renderer.Context, *headless.Backend, *debugui.Overlay) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	rc, err := renderer.NewContext(renderer.APIHeadless, logger)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	if err := rc.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	overlay := debugui.New(time.Hour, logger)
	s := New(rc, input.NewInputManager(), overlay, Options{
		AssetsDir:   assets,
		AspectRatio: 16.0 / 9.0,
		Camera:      graphics.DefaultCameraControllerOptions(),
	}, logger)
	return s, rc, rc.Backend().(*headless.Backend), overlay
}

func TestAttachLoadsAssets(t *testing.T) {
	s, rc, _, _ := newSandbox(t, assetsDir)
	s.OnAttach()
	if !s.Ready() {
		t.Fatal("sandbox not ready")
	}

	for _, name := range []string{"FlatColour", "BigSquare", "Logo"} {
		if !rc.Shaders.Exists(name) {
			t.Errorf("shader %q not loaded", name)
		}
	}

	base := s.baseTexture.(*headless.Texture2D)
	if base.Width() != 64 || base.Format() != renderer.FormatRGB8 {
		t.Errorf("base map = %dx%d %s", base.Width(), base.Height(), base.Format())
	}
	logo := s.logoTexture.(*headless.Texture2D)
	if logo.Format() != renderer.FormatRGBA8 {
		t.Errorf("logo format = %s, want RGBA8", logo.Format())
	}

	slot, _ := rc.Shaders.Get("Logo").(*headless.Shader).Uniform("u_Texture")
	if slot != int32(slotLogo) {
		t.Errorf("logo u_Texture = %v", slot)
	}
}

func TestUpdateDrawsWholeScene(t *testing.T) {
	s, rc, b, _ := newSandbox(t, assetsDir)
	s.OnAttach()
	b.Reset()

	s.OnUpdate(layer.Timestep(1.0 / 60))

	draws := b.Filter(headless.CmdDrawIndexed)
	if want := 2*gridHalf*2*gridHalf + 2; len(draws) != want {
		t.Fatalf("draws = %d, want %d", len(draws), want)
	}
	for _, d := range draws {
		if d.Count != 6 {
			t.Fatalf("draw count = %d, want 6", d.Count)
		}
	}
	if b.Count(headless.CmdClear) != 1 {
		t.Errorf("clears = %d", b.Count(headless.CmdClear))
	}
	if b.Count(headless.CmdBindTexture) != 2 {
		t.Errorf("texture binds = %d", b.Count(headless.CmdBindTexture))
	}
	color, _ := rc.Shaders.Get("FlatColour").(*headless.Shader).Uniform("u_Color")
	if color != (mgl32.Vec4{0.2, 0.3, 0.8, 1.0}) {
		t.Errorf("u_Color = %v", color)
	}
	if rc.Scene.InScene() {
		t.Error("scene left open")
	}
}

func TestAnimationRotatesSquares(t *testing.T) {
	s, _, _, _ := newSandbox(t, assetsDir)
	s.OnAttach()

	s.OnUpdate(layer.Timestep(1))
	if got := s.square.transform.Rotation().Z(); got != 0.5 {
		t.Errorf("rotation = %v, want 0.5", got)
	}

	e := events.New(events.KeyPressed{Key: events.KeySpace})
	s.OnEvent(e)
	if !e.Handled {
		t.Error("space not consumed")
	}
	s.OnUpdate(layer.Timestep(1))
	if got := s.square.transform.Rotation().Z(); got != 0.5 {
		t.Errorf("paused rotation = %v, want 0.5", got)
	}
}

func TestMissingShadersLeaveLayerIdle(t *testing.T) {
	s, _, b, _ := newSandbox(t, t.TempDir())
	s.OnAttach()
	if s.Ready() {
		t.Fatal("ready without shaders")
	}
	if live := b.LiveResources(); len(live) != 0 {
		t.Errorf("failed attach leaked %v", live)
	}
	b.Reset()
	s.OnUpdate(layer.Timestep(0.016))
	if b.Count(headless.CmdDrawIndexed) != 0 {
		t.Error("idle layer drew")
	}
}

func TestMissingTexturesFallBackToSolid(t *testing.T) {
	dir := t.TempDir()
	shaders := filepath.Join(dir, "shaders")
	if err := os.MkdirAll(shaders, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"FlatColour.glsl", "Texture.glsl"} {
		src, err := os.ReadFile(filepath.Join(assetsDir, "shaders", name))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(shaders, name), src, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s, _, _, _ := newSandbox(t, dir)
	s.OnAttach()
	if !s.Ready() {
		t.Fatal("sandbox not ready")
	}
	if s.baseTexture.Width() != 1 || s.logoTexture.Height() != 1 {
		t.Errorf("fallback textures are not 1x1")
	}
}

func TestDetachReleasesEverything(t *testing.T) {
	s, rc, _, _ := newSandbox(t, assetsDir)
	s.OnAttach()
	s.OnUpdate(layer.Timestep(0.016))
	s.OnDetach()
	if err := rc.Shutdown(); err != nil {
		t.Errorf("Shutdown after detach: %v", err)
	}
}

func TestImGuiPanels(t *testing.T) {
	s, _, _, overlay := newSandbox(t, assetsDir)
	s.OnAttach()
	s.OnUpdate(layer.Timestep(0.02))

	overlay.Begin()
	s.OnImGuiRender()
	overlay.End()

	panels := overlay.Panels()
	if len(panels) != 2 || panels[0].Title != "Performance" {
		t.Fatalf("panels = %+v", panels)
	}
	if panels[0].Lines[0] != "Frame Rate: 50.0" {
		t.Errorf("perf line = %q", panels[0].Lines[0])
	}
}

func TestSceneControlsClamp(t *testing.T) {
	s, _, _, _ := newSandbox(t, assetsDir)
	s.SetLogoPosition(mgl32.Vec3{-3, 0.5, 2})
	if s.logoPosition != (mgl32.Vec3{-1, 0.5, 1}) {
		t.Errorf("logo position = %v", s.logoPosition)
	}
	s.SetAnimation(true, 42)
	if s.animationSpeed != 10 {
		t.Errorf("speed = %v", s.animationSpeed)
	}
}
