package engine

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus/hooks/test"

	"fracture/internal/config"
	"fracture/internal/events"
	"fracture/internal/graphics"
	"fracture/internal/input"
	"fracture/internal/layer"
	"fracture/internal/renderer"
	"fracture/internal/renderer/headless"
	"fracture/internal/window"
)

// recorder logs every layer callback it receives into a shared trace.
type recorder struct {
	layer.Base
	trace   *[]string
	consume events.Type
	updates int
}

func newRecorder(name string, trace *[]string) *recorder {
	return &recorder{Base: layer.NewBase(name), trace: trace, consume: -1}
}

func (r *recorder) OnAttach() { *r.trace = append(*r.trace, r.Name()+":attach") }
func (r *recorder) OnDetach() { *r.trace = append(*r.trace, r.Name()+":detach") }

func (r *recorder) OnUpdate(layer.Timestep) {
	r.updates++
	*r.trace = append(*r.trace, r.Name()+":update")
}

func (r *recorder) OnImGuiRender() { *r.trace = append(*r.trace, r.Name()+":imgui") }

func (r *recorder) OnEvent(e *events.Event) {
	*r.trace = append(*r.trace, r.Name()+":"+e.Type().String())
	if e.Type() == r.consume {
		e.Handled = true
	}
}

// cameraLayer owns a camera controller the way an application layer does.
type cameraLayer struct {
	layer.Base
	controller *graphics.CameraController
}

func (c *cameraLayer) OnEvent(e *events.Event)    { c.controller.OnEvent(e) }
func (c *cameraLayer) OnUpdate(ts layer.Timestep) { c.controller.OnUpdate(ts) }

// startSignal closes started on the first update.
type startSignal struct {
	*recorder
	once    sync.Once
	started chan struct{}
}

func (s *startSignal) OnUpdate(ts layer.Timestep) {
	s.recorder.OnUpdate(ts)
	s.once.Do(func() { close(s.started) })
}

func newApp(t *testing.T) (*Application, *window.HeadlessWindow, *headless.Backend) {
	t.Helper()
	config.SetFPSLimit(0)
	logger, _ := test.NewNullLogger()
	rc, err := renderer.NewContext(renderer.APIHeadless, logger)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	win := window.NewHeadless(window.Props{Title: "test", Width: 1280, Height: 720})
	app, err := New(config.DefaultConfig(), win, rc, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return app, win, rc.Backend().(*headless.Backend)
}

func TestNewAppliesClearColor(t *testing.T) {
	_, _, b := newApp(t)
	if !b.IsInitialized() {
		t.Fatal("backend not initialized")
	}
	want := mgl32.Vec4{0.1, 0.1, 0.2, 1.0}
	if b.ClearColor() != want {
		t.Errorf("clear color = %v, want %v", b.ClearColor(), want)
	}
}

func TestResizeSetsViewportOnce(t *testing.T) {
	app, win, b := newApp(t)
	b.Reset()

	win.Push(events.WindowResize{Width: 800, Height: 600})
	app.Tick()

	vps := b.Filter(headless.CmdSetViewport)
	if len(vps) != 1 {
		t.Fatalf("SetViewport issued %d times, want 1", len(vps))
	}
	if vps[0].Viewport != [4]uint32{0, 0, 800, 600} {
		t.Errorf("viewport = %v", vps[0].Viewport)
	}
}

func TestResizeReachesViewportAndCamera(t *testing.T) {
	app, win, b := newApp(t)
	cam := &cameraLayer{
		Base:       layer.NewBase("camera"),
		controller: graphics.NewCameraController(1280.0/720.0, graphics.DefaultCameraControllerOptions(), app.Input()),
	}
	app.PushLayer(cam)
	b.Reset()

	win.Push(events.WindowResize{Width: 800, Height: 600})
	app.Tick()

	vps := b.Filter(headless.CmdSetViewport)
	if len(vps) != 1 || vps[0].Viewport != [4]uint32{0, 0, 800, 600} {
		t.Fatalf("viewports = %+v, want one 800x600", vps)
	}
	if got := cam.controller.AspectRatio(); got != float32(800)/float32(600) {
		t.Errorf("controller aspect = %v, want %v", got, float32(800)/float32(600))
	}
}

func TestFrameOrder(t *testing.T) {
	app, win, _ := newApp(t)
	var trace []string
	app.PushLayer(newRecorder("game", &trace))
	trace = nil

	win.Push(events.KeyPressed{Key: events.KeyA})
	app.Tick()

	want := []string{"game:KeyPressed", "game:update", "game:imgui"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %q, want %q", i, trace[i], want[i])
		}
	}
	if win.Polls != 1 || win.Swaps != 1 {
		t.Errorf("polls=%d swaps=%d", win.Polls, win.Swaps)
	}
}

func TestOverlaySeesEventsFirst(t *testing.T) {
	app, win, _ := newApp(t)
	var trace []string
	game := newRecorder("game", &trace)
	hud := newRecorder("hud", &trace)
	hud.consume = events.TypeMouseScrolled
	app.PushLayer(game)
	app.PushOverlay(hud)
	trace = nil

	win.Push(events.MouseScrolled{YOffset: 1})
	app.Tick()

	if len(trace) == 0 || trace[0] != "hud:MouseScrolled" {
		t.Fatalf("trace = %v", trace)
	}
	for _, s := range trace {
		if s == "game:MouseScrolled" {
			t.Errorf("handled event reached a lower layer")
		}
	}
}

func TestWindowCloseStopsLoop(t *testing.T) {
	app, win, _ := newApp(t)
	var trace []string
	app.PushLayer(newRecorder("game", &trace))

	win.Push(events.WindowClose{})
	app.Run()

	if app.Running() {
		t.Fatal("loop still running after WindowClose")
	}
	if app.Frames() != 1 {
		t.Errorf("frames = %d, want 1", app.Frames())
	}
	for _, s := range trace {
		if s == "game:WindowClose" {
			t.Errorf("consumed WindowClose reached layers")
		}
	}
}

func TestEscapeQuits(t *testing.T) {
	app, win, _ := newApp(t)
	win.Push(events.KeyPressed{Key: events.KeyEscape})
	app.Tick()
	if app.Running() {
		t.Error("Escape did not stop the loop")
	}
}

func TestDebugToggleUsesInputBinding(t *testing.T) {
	app, win, _ := newApp(t)
	var trace []string
	app.PushLayer(newRecorder("game", &trace))
	app.Input().UnbindKey(events.KeyF1)
	app.Input().BindKey(events.KeyTab, input.ActionToggleDebug)
	trace = nil

	win.Push(events.KeyPressed{Key: events.KeyTab})
	app.Tick()
	if app.DebugUI().Visible() {
		t.Fatal("rebound toggle key did not hide the overlay")
	}
	for _, s := range trace {
		if s == "game:KeyPressed" {
			t.Errorf("toggle press reached the game layer")
		}
	}
}

func TestMinimizedSkipsUpdates(t *testing.T) {
	app, win, b := newApp(t)
	var trace []string
	game := newRecorder("game", &trace)
	app.PushLayer(game)
	b.Reset()

	win.Push(events.WindowResize{Width: 0, Height: 0})
	app.Tick()
	app.Tick()
	if !app.Minimized() || game.updates != 0 {
		t.Fatalf("minimized=%v updates=%d", app.Minimized(), game.updates)
	}
	if b.Count(headless.CmdSetViewport) != 0 {
		t.Errorf("zero-size resize reached the viewport")
	}

	win.Push(events.WindowResize{Width: 640, Height: 480})
	app.Tick()
	if app.Minimized() || game.updates != 1 {
		t.Errorf("after restore minimized=%v updates=%d", app.Minimized(), game.updates)
	}
}

func TestMaxFramesStopsRun(t *testing.T) {
	app, _, _ := newApp(t)
	app.Config().App.MaxFrames = 3
	var trace []string
	game := newRecorder("game", &trace)
	app.PushLayer(game)

	app.Run()
	if app.Frames() != 3 || game.updates != 3 {
		t.Errorf("frames=%d updates=%d", app.Frames(), game.updates)
	}
}

func TestShutdownDetachesLayers(t *testing.T) {
	app, _, b := newApp(t)
	var trace []string
	app.PushLayer(newRecorder("game", &trace))

	if err := app.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if trace[len(trace)-1] != "game:detach" {
		t.Errorf("trace = %v", trace)
	}
	if b.IsInitialized() {
		t.Error("backend still initialized")
	}
}

func TestServeShutsDownOnLoopGoroutine(t *testing.T) {
	app, _, b := newApp(t)
	var trace []string
	game := &startSignal{recorder: newRecorder("game", &trace), started: make(chan struct{})}
	app.PushLayer(game)

	done := make(chan error)
	go func() { done <- app.Serve() }()

	<-game.started
	app.Close()
	if err := <-done; err != nil {
		t.Fatalf("Serve: %v", err)
	}

	// trace is only written by the Serve goroutine, which has returned
	if trace[len(trace)-1] != "game:detach" {
		t.Errorf("last callback = %q, want game:detach", trace[len(trace)-1])
	}
	if b.IsInitialized() {
		t.Error("Serve returned with the backend still initialized")
	}
	if app.Running() {
		t.Error("loop still marked running")
	}
}
