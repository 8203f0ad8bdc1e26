// Package engine runs the frame loop: it owns the window, the render context,
// the input state and the layer stack.
package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"fracture/internal/config"
	"fracture/internal/debugui"
	"fracture/internal/events"
	"fracture/internal/input"
	"fracture/internal/layer"
	"fracture/internal/logging"
	"fracture/internal/profiling"
	"fracture/internal/renderer"
	"fracture/internal/window"
)

// firstFrameTimestep stands in for the missing previous frame.
const firstFrameTimestep layer.Timestep = 0.0001

const (
	slowFrame            = 16 * time.Millisecond
	debugPublishInterval = time.Second
)

// Application drives one window. Each frame it polls the window, dispatches
// queued events (application, then input state, then layers top-down),
// updates layers bottom-up, renders the debug UI and presents.
type Application struct {
	cfg      *config.Config
	window   window.Window
	renderer *renderer.Context
	input    *input.InputManager
	layers   *layer.Stack
	debugUI  *debugui.Overlay
	limiter  *FPSLimiter
	log      logrus.FieldLogger

	queue     []*events.Event
	running   atomic.Bool
	minimized bool
	lastFrame time.Time
	frames    int
	now       func() time.Time
}

// New initializes the render context against win and installs the debug
// overlay. win's GPU context must be current.
func New(cfg *config.Config, win window.Window, rc *renderer.Context, log logrus.FieldLogger) (*Application, error) {
	log = logging.OrCore(log)
	if err := rc.Init(); err != nil {
		log.Errorf("Renderer initialization failed: %v", err)
		return nil, err
	}

	a := &Application{
		cfg:      cfg,
		window:   win,
		renderer: rc,
		input:    input.NewInputManager(),
		layers:   layer.NewStack(),
		debugUI:  debugui.New(debugPublishInterval, log),
		limiter:  NewFPSLimiter(cfg.App.IdleFPSLimit, time.Duration(cfg.App.SpinMicros)*time.Microsecond),
		log:      log,
		now:      time.Now,
	}
	a.running.Store(true)

	cc := cfg.Renderer.ClearColor
	if len(cc) == 4 {
		rc.Command.SetClearColor(mgl32.Vec4{cc[0], cc[1], cc[2], cc[3]})
	}
	win.SetVSync(config.GetVSync())
	win.SetEventCallback(a.enqueue)
	a.debugUI.SetBindings(a.input)
	a.layers.PushOverlay(a.debugUI)
	return a, nil
}

func (a *Application) Window() window.Window       { return a.window }
func (a *Application) Renderer() *renderer.Context { return a.renderer }
func (a *Application) Input() *input.InputManager  { return a.input }
func (a *Application) DebugUI() *debugui.Overlay   { return a.debugUI }
func (a *Application) Config() *config.Config      { return a.cfg }
func (a *Application) Running() bool               { return a.running.Load() }
func (a *Application) Minimized() bool             { return a.minimized }
func (a *Application) Frames() int                 { return a.frames }
func (a *Application) PushLayer(l layer.Layer)     { a.layers.PushLayer(l) }
func (a *Application) PushOverlay(l layer.Layer)   { a.layers.PushOverlay(l) }
func (a *Application) PopLayer(l layer.Layer) bool { return a.layers.PopLayer(l) }

// Close stops the loop after the current frame. It is safe to call from any
// goroutine.
func (a *Application) Close() { a.running.Store(false) }

func (a *Application) enqueue(e *events.Event) {
	a.queue = append(a.queue, e)
}

// Run loops until the window closes, Close is called or the configured frame
// budget is spent.
func (a *Application) Run() {
	a.log.Info("Entering frame loop")
	for a.running.Load() {
		a.Tick()
		if limit := a.cfg.App.MaxFrames; limit > 0 && a.frames >= limit {
			a.log.Infof("Frame limit %d reached", limit)
			a.running.Store(false)
			break
		}
		a.limiter.Wait(a.minimized)
	}
}

// Serve runs the loop and then shuts down on the calling goroutine, which
// must be the one that owns the GPU context.
func (a *Application) Serve() error {
	a.Run()
	return a.Shutdown()
}

// Tick runs exactly one frame.
func (a *Application) Tick() {
	profiling.ResetFrame()
	start := a.now()
	ts := firstFrameTimestep
	if !a.lastFrame.IsZero() {
		ts = layer.Timestep(start.Sub(a.lastFrame).Seconds())
	}
	a.lastFrame = start

	a.window.PollEvents()
	a.dispatchQueued()

	if a.input.JustPressed(input.ActionQuit) {
		a.Close()
	}

	if !a.minimized {
		stop := profiling.Track("Application.Layers")
		a.layers.Update(ts)
		stop()
	}

	a.debugUI.Begin()
	a.layers.ImGuiRender()
	a.debugUI.End()

	a.window.SwapBuffers()
	a.input.PostUpdate()
	a.frames++

	if d := a.now().Sub(start); d > slowFrame {
		a.log.Debugf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}
}

func (a *Application) dispatchQueued() {
	queue := a.queue
	a.queue = nil
	for _, e := range queue {
		a.OnEvent(e)
	}
}

// OnEvent routes one event: window events first, then the input state, then
// the layer stack from the top.
func (a *Application) OnEvent(e *events.Event) {
	events.Dispatch(e, a.onWindowClose)
	events.Dispatch(e, a.onWindowResize)
	a.input.HandleEvent(e)
	a.layers.DispatchEvent(e)
}

func (a *Application) onWindowClose(events.WindowClose) bool {
	a.Close()
	return true
}

func (a *Application) onWindowResize(e events.WindowResize) bool {
	if e.Width == 0 || e.Height == 0 {
		a.minimized = true
		return false
	}
	a.minimized = false
	a.renderer.Scene.OnWindowResize(uint32(e.Width), uint32(e.Height))
	return false
}

// Shutdown detaches every layer, tears down the renderer and closes the
// window.
func (a *Application) Shutdown() error {
	a.layers.Clear()
	err := a.renderer.Shutdown()
	a.window.Close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
