package graphics

import (
	"github.com/go-gl/mathgl/mgl32"

	"fracture/internal/events"
	"fracture/internal/input"
	"fracture/internal/layer"
	"fracture/internal/profiling"
)

// InputState is the polling side of the input manager.
type InputState interface {
	IsActive(action input.Action) bool
	CursorPos() (float64, float64)
}

// PanState is the middle-mouse drag state of a CameraController.
type PanState int

const (
	PanIdle PanState = iota
	PanActive
)

func (s PanState) String() string {
	if s == PanActive {
		return "Panning"
	}
	return "Idle"
}

// Default controller tuning.
const (
	DefaultMinZoom   float32 = 0.25
	DefaultMaxZoom   float32 = 100
	DefaultZoomSpeed float32 = 40

	moveSpeedPerZoom float32 = 2
	panScalePerZoom  float32 = 0.005
)

var (
	diagonalUp    = mgl32.Vec3{1, 1, 0}
	diagonalRight = mgl32.Vec3{1, -1, 0}
)

type CameraControllerOptions struct {
	MinZoom        float32
	MaxZoom        float32
	ZoomSpeed      float32
	EnableRotation bool
	// AxisAlignedMovement moves along the world axes. By default the arrow
	// keys move along the diagonals: up is +x+y, right is +x-y.
	AxisAlignedMovement bool
}

func DefaultCameraControllerOptions() CameraControllerOptions {
	return CameraControllerOptions{
		MinZoom:   DefaultMinZoom,
		MaxZoom:   DefaultMaxZoom,
		ZoomSpeed: DefaultZoomSpeed,
	}
}

// CameraController drives an OrthographicCamera from input: arrow keys move,
// Q/E roll, the scroll wheel zooms and a middle-mouse drag pans. Movement
// speeds scale with the zoom level so motion feels the same at any zoom.
type CameraController struct {
	camera *OrthographicCamera
	input  InputState
	opts   CameraControllerOptions

	aspectRatio   float32
	zoom          float32
	lastFrameTime float32

	pan           PanState
	initialMouse  mgl32.Vec2
	initialCamPos mgl32.Vec3
}

func NewCameraController(aspectRatio float32, opts CameraControllerOptions, in InputState) *CameraController {
	c := &CameraController{
		input:       in,
		opts:        opts,
		aspectRatio: aspectRatio,
		zoom:        1,
	}
	c.zoom = c.clampZoom(c.zoom)
	c.camera = NewOrthographicCamera(-aspectRatio*c.zoom, aspectRatio*c.zoom, -c.zoom, c.zoom)
	return c
}

func (c *CameraController) Camera() *OrthographicCamera { return c.camera }
func (c *CameraController) AspectRatio() float32        { return c.aspectRatio }
func (c *CameraController) ZoomLevel() float32          { return c.zoom }
func (c *CameraController) PanState() PanState          { return c.pan }
func (c *CameraController) Options() CameraControllerOptions {
	return c.opts
}

// OnUpdate applies pan, key movement and rotation for one frame.
func (c *CameraController) OnUpdate(ts layer.Timestep) {
	defer profiling.Track("CameraController.OnUpdate")()
	dt := ts.Seconds()
	c.lastFrameTime = dt

	if c.pan == PanActive {
		x, y := c.input.CursorPos()
		delta := mgl32.Vec2{float32(x), float32(y)}.Sub(c.initialMouse)
		// screen Y grows downwards, world Y upwards
		offset := mgl32.Vec3{delta.X(), -delta.Y(), 0}.Mul(c.zoom * panScalePerZoom)
		c.camera.SetPosition(c.initialCamPos.Add(offset))
	}

	step := c.zoom * moveSpeedPerZoom * dt
	up, right := diagonalUp, diagonalRight
	if c.opts.AxisAlignedMovement {
		up, right = mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}
	}
	switch {
	case c.input.IsActive(input.ActionCameraUp):
		c.camera.Translate(up.Mul(step))
	case c.input.IsActive(input.ActionCameraDown):
		c.camera.Translate(up.Mul(-step))
	}
	switch {
	case c.input.IsActive(input.ActionCameraLeft):
		c.camera.Translate(right.Mul(-step))
	case c.input.IsActive(input.ActionCameraRight):
		c.camera.Translate(right.Mul(step))
	}

	if c.opts.EnableRotation {
		switch {
		case c.input.IsActive(input.ActionCameraRotateCCW):
			c.camera.Rotate(step)
		case c.input.IsActive(input.ActionCameraRotateCW):
			c.camera.Rotate(-step)
		}
	}
}

// OnEvent reacts to scroll, resize and middle-mouse events. It never marks
// an event handled.
func (c *CameraController) OnEvent(e *events.Event) {
	events.Dispatch(e, func(ev events.MouseScrolled) bool {
		c.Zoom(-float32(ev.YOffset) * c.opts.ZoomSpeed * c.lastFrameTime)
		return false
	})
	events.Dispatch(e, func(ev events.WindowResize) bool {
		c.OnResize(ev.Width, ev.Height)
		return false
	})
	events.Dispatch(e, func(ev events.MouseButtonPressed) bool {
		if ev.Button == events.MouseButtonMiddle {
			x, y := c.input.CursorPos()
			c.initialMouse = mgl32.Vec2{float32(x), float32(y)}
			c.initialCamPos = c.camera.Position()
			c.pan = PanActive
		}
		return false
	})
	events.Dispatch(e, func(ev events.MouseButtonReleased) bool {
		if ev.Button == events.MouseButtonMiddle {
			c.pan = PanIdle
		}
		return false
	})
}

// OnResize recomputes the aspect ratio. A zero height is ignored.
func (c *CameraController) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspectRatio = float32(width) / float32(height)
	c.applyProjection()
}

// Zoom adds delta to the zoom level and clamps it.
func (c *CameraController) Zoom(delta float32) {
	c.SetZoom(c.zoom + delta)
}

func (c *CameraController) SetZoom(zoom float32) {
	c.zoom = c.clampZoom(zoom)
	c.applyProjection()
}

func (c *CameraController) clampZoom(z float32) float32 {
	return max(c.opts.MinZoom, min(z, c.opts.MaxZoom))
}

func (c *CameraController) applyProjection() {
	c.camera.SetProjection(-c.aspectRatio*c.zoom, c.aspectRatio*c.zoom, -c.zoom, c.zoom)
}

func (c *CameraController) SetPosition(p mgl32.Vec3) { c.camera.SetPosition(p) }
func (c *CameraController) Translate(d mgl32.Vec3)   { c.camera.Translate(d) }

// SetRotation and Rotate are ignored while rotation is disabled.
func (c *CameraController) SetRotation(rad float32) {
	if c.opts.EnableRotation {
		c.camera.SetRotation(rad)
	}
}

func (c *CameraController) Rotate(rad float32) {
	if c.opts.EnableRotation {
		c.camera.Rotate(rad)
	}
}

func (c *CameraController) SetZoomSpeed(speed float32)  { c.opts.ZoomSpeed = speed }
func (c *CameraController) EnableRotation(enabled bool) { c.opts.EnableRotation = enabled }

// SetZoomRange changes the clamp bounds and reclamps the current zoom.
func (c *CameraController) SetZoomRange(minZoom, maxZoom float32) {
	c.opts.MinZoom, c.opts.MaxZoom = minZoom, maxZoom
	c.SetZoom(c.zoom)
}
