// Package desktop implements window.Window with GLFW.
package desktop

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"

	"fracture/internal/events"
	"fracture/internal/logging"
	"fracture/internal/window"
)

var _ window.Window = (*GLFWWindow)(nil)

var glfwWindows int

// GLFWWindow is a GLFW window with an OpenGL 4.1 core context. It must be
// created and used on the main OS thread.
type GLFWWindow struct {
	win      *glfw.Window
	title    string
	width    int
	height   int
	vsync    bool
	callback window.EventCallback
	log      logrus.FieldLogger
}

// New opens a window and makes its context current.
func New(props window.Props, log logrus.FieldLogger) (*GLFWWindow, error) {
	log = logging.OrCore(log)
	log.Infof("Creating window %s (%d, %d)", props.Title, props.Width, props.Height)

	if glfwWindows == 0 {
		if err := glfw.Init(); err != nil {
			return nil, fmt.Errorf("could not initialize GLFW: %w", err)
		}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	win, err := glfw.CreateWindow(props.Width, props.Height, props.Title, nil, nil)
	if err != nil {
		if glfwWindows == 0 {
			glfw.Terminate()
		}
		return nil, err
	}
	glfwWindows++
	win.MakeContextCurrent()

	w := &GLFWWindow{win: win, title: props.Title, log: log}
	w.width, w.height = win.GetFramebufferSize()
	w.SetVSync(props.VSync)
	win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	w.installCallbacks()
	return w, nil
}

func (w *GLFWWindow) emit(p events.Payload) {
	if w.callback == nil {
		return
	}
	w.callback(events.New(p))
}

func (w *GLFWWindow) installCallbacks() {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		w.emit(events.WindowResize{Width: width, Height: height})
	})

	w.win.SetCloseCallback(func(_ *glfw.Window) {
		w.emit(events.WindowClose{})
	})

	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if focused {
			w.emit(events.WindowFocus{})
		} else {
			w.emit(events.WindowLostFocus{})
		}
	})

	w.win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		w.emit(events.WindowMoved{X: x, Y: y})
	})

	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k, m := events.Key(key), events.ModifierKey(mods)
		switch action {
		case glfw.Press:
			w.emit(events.KeyPressed{Key: k, Mods: m})
		case glfw.Repeat:
			w.emit(events.KeyPressed{Key: k, Repeat: true, Mods: m})
		case glfw.Release:
			w.emit(events.KeyReleased{Key: k, Mods: m})
		}
	})

	w.win.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.emit(events.KeyTyped{Char: char})
	})

	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, m := events.MouseButton(button), events.ModifierKey(mods)
		switch action {
		case glfw.Press:
			w.emit(events.MouseButtonPressed{Button: b, Mods: m})
		case glfw.Release:
			w.emit(events.MouseButtonReleased{Button: b, Mods: m})
		}
	})

	w.win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.emit(events.MouseScrolled{XOffset: xoff, YOffset: yoff})
	})

	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.emit(events.MouseMoved{X: x, Y: y})
	})
}

func (w *GLFWWindow) PollEvents()  { glfw.PollEvents() }
func (w *GLFWWindow) SwapBuffers() { w.win.SwapBuffers() }

func (w *GLFWWindow) OnUpdate() {
	w.PollEvents()
	w.SwapBuffers()
}

func (w *GLFWWindow) Width() int  { return w.width }
func (w *GLFWWindow) Height() int { return w.height }

func (w *GLFWWindow) SetEventCallback(fn window.EventCallback) { w.callback = fn }

func (w *GLFWWindow) SetVSync(enabled bool) {
	if enabled {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	w.vsync = enabled
}

func (w *GLFWWindow) IsVSync() bool     { return w.vsync }
func (w *GLFWWindow) NativeWindow() any { return w.win }

// SetTitle replaces the window caption.
func (w *GLFWWindow) SetTitle(title string) {
	w.title = title
	w.win.SetTitle(title)
}

// Close destroys the window and terminates GLFW with the last window.
func (w *GLFWWindow) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glfwWindows--
	if glfwWindows == 0 {
		glfw.Terminate()
	}
}
