// Package window defines the platform window the engine drives. The GLFW
// implementation lives in window/desktop.
package window

import "fracture/internal/events"

// EventCallback receives every event the window produces, on the main thread,
// during PollEvents.
type EventCallback func(e *events.Event)

// Props describes the window to create.
type Props struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window is the engine's view of a platform window with a GPU context.
type Window interface {
	// PollEvents processes pending platform events and delivers them to the
	// event callback.
	PollEvents()
	SwapBuffers()
	// OnUpdate polls events then presents the frame.
	OnUpdate()

	// Width and Height are the framebuffer size in pixels.
	Width() int
	Height() int

	SetEventCallback(fn EventCallback)
	SetVSync(enabled bool)
	IsVSync() bool

	// NativeWindow returns the platform handle, e.g. *glfw.Window.
	NativeWindow() any
	Close()
}
