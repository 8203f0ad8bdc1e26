package window

import "fracture/internal/events"

// HeadlessWindow has no platform surface. Events queued with Push are
// delivered on the next PollEvents. It pairs with the headless render backend
// for CI runs and tests.
type HeadlessWindow struct {
	props    Props
	callback EventCallback
	pending  []events.Payload

	Polls int
	Swaps int
}

func NewHeadless(props Props) *HeadlessWindow {
	return &HeadlessWindow{props: props}
}

// Push queues a platform event. A WindowResize also updates the size when it
// is delivered.
func (w *HeadlessWindow) Push(p events.Payload) {
	w.pending = append(w.pending, p)
}

func (w *HeadlessWindow) PollEvents() {
	w.Polls++
	pending := w.pending
	w.pending = nil
	for _, p := range pending {
		if r, ok := p.(events.WindowResize); ok {
			w.props.Width, w.props.Height = r.Width, r.Height
		}
		if w.callback != nil {
			w.callback(events.New(p))
		}
	}
}

func (w *HeadlessWindow) SwapBuffers() { w.Swaps++ }

func (w *HeadlessWindow) OnUpdate() {
	w.PollEvents()
	w.SwapBuffers()
}

func (w *HeadlessWindow) Width() int                        { return w.props.Width }
func (w *HeadlessWindow) Height() int                       { return w.props.Height }
func (w *HeadlessWindow) SetEventCallback(fn EventCallback) { w.callback = fn }
func (w *HeadlessWindow) SetVSync(enabled bool)             { w.props.VSync = enabled }
func (w *HeadlessWindow) IsVSync() bool                     { return w.props.VSync }
func (w *HeadlessWindow) NativeWindow() any                 { return nil }
func (w *HeadlessWindow) Close()                            {}
