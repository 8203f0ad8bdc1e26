// Package debugui is the engine's debug overlay. It brackets every layer's
// OnImGuiRender call with Begin and End, collects the text panels they emit
// and publishes them periodically to the log and an optional sink.
package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fracture/internal/events"
	"fracture/internal/input"
	"fracture/internal/layer"
	"fracture/internal/logging"
	"fracture/internal/profiling"
)

// Panel is a titled block of text lines for one frame.
type Panel struct {
	Title string
	Lines []string
}

// Text appends a formatted line.
func (p *Panel) Text(format string, args ...any) {
	p.Lines = append(p.Lines, fmt.Sprintf(format, args...))
}

// Sink receives the panels of a published frame.
type Sink func(panels []Panel)

// Bindings resolves an event to the logical actions it fires.
type Bindings interface {
	Triggers(e *events.Event, action input.Action) bool
}

// Overlay is pushed as the top-most layer. The ActionToggleDebug binding
// (F1 by default) toggles it.
type Overlay struct {
	layer.Base
	log      logrus.FieldLogger
	bindings Bindings
	visible  bool
	inFrame  bool
	panels   []*Panel
	frames   int
	interval time.Duration
	last     time.Time
	sink     Sink
	now      func() time.Time
}

// New returns a visible overlay that publishes at most once per interval.
func New(interval time.Duration, log logrus.FieldLogger) *Overlay {
	return &Overlay{
		Base:     layer.NewBase("DebugUI"),
		log:      logging.OrCore(log),
		visible:  true,
		interval: interval,
		now:      time.Now,
	}
}

// SetSink routes published panels somewhere visible, such as a window title.
func (o *Overlay) SetSink(s Sink) { o.sink = s }

func (o *Overlay) OnAttach() { o.log.Debug("Debug overlay attached") }
func (o *Overlay) OnDetach() { o.panels = nil }

// SetBindings selects where the toggle binding is read from. Without
// bindings the overlay cannot be toggled by input.
func (o *Overlay) SetBindings(b Bindings) { o.bindings = b }

// OnEvent toggles visibility on ActionToggleDebug and consumes that press.
func (o *Overlay) OnEvent(e *events.Event) {
	if o.bindings == nil || !o.bindings.Triggers(e, input.ActionToggleDebug) {
		return
	}
	o.visible = !o.visible
	e.Handled = true
}

func (o *Overlay) Visible() bool           { return o.visible }
func (o *Overlay) SetVisible(visible bool) { o.visible = visible }

// Begin starts collecting panels for the frame.
func (o *Overlay) Begin() {
	o.panels = o.panels[:0]
	o.inFrame = true
}

// Panel opens a panel for the current frame. Outside Begin/End, or while
// hidden, the panel is discarded.
func (o *Overlay) Panel(title string) *Panel {
	if !o.inFrame || !o.visible {
		return &Panel{Title: title}
	}
	p := &Panel{Title: title}
	o.panels = append(o.panels, p)
	return p
}

// End closes the frame and publishes it when the interval has elapsed.
func (o *Overlay) End() {
	o.inFrame = false
	o.frames++
	if !o.visible {
		return
	}
	now := o.now()
	if !o.last.IsZero() && now.Sub(o.last) < o.interval {
		return
	}
	o.last = now
	o.publish()
}

func (o *Overlay) publish() {
	panels := o.Panels()
	if o.sink != nil {
		o.sink(panels)
	}
	for _, p := range panels {
		o.log.WithField("panel", p.Title).Debug(strings.Join(p.Lines, " | "))
	}
	if top := profiling.TopN(5); top != "" {
		o.log.Debugf("Frame profile: %s", top)
	}
}

// Frames counts completed Begin/End brackets.
func (o *Overlay) Frames() int { return o.frames }

// Panels returns the panels collected in the last frame.
func (o *Overlay) Panels() []Panel {
	out := make([]Panel, len(o.panels))
	for i, p := range o.panels {
		out[i] = Panel{Title: p.Title, Lines: append([]string(nil), p.Lines...)}
	}
	return out
}
