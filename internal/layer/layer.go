// Package layer holds the application's ordered stack of layers.
package layer

import (
	"fracture/internal/events"
)

// Timestep is a frame delta in seconds.
type Timestep float32

func (ts Timestep) Seconds() float32      { return float32(ts) }
func (ts Timestep) Milliseconds() float32 { return float32(ts) * 1000 }

// Layer is one slice of per-frame behaviour. Embed Base to get no-op
// implementations of the hooks you don't need.
type Layer interface {
	Name() string
	OnAttach()
	OnDetach()
	OnUpdate(ts Timestep)
	OnEvent(e *events.Event)
	OnImGuiRender()
}

// Base implements Layer with no-op hooks.
type Base struct {
	name string
}

func NewBase(name string) Base { return Base{name: name} }

func (b Base) Name() string        { return b.name }
func (Base) OnAttach()             {}
func (Base) OnDetach()             {}
func (Base) OnUpdate(Timestep)     {}
func (Base) OnEvent(*events.Event) {}
func (Base) OnImGuiRender()        {}
