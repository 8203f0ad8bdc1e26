package layer

import (
	"slices"

	"fracture/internal/events"
)

// Stack orders layers bottom to top. Regular layers always sit below
// overlays: PushLayer inserts at the boundary, PushOverlay appends.
type Stack struct {
	layers      []Layer
	insertIndex int
}

func NewStack() *Stack {
	return &Stack{}
}

// PushLayer takes ownership of l, places it above the other regular layers
// and attaches it.
func (s *Stack) PushLayer(l Layer) {
	s.layers = slices.Insert(s.layers, s.insertIndex, l)
	s.insertIndex++
	l.OnAttach()
}

// PushOverlay takes ownership of l, places it on top of the stack and
// attaches it.
func (s *Stack) PushOverlay(l Layer) {
	s.layers = append(s.layers, l)
	l.OnAttach()
}

// PopLayer detaches and removes a regular layer. It reports whether l was found.
func (s *Stack) PopLayer(l Layer) bool {
	i := slices.Index(s.layers[:s.insertIndex], l)
	if i < 0 {
		return false
	}
	s.layers = slices.Delete(s.layers, i, i+1)
	s.insertIndex--
	l.OnDetach()
	return true
}

// PopOverlay detaches and removes an overlay. It reports whether l was found.
func (s *Stack) PopOverlay(l Layer) bool {
	i := slices.Index(s.layers[s.insertIndex:], l)
	if i < 0 {
		return false
	}
	i += s.insertIndex
	s.layers = slices.Delete(s.layers, i, i+1)
	l.OnDetach()
	return true
}

// Len returns the number of layers and overlays.
func (s *Stack) Len() int { return len(s.layers) }

// Layers returns the layers bottom to top. The slice is a copy.
func (s *Stack) Layers() []Layer {
	return slices.Clone(s.layers)
}

// Update calls OnUpdate bottom to top.
func (s *Stack) Update(ts Timestep) {
	for _, l := range s.layers {
		l.OnUpdate(ts)
	}
}

// ImGuiRender calls OnImGuiRender bottom to top.
func (s *Stack) ImGuiRender() {
	for _, l := range s.layers {
		l.OnImGuiRender()
	}
}

// DispatchEvent offers e to each layer top to bottom and stops at the first
// layer that marks it handled.
func (s *Stack) DispatchEvent(e *events.Event) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if e.Handled {
			return
		}
		s.layers[i].OnEvent(e)
	}
}

// Clear detaches every layer, top first, and empties the stack.
func (s *Stack) Clear() {
	for i := len(s.layers) - 1; i >= 0; i-- {
		s.layers[i].OnDetach()
	}
	s.layers = nil
	s.insertIndex = 0
}
