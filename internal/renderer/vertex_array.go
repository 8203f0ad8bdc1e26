package renderer

import (
	"slices"

	"github.com/sirupsen/logrus"
)

// VertexArray binds vertex buffers and one index buffer into a drawable mesh.
type VertexArray interface {
	Handle() Handle
	Bind()
	Unbind()
	// AddVertexBuffer assigns the next free attribute slots to each element
	// of vb's layout. vb must have a non-empty layout.
	AddVertexBuffer(vb VertexBuffer)
	SetIndexBuffer(ib IndexBuffer)
	VertexBuffers() []VertexBuffer
	IndexBuffer() IndexBuffer
	Destroy()
}

// AttributeSlot is one attribute pointer a backend has to configure.
type AttributeSlot struct {
	Index   uint32
	Element BufferElement
	Stride  uint32
}

// MeshBinding is the backend-independent bookkeeping of a vertex array:
// attached buffers and the attribute slot counter. Backends embed it.
type MeshBinding struct {
	vertexBuffers []VertexBuffer
	indexBuffer   IndexBuffer
	nextSlot      uint32
}

// Attach records vb and returns the slots for its elements. Slots continue
// from the previous buffer, so two Float3+Float4 buffers yield 0,1 then 2,3.
// Matrix elements claim one slot; backends decide how to feed them.
func (m *MeshBinding) Attach(vb VertexBuffer, log logrus.FieldLogger) []AttributeSlot {
	layout := vb.Layout()
	if layout.Empty() {
		log.Panicf("Vertex buffer %d has no layout", vb.Handle())
	}
	slots := make([]AttributeSlot, 0, layout.Len())
	for _, e := range layout.elements {
		slots = append(slots, AttributeSlot{Index: m.nextSlot, Element: e, Stride: layout.stride})
		m.nextSlot++
	}
	m.vertexBuffers = append(m.vertexBuffers, vb)
	return slots
}

func (m *MeshBinding) SetIndex(ib IndexBuffer) { m.indexBuffer = ib }

func (m *MeshBinding) VertexBuffers() []VertexBuffer { return slices.Clone(m.vertexBuffers) }

func (m *MeshBinding) IndexBuffer() IndexBuffer { return m.indexBuffer }

// NextSlot is the attribute index the next element will receive.
func (m *MeshBinding) NextSlot() uint32 { return m.nextSlot }

// Release drops the references to the attached buffers. The vertex array does
// not own them, so they are not destroyed.
func (m *MeshBinding) Release() {
	m.vertexBuffers = nil
	m.indexBuffer = nil
	m.nextSlot = 0
}
