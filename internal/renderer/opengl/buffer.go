package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"fracture/internal/renderer"
)

type VertexBuffer struct {
	b        *Backend
	id       uint32
	capacity uint32
	layout   renderer.BufferLayout
}

func (b *Backend) NewVertexBuffer(vertices []float32) (renderer.VertexBuffer, error) {
	if len(vertices) == 0 {
		return nil, renderer.ErrEmptyBufferData
	}
	vb := &VertexBuffer{b: b, capacity: uint32(len(vertices) * 4)}
	gl.GenBuffers(1, &vb.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	b.resources.Track("vertexbuffer", renderer.Handle(vb.id))
	return vb, nil
}

// NewDynamicVertexBuffer allocates size bytes to be filled with SetData.
func (b *Backend) NewDynamicVertexBuffer(size uint32) (renderer.VertexBuffer, error) {
	if size == 0 {
		return nil, renderer.ErrEmptyBufferData
	}
	vb := &VertexBuffer{b: b, capacity: size}
	gl.GenBuffers(1, &vb.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferData(gl.ARRAY_BUFFER, int(size), nil, gl.DYNAMIC_DRAW)
	b.resources.Track("vertexbuffer", renderer.Handle(vb.id))
	return vb, nil
}

func (vb *VertexBuffer) Handle() renderer.Handle { return renderer.Handle(vb.id) }
func (vb *VertexBuffer) Bind()                   { gl.BindBuffer(gl.ARRAY_BUFFER, vb.id) }
func (vb *VertexBuffer) Unbind()                 { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }
func (vb *VertexBuffer) Size() uint32            { return vb.capacity }

func (vb *VertexBuffer) SetData(data []float32) error {
	size := len(data) * 4
	if uint32(size) > vb.capacity {
		return fmt.Errorf("%w: %d bytes into %d", renderer.ErrBufferOverflow, size, vb.capacity)
	}
	if size == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(data))
	return nil
}

func (vb *VertexBuffer) SetLayout(layout renderer.BufferLayout) { vb.layout = layout }
func (vb *VertexBuffer) Layout() renderer.BufferLayout          { return vb.layout }

func (vb *VertexBuffer) Destroy() {
	if vb.id == 0 {
		return
	}
	vb.b.resources.Release("vertexbuffer", renderer.Handle(vb.id))
	gl.DeleteBuffers(1, &vb.id)
	vb.id = 0
}

type IndexBuffer struct {
	b     *Backend
	id    uint32
	count uint32
}

func (b *Backend) NewIndexBuffer(indices []uint32) (renderer.IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, renderer.ErrEmptyBufferData
	}
	ib := &IndexBuffer{b: b, count: uint32(len(indices))}
	gl.GenBuffers(1, &ib.id)
	// Upload through ARRAY_BUFFER so the currently bound VAO keeps its
	// element buffer binding.
	gl.BindBuffer(gl.ARRAY_BUFFER, ib.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	b.resources.Track("indexbuffer", renderer.Handle(ib.id))
	return ib, nil
}

func (ib *IndexBuffer) Handle() renderer.Handle { return renderer.Handle(ib.id) }
func (ib *IndexBuffer) Bind()                   { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id) }
func (ib *IndexBuffer) Unbind()                 { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0) }
func (ib *IndexBuffer) Count() uint32           { return ib.count }

func (ib *IndexBuffer) SetData(indices []uint32) error {
	if uint32(len(indices)) != ib.count {
		return fmt.Errorf("%w: index buffer holds %d indices, got %d", renderer.ErrBufferOverflow, ib.count, len(indices))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, ib.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	return nil
}

func (ib *IndexBuffer) Destroy() {
	if ib.id == 0 {
		return
	}
	ib.b.resources.Release("indexbuffer", renderer.Handle(ib.id))
	gl.DeleteBuffers(1, &ib.id)
	ib.id = 0
}

// VertexArray maps layout elements to attribute pointers on a GL VAO.
type VertexArray struct {
	renderer.MeshBinding
	b  *Backend
	id uint32
}

func (b *Backend) NewVertexArray() (renderer.VertexArray, error) {
	va := &VertexArray{b: b}
	gl.GenVertexArrays(1, &va.id)
	b.resources.Track("vertexarray", renderer.Handle(va.id))
	return va, nil
}

func (va *VertexArray) Handle() renderer.Handle { return renderer.Handle(va.id) }

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.id)
	va.b.boundVA = va
}

func (va *VertexArray) Unbind() {
	gl.BindVertexArray(0)
	if va.b.boundVA == va {
		va.b.boundVA = nil
	}
}

func (va *VertexArray) AddVertexBuffer(vb renderer.VertexBuffer) {
	slots := va.Attach(vb, va.b.log)

	gl.BindVertexArray(va.id)
	vb.Bind()
	for _, s := range slots {
		e := s.Element
		switch {
		case e.Type.IsMatrix():
			va.b.log.Errorf("Attribute %s: matrix vertex attributes are not supported", e.Name)
			continue
		case e.Type.IsInteger():
			gl.EnableVertexAttribArray(s.Index)
			gl.VertexAttribIPointer(s.Index, int32(e.Type.ComponentCount()), gl.INT,
				int32(s.Stride), gl.PtrOffset(int(e.Offset)))
		default:
			gl.EnableVertexAttribArray(s.Index)
			gl.VertexAttribPointer(s.Index, int32(e.Type.ComponentCount()), gl.FLOAT,
				e.Normalized, int32(s.Stride), gl.PtrOffset(int(e.Offset)))
		}
	}
	va.restoreBinding()
}

func (va *VertexArray) SetIndexBuffer(ib renderer.IndexBuffer) {
	gl.BindVertexArray(va.id)
	ib.Bind()
	va.SetIndex(ib)
	va.restoreBinding()
}

// restoreBinding rebinds whatever vertex array was bound before a setup call.
func (va *VertexArray) restoreBinding() {
	if cur := va.b.boundVA; cur != nil {
		gl.BindVertexArray(cur.id)
		return
	}
	gl.BindVertexArray(0)
}

func (va *VertexArray) Destroy() {
	if va.id == 0 {
		return
	}
	if va.b.boundVA == va {
		gl.BindVertexArray(0)
		va.b.boundVA = nil
	}
	va.b.resources.Release("vertexarray", renderer.Handle(va.id))
	gl.DeleteVertexArrays(1, &va.id)
	va.id = 0
	va.Release()
}
