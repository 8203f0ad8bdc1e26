package renderer

import (
	"fmt"
	"slices"

	"fracture/internal/logging"
)

// ShaderDataType is the type of one vertex attribute.
type ShaderDataType int

const (
	ShaderDataNone ShaderDataType = iota
	Float
	Float2
	Float3
	Float4
	Mat3
	Mat4
	Int
	Int2
	Int3
	Int4
	Bool
)

var shaderDataNames = [...]string{
	ShaderDataNone: "None",
	Float:          "Float",
	Float2:         "Float2",
	Float3:         "Float3",
	Float4:         "Float4",
	Mat3:           "Mat3",
	Mat4:           "Mat4",
	Int:            "Int",
	Int2:           "Int2",
	Int3:           "Int3",
	Int4:           "Int4",
	Bool:           "Bool",
}

func (t ShaderDataType) String() string {
	if t >= 0 && int(t) < len(shaderDataNames) {
		return shaderDataNames[t]
	}
	return fmt.Sprintf("ShaderDataType(%d)", int(t))
}

// Size returns the attribute size in bytes. Unknown types are a programming
// error and panic.
func (t ShaderDataType) Size() uint32 {
	switch t {
	case Float, Int:
		return 4
	case Float2, Int2:
		return 8
	case Float3, Int3:
		return 12
	case Float4, Int4:
		return 16
	case Mat3:
		return 4 * 3 * 3
	case Mat4:
		return 4 * 4 * 4
	case Bool:
		return 4
	}
	logging.Core().Panicf("Unknown ShaderDataType %v", t)
	return 0
}

// ComponentCount returns how many scalars the attribute holds. Matrices
// count their rows.
func (t ShaderDataType) ComponentCount() uint32 {
	switch t {
	case Float, Int, Bool:
		return 1
	case Float2, Int2:
		return 2
	case Float3, Int3, Mat3:
		return 3
	case Float4, Int4, Mat4:
		return 4
	}
	logging.Core().Panicf("Unknown ShaderDataType %v", t)
	return 0
}

// IsInteger reports whether the attribute is fed to the shader unconverted.
func (t ShaderDataType) IsInteger() bool {
	switch t {
	case Int, Int2, Int3, Int4, Bool:
		return true
	}
	return false
}

func (t ShaderDataType) IsMatrix() bool { return t == Mat3 || t == Mat4 }

// BufferElement is one named attribute inside an interleaved vertex.
type BufferElement struct {
	Name       string
	Type       ShaderDataType
	Size       uint32
	Offset     uint32
	Normalized bool
}

// Element declares an attribute. Size and Offset are filled in by
// NewBufferLayout.
func Element(t ShaderDataType, name string) BufferElement {
	return BufferElement{Name: name, Type: t, Size: t.Size()}
}

func NormalizedElement(t ShaderDataType, name string) BufferElement {
	e := Element(t, name)
	e.Normalized = true
	return e
}

// BufferLayout is an immutable ordered list of elements with their packed
// offsets and the total vertex stride.
type BufferLayout struct {
	elements []BufferElement
	stride   uint32
}

// NewBufferLayout packs elements back to back in declaration order.
func NewBufferLayout(elements ...BufferElement) BufferLayout {
	l := BufferLayout{elements: slices.Clone(elements)}
	var offset uint32
	for i := range l.elements {
		e := &l.elements[i]
		e.Size = e.Type.Size()
		e.Offset = offset
		offset += e.Size
	}
	l.stride = offset
	return l
}

// Elements returns a copy of the elements.
func (l BufferLayout) Elements() []BufferElement { return slices.Clone(l.elements) }
func (l BufferLayout) Stride() uint32            { return l.stride }
func (l BufferLayout) Len() int                  { return len(l.elements) }
func (l BufferLayout) Empty() bool               { return len(l.elements) == 0 }

// VertexBuffer holds interleaved float vertex data described by a layout.
// The layout must be set before the buffer is added to a vertex array.
type VertexBuffer interface {
	Handle() Handle
	Bind()
	Unbind()
	// SetData overwrites the buffer from offset zero. It fails with
	// ErrBufferOverflow when data is larger than the buffer.
	SetData(data []float32) error
	SetLayout(layout BufferLayout)
	Layout() BufferLayout
	// Size is the capacity in bytes.
	Size() uint32
	Destroy()
}

// IndexBuffer holds 32-bit triangle indices.
type IndexBuffer interface {
	Handle() Handle
	Bind()
	Unbind()
	// SetData replaces the indices. The count is fixed at creation, so data
	// must hold exactly Count indices.
	SetData(indices []uint32) error
	// Count is the number of indices, not bytes.
	Count() uint32
	Destroy()
}
