package headless

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"fracture/internal/renderer"
)

type VertexBuffer struct {
	b         *Backend
	id        renderer.Handle
	data      []float32
	capacity  uint32
	layout    renderer.BufferLayout
	destroyed bool
}

func (b *Backend) NewVertexBuffer(vertices []float32) (renderer.VertexBuffer, error) {
	if len(vertices) == 0 {
		return nil, renderer.ErrEmptyBufferData
	}
	return &VertexBuffer{
		b:        b,
		id:       b.handle("vertexbuffer"),
		data:     append([]float32(nil), vertices...),
		capacity: uint32(len(vertices) * 4),
	}, nil
}

func (b *Backend) NewDynamicVertexBuffer(size uint32) (renderer.VertexBuffer, error) {
	if size == 0 {
		return nil, renderer.ErrEmptyBufferData
	}
	return &VertexBuffer{b: b, id: b.handle("vertexbuffer"), capacity: size}, nil
}

func (vb *VertexBuffer) Handle() renderer.Handle { return vb.id }
func (vb *VertexBuffer) Bind()                   { vb.b.record(Command{Kind: CmdBindVertexBuffer, Handle: vb.id}) }
func (vb *VertexBuffer) Unbind()                 { vb.b.record(Command{Kind: CmdBindVertexBuffer}) }
func (vb *VertexBuffer) Size() uint32            { return vb.capacity }

func (vb *VertexBuffer) SetData(data []float32) error {
	if uint32(len(data)*4) > vb.capacity {
		return fmt.Errorf("%w: %d bytes into %d", renderer.ErrBufferOverflow, len(data)*4, vb.capacity)
	}
	vb.data = append(vb.data[:0], data...)
	return nil
}

// Data returns the last uploaded vertices.
func (vb *VertexBuffer) Data() []float32 { return append([]float32(nil), vb.data...) }

func (vb *VertexBuffer) SetLayout(layout renderer.BufferLayout) { vb.layout = layout }
func (vb *VertexBuffer) Layout() renderer.BufferLayout          { return vb.layout }

func (vb *VertexBuffer) Destroy() {
	if vb.destroyed {
		return
	}
	vb.destroyed = true
	vb.b.resources.Release("vertexbuffer", vb.id)
}

type IndexBuffer struct {
	b         *Backend
	id        renderer.Handle
	indices   []uint32
	destroyed bool
}

func (b *Backend) NewIndexBuffer(indices []uint32) (renderer.IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, renderer.ErrEmptyBufferData
	}
	return &IndexBuffer{b: b, id: b.handle("indexbuffer"), indices: append([]uint32(nil), indices...)}, nil
}

func (ib *IndexBuffer) Handle() renderer.Handle { return ib.id }
func (ib *IndexBuffer) Bind()                   { ib.b.record(Command{Kind: CmdBindIndexBuffer, Handle: ib.id}) }
func (ib *IndexBuffer) Unbind()                 { ib.b.record(Command{Kind: CmdBindIndexBuffer}) }
func (ib *IndexBuffer) Count() uint32           { return uint32(len(ib.indices)) }

func (ib *IndexBuffer) SetData(indices []uint32) error {
	if len(indices) != len(ib.indices) {
		return fmt.Errorf("%w: index buffer holds %d indices, got %d", renderer.ErrBufferOverflow, len(ib.indices), len(indices))
	}
	copy(ib.indices, indices)
	return nil
}

func (ib *IndexBuffer) Destroy() {
	if ib.destroyed {
		return
	}
	ib.destroyed = true
	ib.b.resources.Release("indexbuffer", ib.id)
}

// VertexArray records the attribute slots it was asked to configure.
type VertexArray struct {
	renderer.MeshBinding
	b         *Backend
	id        renderer.Handle
	slots     []renderer.AttributeSlot
	destroyed bool
}

func (b *Backend) NewVertexArray() (renderer.VertexArray, error) {
	return &VertexArray{b: b, id: b.handle("vertexarray")}, nil
}

func (va *VertexArray) Handle() renderer.Handle { return va.id }

func (va *VertexArray) Bind() {
	va.b.boundVA = va
	va.b.record(Command{Kind: CmdBindVertexArray, Handle: va.id})
}

func (va *VertexArray) Unbind() {
	if va.b.boundVA == va {
		va.b.boundVA = nil
	}
	va.b.record(Command{Kind: CmdUnbindVertexArray, Handle: va.id})
}

func (va *VertexArray) AddVertexBuffer(vb renderer.VertexBuffer) {
	va.slots = append(va.slots, va.Attach(vb, va.b.log)...)
}

func (va *VertexArray) SetIndexBuffer(ib renderer.IndexBuffer) { va.SetIndex(ib) }

// Slots returns every attribute slot configured so far.
func (va *VertexArray) Slots() []renderer.AttributeSlot {
	return append([]renderer.AttributeSlot(nil), va.slots...)
}

func (va *VertexArray) Destroy() {
	if va.destroyed {
		return
	}
	va.destroyed = true
	if va.b.boundVA == va {
		va.b.boundVA = nil
	}
	va.Release()
	va.b.resources.Release("vertexarray", va.id)
}

// Shader accepts any stage source that declares a main function.
type Shader struct {
	b         *Backend
	id        renderer.Handle
	name      string
	locations map[string]int32
	uniforms  map[string]any
	destroyed bool
}

func (b *Backend) NewShader(name string, sources renderer.ShaderSources) (renderer.Shader, error) {
	for _, stage := range []renderer.ShaderStage{renderer.StageVertex, renderer.StageFragment} {
		src, ok := sources[stage]
		if !ok {
			err := fmt.Errorf("%w: %q has no %s stage", renderer.ErrShaderLink, name, stage)
			b.log.Error(err)
			return nil, err
		}
		if !strings.Contains(src, "main") {
			err := fmt.Errorf("%w: %s stage of %q: no entry point", renderer.ErrShaderCompile, stage, name)
			b.log.Error(err)
			return nil, err
		}
	}
	return &Shader{
		b:         b,
		id:        b.handle("shader"),
		name:      name,
		locations: make(map[string]int32),
		uniforms:  make(map[string]any),
	}, nil
}

func (s *Shader) Name() string            { return s.name }
func (s *Shader) Handle() renderer.Handle { return s.id }
func (s *Shader) Bind()                   { s.b.record(Command{Kind: CmdBindShader, Handle: s.id}) }
func (s *Shader) Unbind()                 { s.b.record(Command{Kind: CmdUnbindShader, Handle: s.id}) }

func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	s.b.locationQueries++
	loc := int32(len(s.locations))
	s.locations[name] = loc
	return loc
}

func (s *Shader) set(name string, v any) {
	s.location(name)
	s.uniforms[name] = v
	s.b.record(Command{Kind: CmdSetUniform, Handle: s.id, Uniform: name, Value: v})
}

// Uniform returns the last value uploaded under name.
func (s *Shader) Uniform(name string) (any, bool) {
	v, ok := s.uniforms[name]
	return v, ok
}

func (s *Shader) SetBool(name string, v bool)         { s.set(name, v) }
func (s *Shader) SetInt(name string, v int32)         { s.set(name, v) }
func (s *Shader) SetInt2(name string, v [2]int32)     { s.set(name, v) }
func (s *Shader) SetInt3(name string, v [3]int32)     { s.set(name, v) }
func (s *Shader) SetInt4(name string, v [4]int32)     { s.set(name, v) }
func (s *Shader) SetFloat(name string, v float32)     { s.set(name, v) }
func (s *Shader) SetFloat2(name string, v mgl32.Vec2) { s.set(name, v) }
func (s *Shader) SetFloat3(name string, v mgl32.Vec3) { s.set(name, v) }
func (s *Shader) SetFloat4(name string, v mgl32.Vec4) { s.set(name, v) }
func (s *Shader) SetMat3(name string, v mgl32.Mat3)   { s.set(name, v) }
func (s *Shader) SetMat4(name string, v mgl32.Mat4)   { s.set(name, v) }

func (s *Shader) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.b.resources.Release("shader", s.id)
}

type Texture2D struct {
	b             *Backend
	id            renderer.Handle
	width, height uint32
	format        renderer.TextureFormat
	destroyed     bool
}

func (b *Backend) NewTexture2D(data renderer.TextureData) (renderer.Texture2D, error) {
	want := int(data.Width) * int(data.Height) * data.Format.Channels()
	if len(data.Pixels) != want {
		return nil, fmt.Errorf("%w: %dx%d %s needs %d bytes, got %d",
			renderer.ErrTextureDecode, data.Width, data.Height, data.Format, want, len(data.Pixels))
	}
	return &Texture2D{b: b, id: b.handle("texture"), width: data.Width, height: data.Height, format: data.Format}, nil
}

func (t *Texture2D) Handle() renderer.Handle        { return t.id }
func (t *Texture2D) Width() uint32                  { return t.width }
func (t *Texture2D) Height() uint32                 { return t.height }
func (t *Texture2D) Format() renderer.TextureFormat { return t.format }

func (t *Texture2D) Bind(slot uint32) {
	t.b.record(Command{Kind: CmdBindTexture, Handle: t.id, Slot: slot})
}

func (t *Texture2D) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.b.resources.Release("texture", t.id)
}
