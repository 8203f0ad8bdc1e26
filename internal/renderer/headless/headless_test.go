package headless

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"fracture/internal/renderer"
)

func TestBufferSetData(t *testing.T) {
	b := NewBackend(nil)
	vb, err := b.NewDynamicVertexBuffer(16)
	if err != nil {
		t.Fatalf("NewDynamicVertexBuffer: %v", err)
	}
	if err := vb.SetData([]float32{1, 2, 3, 4}); err != nil {
		t.Errorf("SetData within capacity: %v", err)
	}
	if err := vb.SetData([]float32{1, 2, 3, 4, 5}); !errors.Is(err, renderer.ErrBufferOverflow) {
		t.Errorf("SetData over capacity: err = %v", err)
	}
	if got := vb.(*VertexBuffer).Data(); len(got) != 4 {
		t.Errorf("data = %v", got)
	}

	ib, _ := b.NewIndexBuffer([]uint32{0, 1, 2})
	if err := ib.SetData([]uint32{2, 1, 0}); err != nil {
		t.Errorf("IndexBuffer.SetData same count: %v", err)
	}
	if err := ib.SetData([]uint32{0, 1}); err == nil {
		t.Errorf("IndexBuffer.SetData must keep its count")
	}
	if ib.Count() != 3 {
		t.Errorf("Count = %d", ib.Count())
	}

	if _, err := b.NewVertexBuffer(nil); !errors.Is(err, renderer.ErrEmptyBufferData) {
		t.Errorf("empty vertex buffer: err = %v", err)
	}
}

func TestDestroyIsIdempotentAndTracked(t *testing.T) {
	b := NewBackend(nil)
	vb, _ := b.NewVertexBuffer([]float32{0})
	tex, _ := b.NewTexture2D(renderer.SolidTexture(1, 1, mgl32.Vec3{1, 0, 0}))
	if n := len(b.LiveResources()); n != 2 {
		t.Fatalf("live = %d, want 2", n)
	}
	vb.Destroy()
	vb.Destroy()
	tex.Destroy()
	if err := b.Shutdown(); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestTextureRejectsShortPixels(t *testing.T) {
	b := NewBackend(nil)
	data := renderer.TextureData{Width: 2, Height: 2, Format: renderer.FormatRGBA8, Pixels: make([]byte, 4)}
	if _, err := b.NewTexture2D(data); err == nil {
		t.Errorf("short pixel data accepted")
	}
}

func TestDrawIndexedZeroWithoutVertexArray(t *testing.T) {
	b := NewBackend(nil)
	b.DrawIndexed(0)
	if b.Count(CmdDrawIndexed) != 0 {
		t.Errorf("DrawIndexed(0) with nothing bound should not draw")
	}
	b.DrawIndexed(3)
	if d := b.Filter(CmdDrawIndexed); len(d) != 1 || d[0].Count != 3 {
		t.Errorf("draws = %+v", d)
	}
}
