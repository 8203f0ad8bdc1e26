package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"fracture/internal/renderer"
)

type Texture2D struct {
	b             *Backend
	id            uint32
	width, height uint32
}

func (b *Backend) NewTexture2D(data renderer.TextureData) (renderer.Texture2D, error) {
	want := int(data.Width) * int(data.Height) * data.Format.Channels()
	if want == 0 || len(data.Pixels) != want {
		return nil, fmt.Errorf("%w: %dx%d %s needs %d bytes, got %d",
			renderer.ErrTextureDecode, data.Width, data.Height, data.Format, want, len(data.Pixels))
	}

	internalFormat, dataFormat := int32(gl.RGBA8), uint32(gl.RGBA)
	if data.Format == renderer.FormatRGB8 {
		internalFormat, dataFormat = gl.RGB8, gl.RGB
	}

	t := &Texture2D{b: b, width: data.Width, height: data.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	// RGB rows are not 4-byte aligned for odd widths.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		internalFormat,
		int32(data.Width),
		int32(data.Height),
		0,
		dataFormat,
		gl.UNSIGNED_BYTE,
		gl.Ptr(data.Pixels),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	b.resources.Track("texture", renderer.Handle(t.id))
	return t, nil
}

func (t *Texture2D) Handle() renderer.Handle { return renderer.Handle(t.id) }
func (t *Texture2D) Width() uint32           { return t.width }
func (t *Texture2D) Height() uint32          { return t.height }

func (t *Texture2D) Bind(slot uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + slot)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture2D) Destroy() {
	if t.id == 0 {
		return
	}
	t.b.resources.Release("texture", renderer.Handle(t.id))
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}
