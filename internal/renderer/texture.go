package renderer

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureFormat is the pixel layout of uploaded texture data.
type TextureFormat int

const (
	FormatRGB8 TextureFormat = iota
	FormatRGBA8
)

func (f TextureFormat) Channels() int {
	if f == FormatRGB8 {
		return 3
	}
	return 4
}

func (f TextureFormat) String() string {
	if f == FormatRGB8 {
		return "RGB8"
	}
	return "RGBA8"
}

// TextureData is tightly packed 8-bit pixel data, first row at the bottom.
type TextureData struct {
	Width  uint32
	Height uint32
	Format TextureFormat
	Pixels []byte
}

// Texture2D is an immutable 2D texture.
type Texture2D interface {
	Handle() Handle
	Width() uint32
	Height() uint32
	// Bind makes the texture current on texture unit slot.
	Bind(slot uint32)
	Destroy()
}

// DecodeTexture decodes any registered image format. The channel count
// follows the source layout: images stored with an alpha channel become
// RGBA8 even when every pixel is opaque, the rest RGB8. Rows are flipped so
// the first row is the bottom of the image.
func DecodeTexture(r io.Reader) (TextureData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return TextureData{}, fmt.Errorf("%w: %v", ErrTextureDecode, err)
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 {
		return TextureData{}, fmt.Errorf("%w: empty image", ErrTextureDecode)
	}
	format := sourceFormat(img)
	ch := format.Channels()

	pixels := make([]byte, 0, w*h*ch)
	for y := h - 1; y >= 0; y-- {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		if ch == 4 {
			pixels = append(pixels, row...)
			continue
		}
		for x := 0; x < w; x++ {
			pixels = append(pixels, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return TextureData{Width: uint32(w), Height: uint32(h), Format: format, Pixels: pixels}, nil
}

// sourceFormat reports whether img carries an alpha channel. The png decoder
// returns *image.RGBA only for truecolor without alpha, so those count as
// RGB8 unless some pixel is translucent.
func sourceFormat(img image.Image) TextureFormat {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.Alpha, *image.Alpha16:
		return FormatRGBA8
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return FormatRGB8
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return FormatRGBA8
			}
		}
		return FormatRGB8
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return FormatRGB8
		}
	}
	return FormatRGBA8
}

// LoadTextureFile reads and decodes the image at path.
func LoadTextureFile(path string) (TextureData, error) {
	f, err := os.Open(path)
	if err != nil {
		return TextureData{}, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer f.Close()

	data, err := DecodeTexture(f)
	if err != nil {
		return TextureData{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// SolidTexture fills a width x height RGB8 texture with one colour. Components
// are clamped to [0, 1].
func SolidTexture(width, height uint32, color mgl32.Vec3) TextureData {
	var px [3]byte
	for i := range px {
		px[i] = byte(mgl32.Clamp(color[i], 0, 1)*255 + 0.5)
	}
	n := int(width) * int(height)
	pixels := make([]byte, 0, n*3)
	for range n {
		pixels = append(pixels, px[:]...)
	}
	return TextureData{Width: width, Height: height, Format: FormatRGB8, Pixels: pixels}
}
