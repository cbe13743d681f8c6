// framebuffer.go - a Memory backend that treats a window of the address
// space as a packed-pixel framebuffer, dumpable to PNG for test fixtures

package backend

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Framebuffer wraps a Linear backend and additionally interprets a
// byte range as an 8-bit indexed bitmap: one byte per pixel, row-major,
// width*height bytes starting at base. Everything outside that window
// behaves exactly like Linear.
type Framebuffer struct {
	*Linear
	base          uint32
	width, height int
	palette       color.Palette
}

// NewFramebuffer returns a fresh zeroed Linear address space whose
// bytes [base, base+width*height) are read as pixel data under palette.
func NewFramebuffer(base uint32, width, height int, palette color.Palette) *Framebuffer {
	return &Framebuffer{
		Linear:  NewLinear(),
		base:    base,
		width:   width,
		height:  height,
		palette: palette,
	}
}

// Snapshot renders the current framebuffer window to an image.Paletted.
func (f *Framebuffer) Snapshot() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, f.width, f.height), f.palette)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetColorIndex(x, y, f.ReadByte(f.base+uint32(y*f.width+x)))
		}
	}
	return img
}

// DumpPNG writes the framebuffer to path, scaled to scale*width x
// scale*height using a bilinear resampler — useful for turning a
// low-resolution test fixture into something legible in a bug report.
func (f *Framebuffer) DumpPNG(path string, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := f.Snapshot()
	dstRect := image.Rect(0, 0, f.width*scale, f.height*scale)
	dst := image.NewRGBA(dstRect)
	draw.BiLinear.Scale(dst, dstRect, src, src.Bounds(), draw.Over, nil)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("backend: creating %s: %w", path, err)
	}
	defer out.Close()
	if err := png.Encode(out, dst); err != nil {
		return fmt.Errorf("backend: encoding %s: %w", path, err)
	}
	return nil
}
