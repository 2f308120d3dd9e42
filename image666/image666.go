package image666

import (
	"image"
	"image/color"
)

// BytesPerPixel is the size of one encoded pixel.
const BytesPerPixel = 3

// RGB666 is an opaque color with 6 bits per channel (0-63).
// Only the lower 6 bits of each field are used.
type RGB666 struct {
	R, G, B uint8
}

// RGBA converts the color to standard RGBA.
func (c RGB666) RGBA() (r, g, b, a uint32) {
	return expand(c.R), expand(c.G), expand(c.B), 0xFFFF
}

// expand scales a 6-bit value to 16 bits, replicating the high bits into
// the low ones so 63 maps to 0xFFFF.
func expand(v uint8) uint32 {
	x := uint32(v & 0x3F)
	return x<<10 | x<<4 | x>>2
}

func toRGB666(c color.Color) color.Color {
	if c, ok := c.(RGB666); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB666{R: uint8(r >> 10), G: uint8(g >> 10), B: uint8(b >> 10)}
}

// RGB666Model converts colors to RGB666.
var RGB666Model = color.ModelFunc(toRGB666)

// Image is an in-memory image whose Pix holds encoded 18-bit pixels, three
// bytes per pixel in row-major order.
type Image struct {
	Pix    []byte          // Encoded pixel data
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage returns a new black Image with the given bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Image{Rect: r}
	}
	stride := w * BytesPerPixel
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return RGB666Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// Opaque reports that every pixel is fully opaque.
func (p *Image) Opaque() bool {
	return true
}

// At returns the color of the pixel at (x, y).
func (p *Image) At(x, y int) color.Color {
	return p.RGB666At(x, y)
}

// RGB666At returns the RGB666 color of the pixel at (x, y).
func (p *Image) RGB666At(x, y int) RGB666 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return RGB666{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+BytesPerPixel : i+BytesPerPixel]
	return RGB666{R: s[0] >> 2, G: s[1] >> 2, B: s[2] >> 2}
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*BytesPerPixel
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB666(x, y, RGB666Model.Convert(c).(RGB666))
}

// SetRGB666 sets the RGB666 color of the pixel at (x, y).
// This is faster than Set as it doesn't require color conversion.
func (p *Image) SetRGB666(x, y int, c RGB666) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+BytesPerPixel : i+BytesPerPixel]
	s[0] = c.R << 2
	s[1] = c.G << 2
	s[2] = c.B << 2
}

// Fill sets every pixel to c.
func (p *Image) Fill(c RGB666) {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	rowLen := w * BytesPerPixel
	row := p.Pix[:rowLen:rowLen]
	row[0], row[1], row[2] = c.R<<2, c.G<<2, c.B<<2
	// Double the initialized prefix until the row is full.
	for n := BytesPerPixel; n < rowLen; n *= 2 {
		copy(row[n:], row[:n])
	}
	for y := 1; y < h; y++ {
		copy(p.Pix[y*p.Stride:y*p.Stride+rowLen], row)
	}
}

// SubImage returns an image representing the portion of p visible through r.
// The returned image shares pixels with p.
func (p *Image) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &Image{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Image{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}
