// Package image666 provides an 18-bit color image whose pixel buffer can be
// sent to an ILI9488 controller without conversion.
//
// Over SPI the controller is configured for 18-bit color and consumes three
// bytes per pixel, one per channel in red, green, blue order. Only the upper
// six bits of each byte are significant; the lower two are ignored.
//
// Memory layout example for a 2-pixel row:
//
//	Pixels: 0                 1
//	Color:  RGB666{63, 0, 0}  RGB666{0, 32, 63}
//	Bytes:  0xFC 0x00 0x00    0x00 0x80 0xFC
//
// Image.Pix is therefore a ready-made payload for
// ili9488.Dev.WriteFramebuffer once the address window covers Image.Rect.
//
// Example usage:
//
//	img := image666.NewImage(image.Rect(0, 0, 60, 60))
//	img.Fill(image666.RGB666{G: 63})
//	img.SetRGB666(10, 20, image666.RGB666{R: 63, G: 63, B: 63})
//
//	dev.SetAddressWindow(0, 0, 59, 59)
//	dev.WriteFramebuffer(img.Pix)
//
// Standard Go colors are converted by RGB666Model, so the image works with
// image/draw and golang.org/x/image/font.
package image666
