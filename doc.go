// Package ili9488 controls an ILI9488 TFT controller via a command/data bus.
//
// The ILI9488 is a 320×480 RGB controller. Over a 4-wire serial bus it
// distinguishes command bytes from parameter and pixel bytes with a
// data/command (D/C) line; the most recent command gives the context for
// every data byte that follows it.
//
// # Hardware Connection
//
// Connect the panel to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCK         → SPI Clock (SCLK)
//	SDI         → SPI Data (MOSI)
//	CS          → SPI Chip Select
//	DC          → GPIO (any available pin)
//	RESET       → Optional: GPIO for hardware reset
//	LED         → Optional: GPIO for the backlight
//
// # Basic Usage
//
// The driver talks to a DataCommand. Package spidc provides one on top of a
// periph.io SPI port:
//
//	package main
//
//	import (
//		"github.com/flavioheleno/ili9488"
//		"github.com/flavioheleno/ili9488/spidc"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//		p, _ := spireg.Open("")
//		bus, _ := spidc.Connect(p, gpioreg.ByName("GPIO25"), nil)
//
//		dev := ili9488.New(bus, gpioreg.ByName("GPIO27"), gpioreg.ByName("GPIO24"))
//		if err := dev.Init(ili9488.SleepDelay{}); err != nil {
//			// The panel did not come up; there is no recovery.
//		}
//		dev.SetPixel(10, 10, 0xF800)
//	}
//
// Init runs HardReset first, cycles the backlight and then sends the
// initialization program. Reset and backlight lines are optional: pass nil
// and the driver skips toggling them but still sends every command.
//
// # Writing Pixels
//
// Two paths lead to the memory write command:
//
// SetPixel and SetPixels (PixelWriter) set the address window, send the
// memory write command and stream 16-bit big-endian words.
//
// WriteFramebuffer (FramebufferTarget) sends a pre-encoded buffer verbatim
// into the window set by the last SetAddressWindow. The controller is
// configured for 18-bit color, three bytes per pixel; package image666
// builds such buffers:
//
//	img := image666.NewImage(image.Rect(0, 0, 60, 60))
//	img.Fill(image666.RGB666{G: 63})
//	dev.SetAddressWindow(10, 10, 69, 69)
//	dev.WriteFramebuffer(img.Pix)
//
// Neither path checks coordinates, pixel counts or buffer encoding.
//
// # Errors
//
// A bus failure is reported as ErrTransport; the underlying cause is kept
// in the message only. A failing reset or backlight line is reported as a
// *PinError wrapping the pin's error. Nothing is retried: a multi-step
// operation stops at the first failure.
//
// # Datasheet
//
// https://www.hpinfotech.ro/ILI9488.pdf
package ili9488
