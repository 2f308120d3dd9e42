package ili9488

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DataCommand is a bus that tags each burst of bytes as either command or
// data.
//
// The controller interprets every data byte in the context of the most
// recent command, so a command burst and the data bursts that belong to it
// must be sent back to back.
type DataCommand interface {
	// SendCommands sends cmds in the command phase.
	SendCommands(cmds []byte) error
	// SendData sends data in the data phase.
	SendData(data []byte) error
	// SendData16 sends every word of words big-endian in the data phase.
	SendData16(words iter.Seq[uint16]) error
}

// Delayer blocks the calling goroutine.
type Delayer interface {
	DelayUs(us uint32)
}

// SleepDelay is a Delayer backed by time.Sleep.
type SleepDelay struct{}

func (SleepDelay) DelayUs(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

var _ Delayer = SleepDelay{}

// PixelWriter streams 16-bit colors into an address window.
type PixelWriter interface {
	SetPixel(x, y, color uint16) error
	SetPixels(sx, sy, ex, ey uint16, colors iter.Seq[uint16]) error
}

// FramebufferTarget accepts pixel data that is already encoded in the
// controller's pixel format.
type FramebufferTarget interface {
	WriteFramebuffer(buf []byte) error
}

// ErrTransport is returned when the DataCommand bus fails.
var ErrTransport = errors.New("ili9488: display transport failure")

// PinError is returned when setting the reset or backlight line fails.
type PinError struct {
	Pin string // "reset" or "backlight"
	Err error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("ili9488: %s pin: %v", e.Pin, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}

// transportError hides err behind ErrTransport; only its text survives.
func transportError(err error) error {
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// Dev is the device handle for the ILI9488 controller.
type Dev struct {
	di  DataCommand
	rst gpio.PinOut // optional
	bl  gpio.PinOut // optional

	orientation Orientation
	released    bool
}

var (
	_ PixelWriter       = (*Dev)(nil)
	_ FramebufferTarget = (*Dev)(nil)
)

// New returns a driver for the controller on di.
//
// rst and bl can be nil when the board does not wire the reset or the
// backlight line. No I/O is performed; call Init before drawing.
func New(di DataCommand, rst, bl gpio.PinOut) *Dev {
	return &Dev{
		di:          di,
		rst:         rst,
		bl:          bl,
		orientation: Portrait,
	}
}

// Release hands back the bus and the pins passed to New.
//
// The Dev must not be used afterwards.
func (d *Dev) Release() (DataCommand, gpio.PinOut, gpio.PinOut) {
	d.mustBeLive()
	di, rst, bl := d.di, d.rst, d.bl
	*d = Dev{released: true}
	return di, rst, bl
}

// HardReset pulses the reset line high, low and high again, holding each
// level for 100µs. It is a no-op when no reset line is wired.
func (d *Dev) HardReset(delay Delayer) error {
	d.mustBeLive()
	if d.rst == nil {
		return nil
	}
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := d.rst.Out(l); err != nil {
			return &PinError{Pin: "reset", Err: err}
		}
		delay.DelayUs(100)
	}
	return nil
}

// initStep is one command of the initialization program, its parameter
// bytes and the settle time in µs the controller needs afterwards.
type initStep struct {
	cmd   byte
	data  []byte
	delay uint32
}

// initProgram brings the controller from reset to displaying in 18-bit
// mode. Order and timing are dictated by the controller.
var initProgram = []initStep{
	{cmd: byte(SWRESET), delay: 150_000},
	{cmd: byte(SLPOUT), delay: 10_000},
	{cmd: regPGAMCTRL, data: []byte{
		0x00, 0x03, 0x09, 0x08, 0x16, 0x0A, 0x3F, 0x78, 0x4C, 0x09, 0x0A, 0x08, 0x16, 0x1A, 0x0F,
	}},
	{cmd: regNGAMCTRL, data: []byte{
		0x00, 0x16, 0x19, 0x03, 0x0F, 0x05, 0x32, 0x45, 0x46, 0x04, 0x0E, 0x0D, 0x35, 0x37, 0x0F,
	}},
	{cmd: regPWCTRL1, data: []byte{0x17, 0x15}},      // VREG1OUT 5.0V, VREG2OUT -4.875V
	{cmd: regPWCTRL2, data: []byte{0x41}},            // VGH VCIx6, VGL -VCIx4
	{cmd: regVMCTRL, data: []byte{0x00, 0x12, 0x80}}, // VCOM
	{cmd: byte(MADCTL), data: []byte{madctlMX | madctlBGR}},
	{cmd: regCOLMOD, data: []byte{0x66}}, // 18 bits/pixel
	{cmd: regIFMODE, data: []byte{0x00}},
	{cmd: regFRMCTRL1, data: []byte{0xA0}},            // 60.76Hz
	{cmd: regINVTR, data: []byte{0x02}},               // 2 dot inversion
	{cmd: regDISCTRL, data: []byte{0x02, 0x02, 0x3B}}, // 480 lines
	{cmd: regETMOD, data: []byte{0xC6}},
	{cmd: regADJCTRL3, data: []byte{0xA9, 0x51, 0x2C, 0x82}},
	{cmd: byte(SLPOUT), delay: 10_000},
	{cmd: byte(DISPON), delay: 10_000},
}

// Init resets the controller and runs the initialization program.
//
// The backlight, when wired, is cycled off and on before the controller is
// configured. Init stops at the first failure and leaves the controller in
// whatever state the last successful step produced.
func (d *Dev) Init(delay Delayer) error {
	if err := d.HardReset(delay); err != nil {
		return err
	}
	if d.bl != nil {
		if err := d.setPin("backlight", d.bl, gpio.Low); err != nil {
			return err
		}
		delay.DelayUs(10_000)
		if err := d.setPin("backlight", d.bl, gpio.High); err != nil {
			return err
		}
	}
	for _, s := range initProgram {
		if err := d.sendCommand(s.cmd, s.data...); err != nil {
			return err
		}
		if s.delay != 0 {
			delay.DelayUs(s.delay)
		}
	}
	return nil
}

// Orientation returns the orientation last set with SetOrientation.
//
// Init programs the memory access control register with its own fixed
// value (MX and BGR) without touching the cached orientation, so after Init
// the register and Orientation differ until SetOrientation is called.
func (d *Dev) Orientation() Orientation {
	d.mustBeLive()
	return d.orientation
}

// SetOrientation writes o to the memory access control register.
func (d *Dev) SetOrientation(o Orientation) error {
	if err := d.sendCommand(byte(MADCTL), byte(o)); err != nil {
		return err
	}
	d.orientation = o
	return nil
}

// SetAddressWindow selects the region the next memory write fills.
//
// Both corners are inclusive. Coordinates are not checked against the
// panel size.
func (d *Dev) SetAddressWindow(sx, sy, ex, ey uint16) error {
	if err := d.writeCommand(CASET); err != nil {
		return err
	}
	if err := d.writeData16(sx); err != nil {
		return err
	}
	if err := d.writeData16(ex); err != nil {
		return err
	}
	if err := d.writeCommand(RASET); err != nil {
		return err
	}
	if err := d.writeData16(sy); err != nil {
		return err
	}
	return d.writeData16(ey)
}

// SetPixel sets the pixel at (x, y) to a 16-bit color.
func (d *Dev) SetPixel(x, y, color uint16) error {
	return d.SetPixels(x, y, x, y, func(yield func(uint16) bool) {
		yield(color)
	})
}

// SetPixels fills the window from (sx, sy) to (ex, ey) inclusive with
// colors in row-major order.
//
// The caller supplies (ex-sx+1)*(ey-sy+1) colors; the count is not checked.
func (d *Dev) SetPixels(sx, sy, ex, ey uint16, colors iter.Seq[uint16]) error {
	if err := d.SetAddressWindow(sx, sy, ex, ey); err != nil {
		return err
	}
	if err := d.writeCommand(RAMWR); err != nil {
		return err
	}
	if err := d.di.SendData16(colors); err != nil {
		return transportError(err)
	}
	return nil
}

// WriteFramebuffer sends buf verbatim as one memory write into the current
// address window.
//
// buf must already be encoded in the configured 18-bit pixel format, see
// package image666. Neither its length nor its encoding is checked.
func (d *Dev) WriteFramebuffer(buf []byte) error {
	if err := d.writeCommand(RAMWR); err != nil {
		return err
	}
	if err := d.di.SendData(buf); err != nil {
		return transportError(err)
	}
	return nil
}

// SetInverted turns display inversion on or off.
func (d *Dev) SetInverted(invert bool) error {
	if invert {
		return d.writeCommand(INVON)
	}
	return d.writeCommand(INVOFF)
}

// SetDisplayOn turns the panel output on or off. Memory is retained.
func (d *Dev) SetDisplayOn(on bool) error {
	if on {
		return d.writeCommand(DISPON)
	}
	return d.writeCommand(DISPOFF)
}

// SetSleep enters or leaves sleep mode.
func (d *Dev) SetSleep(sleep bool) error {
	if sleep {
		return d.writeCommand(SLPIN)
	}
	return d.writeCommand(SLPOUT)
}

// SetBacklight switches the backlight line. It is a no-op when no
// backlight line is wired.
func (d *Dev) SetBacklight(on bool) error {
	d.mustBeLive()
	if d.bl == nil {
		return nil
	}
	return d.setPin("backlight", d.bl, gpio.Level(on))
}

// Halt turns the display off and puts the controller to sleep.
//
// Call Init to bring it back.
func (d *Dev) Halt() error {
	if err := d.writeCommand(DISPOFF); err != nil {
		return err
	}
	return d.writeCommand(SLPIN)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	if d.released {
		return "ili9488.Dev{released}"
	}
	return fmt.Sprintf("ili9488.Dev{%s}", d.orientation)
}

func (d *Dev) writeCommand(cmd Instruction) error {
	return d.sendCommand(byte(cmd))
}

// sendCommand sends cmd as one command burst followed by data, if any, as
// one data burst.
func (d *Dev) sendCommand(cmd byte, data ...byte) error {
	d.mustBeLive()
	if err := d.di.SendCommands([]byte{cmd}); err != nil {
		return transportError(err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.di.SendData(data); err != nil {
		return transportError(err)
	}
	return nil
}

func (d *Dev) writeData16(v uint16) error {
	if err := d.di.SendData([]byte{byte(v >> 8), byte(v)}); err != nil {
		return transportError(err)
	}
	return nil
}

func (d *Dev) setPin(name string, p gpio.PinOut, l gpio.Level) error {
	if err := p.Out(l); err != nil {
		return &PinError{Pin: name, Err: err}
	}
	return nil
}

func (d *Dev) mustBeLive() {
	if d.released {
		panic("ili9488: use of released Dev")
	}
}
