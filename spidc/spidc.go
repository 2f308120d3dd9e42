// Package spidc implements a command/data bus on top of a periph.io
// connection and a data/command (D/C) GPIO line, the 4-wire serial
// interface used by most TFT controllers.
package spidc

import (
	"fmt"
	"iter"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Opts is the configuration of the bus.
type Opts struct {
	Freq physic.Frequency // Clock (default: 20MHz)
	Mode spi.Mode         // SPI mode (default: Mode0)

	// Largest single transfer in bytes. Zero uses the connection's
	// conn.Limits, or 4096 if it has none.
	MaxTxSize int
}

const (
	defaultFreq      = 20 * physic.MegaHertz
	defaultMaxTxSize = 4096
)

// Conn is a command/data bus.
type Conn struct {
	c   conn.Conn
	dc  gpio.PinOut // Low for commands, high for data
	buf []byte      // Staging buffer for packed words
}

// Connect configures p and returns a bus using dc as the data/command line.
//
// opts can be nil to use defaults.
func Connect(p spi.Port, dc gpio.PinOut, opts *Opts) (*Conn, error) {
	if opts == nil {
		opts = &Opts{}
	}
	f := opts.Freq
	if f == 0 {
		f = defaultFreq
	}
	c, err := p.Connect(f, opts.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("spidc: %w", err)
	}
	return New(c, dc, opts), nil
}

// New returns a bus over an already configured connection.
//
// opts can be nil to use defaults.
func New(c conn.Conn, dc gpio.PinOut, opts *Opts) *Conn {
	maxTx := 0
	if opts != nil {
		maxTx = opts.MaxTxSize
	}
	if maxTx <= 0 {
		maxTx = defaultMaxTxSize
		if lim, ok := c.(conn.Limits); ok && lim.MaxTxSize() > 0 {
			maxTx = lim.MaxTxSize()
		}
	}
	// Keep the staging buffer word aligned.
	maxTx = max(maxTx, 2) &^ 1
	return &Conn{
		c:   c,
		dc:  dc,
		buf: make([]byte, maxTx),
	}
}

// SendCommands sends cmds with the D/C line low.
func (c *Conn) SendCommands(cmds []byte) error {
	if err := c.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("spidc: D/C: %w", err)
	}
	return c.tx(cmds)
}

// SendData sends data with the D/C line high.
func (c *Conn) SendData(data []byte) error {
	if err := c.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("spidc: D/C: %w", err)
	}
	return c.tx(data)
}

// SendData16 sends each word big-endian with the D/C line high. An empty
// sequence sends nothing.
func (c *Conn) SendData16(words iter.Seq[uint16]) error {
	if err := c.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("spidc: D/C: %w", err)
	}
	n := 0
	var err error
	for w := range words {
		if n+2 > len(c.buf) {
			if err = c.send(c.buf[:n]); err != nil {
				break
			}
			n = 0
		}
		c.buf[n] = byte(w >> 8)
		c.buf[n+1] = byte(w)
		n += 2
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return c.send(c.buf[:n])
}

// tx sends p in chunks no larger than the staging buffer.
func (c *Conn) tx(p []byte) error {
	for len(p) > 0 {
		n := min(len(p), len(c.buf))
		if err := c.send(p[:n]); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

func (c *Conn) send(p []byte) error {
	if err := c.c.Tx(p, nil); err != nil {
		return fmt.Errorf("spidc: tx: %w", err)
	}
	return nil
}

// String returns a string representation of the bus.
func (c *Conn) String() string {
	return fmt.Sprintf("spidc.Conn{%s, dc=%s}", c.c, c.dc)
}
