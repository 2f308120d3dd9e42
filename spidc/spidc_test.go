package spidc

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/flavioheleno/ili9488"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var _ ili9488.DataCommand = (*Conn)(nil)

// dcRecord records every transfer together with the D/C level at the time
// of the transfer.
type dcRecord struct {
	conntest.Record
	dc    *gpiotest.Pin
	dcAt  []gpio.Level
	maxTx int
	fail  error
}

func (r *dcRecord) Tx(w, read []byte) error {
	if r.fail != nil {
		return r.fail
	}
	r.dcAt = append(r.dcAt, r.dc.Read())
	return r.Record.Tx(w, read)
}

func (r *dcRecord) MaxTxSize() int {
	return r.maxTx
}

func (r *dcRecord) TxPackets([]spi.Packet) error {
	return errors.New("dcRecord: packets not supported")
}

func (r *dcRecord) writes() [][]byte {
	var out [][]byte
	for _, op := range r.Ops {
		out = append(out, op.W)
	}
	return out
}

func newRecord(maxTx int) *dcRecord {
	return &dcRecord{dc: &gpiotest.Pin{N: "DC"}, maxTx: maxTx}
}

func equalWrites(a, b [][]byte) bool {
	return slices.EqualFunc(a, b, bytes.Equal)
}

func TestSendCommands(t *testing.T) {
	r := newRecord(0)
	r.dc.L = gpio.High
	c := New(r, r.dc, nil)
	if err := c.SendCommands([]byte{0x2A}); err != nil {
		t.Fatal(err)
	}
	if want := [][]byte{{0x2A}}; !equalWrites(r.writes(), want) {
		t.Errorf("writes = %v, want %v", r.writes(), want)
	}
	if want := []gpio.Level{gpio.Low}; !slices.Equal(r.dcAt, want) {
		t.Errorf("D/C = %v, want %v", r.dcAt, want)
	}
}

func TestSendDataChunks(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		opts   *Opts
		data   []byte
		chunks [][]byte
	}{
		{"default", 0, nil, []byte{1, 2, 3}, [][]byte{{1, 2, 3}}},
		{"conn limit", 4, nil, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10}}},
		{"opts override limit", 4, &Opts{MaxTxSize: 6}, []byte{1, 2, 3, 4, 5, 6, 7}, [][]byte{{1, 2, 3, 4, 5, 6}, {7}}},
		{"odd size rounded down", 0, &Opts{MaxTxSize: 5}, []byte{1, 2, 3, 4, 5}, [][]byte{{1, 2, 3, 4}, {5}}},
		{"tiny size", 0, &Opts{MaxTxSize: 1}, []byte{1, 2, 3}, [][]byte{{1, 2}, {3}}},
		{"empty", 0, nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecord(tt.limit)
			c := New(r, r.dc, tt.opts)
			if err := c.SendData(tt.data); err != nil {
				t.Fatal(err)
			}
			if !equalWrites(r.writes(), tt.chunks) {
				t.Errorf("writes = %v, want %v", r.writes(), tt.chunks)
			}
			for i, l := range r.dcAt {
				if l != gpio.High {
					t.Errorf("chunk %d sent with D/C %s", i, l)
				}
			}
		})
	}
}

func TestSendData16(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		words  []uint16
		chunks [][]byte
	}{
		{"single", 0, []uint16{0xF800}, [][]byte{{0xF8, 0x00}}},
		{"big endian", 0, []uint16{0x1234, 0xABCD}, [][]byte{{0x12, 0x34, 0xAB, 0xCD}}},
		{"flush when full", 4, []uint16{0x1234, 0xABCD, 0x0001}, [][]byte{{0x12, 0x34, 0xAB, 0xCD}, {0x00, 0x01}}},
		{"exact fill", 4, []uint16{1, 2, 3, 4}, [][]byte{{0, 1, 0, 2}, {0, 3, 0, 4}}},
		{"empty", 0, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecord(tt.limit)
			c := New(r, r.dc, nil)
			if err := c.SendData16(slices.Values(tt.words)); err != nil {
				t.Fatal(err)
			}
			if !equalWrites(r.writes(), tt.chunks) {
				t.Errorf("writes = %v, want %v", r.writes(), tt.chunks)
			}
			if tt.chunks != nil && r.dc.Read() != gpio.High {
				t.Error("D/C should be high for data")
			}
		})
	}
}

func TestSendData16StopsOnError(t *testing.T) {
	r := newRecord(2)
	injected := errors.New("spi: bus fault")
	r.fail = injected
	c := New(r, r.dc, nil)

	pulled := 0
	words := func(yield func(uint16) bool) {
		for i := range 10 {
			pulled++
			if !yield(uint16(i)) {
				return
			}
		}
	}
	err := c.SendData16(words)
	if !errors.Is(err, injected) {
		t.Fatalf("SendData16() = %v, want %v", err, injected)
	}
	if pulled != 2 {
		t.Errorf("SendData16() pulled %d words after the failure, want 2", pulled)
	}
}

type failingPin struct {
	gpiotest.Pin
	err error
}

func (p *failingPin) Out(gpio.Level) error {
	return p.err
}

func TestDCPinFailure(t *testing.T) {
	r := newRecord(0)
	injected := errors.New("gpio: not exported")
	c := New(r, &failingPin{Pin: gpiotest.Pin{N: "DC"}, err: injected}, nil)

	for name, err := range map[string]error{
		"commands": c.SendCommands([]byte{0x01}),
		"data":     c.SendData([]byte{0x01}),
		"data16":   c.SendData16(slices.Values([]uint16{1})),
	} {
		if !errors.Is(err, injected) {
			t.Errorf("%s: err = %v, want %v", name, err, injected)
		}
	}
	if len(r.Ops) != 0 {
		t.Errorf("transfers sent without a D/C line: %v", r.writes())
	}
}

func TestTxFailure(t *testing.T) {
	r := newRecord(0)
	injected := errors.New("spi: bus fault")
	r.fail = injected
	c := New(r, r.dc, nil)
	err := c.SendData([]byte{1, 2, 3})
	if !errors.Is(err, injected) {
		t.Fatalf("SendData() = %v, want %v", err, injected)
	}
	if got, want := err.Error(), "spidc: tx: spi: bus fault"; got != want {
		t.Errorf("SendData() = %q, want %q", got, want)
	}
}

type fakePort struct {
	spi.Port
	c    *dcRecord
	err  error
	f    physic.Frequency
	mode spi.Mode
	bits int
}

func (p *fakePort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.f, p.mode, p.bits = f, mode, bits
	if p.err != nil {
		return nil, p.err
	}
	return p.c, nil
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name     string
		opts     *Opts
		wantFreq physic.Frequency
		wantMode spi.Mode
	}{
		{"defaults", nil, 20 * physic.MegaHertz, spi.Mode0},
		{"custom", &Opts{Freq: 40 * physic.MegaHertz, Mode: spi.Mode3}, 40 * physic.MegaHertz, spi.Mode3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecord(0)
			p := &fakePort{c: r}
			c, err := Connect(p, r.dc, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if p.f != tt.wantFreq || p.mode != tt.wantMode || p.bits != 8 {
				t.Errorf("Connect(%v, %v, %d), want (%v, %v, 8)", p.f, p.mode, p.bits, tt.wantFreq, tt.wantMode)
			}
			if err := c.SendCommands([]byte{0x29}); err != nil {
				t.Fatal(err)
			}
			if len(r.Ops) != 1 {
				t.Errorf("got %d transfers, want 1", len(r.Ops))
			}
		})
	}
}

func TestConnectError(t *testing.T) {
	injected := errors.New("spi: port busy")
	_, err := Connect(&fakePort{err: injected}, &gpiotest.Pin{N: "DC"}, nil)
	if !errors.Is(err, injected) {
		t.Errorf("Connect() = %v, want %v", err, injected)
	}
}

func TestString(t *testing.T) {
	r := newRecord(0)
	c := New(r, r.dc, nil)
	if got := c.String(); !strings.HasPrefix(got, "spidc.Conn{") || !strings.Contains(got, "dc=DC") {
		t.Errorf("String() = %q", got)
	}
}
