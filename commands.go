package ili9488

import "fmt"

// Instruction is a one byte opcode the driver sends in the command phase.
type Instruction byte

// Instruction set.
const (
	NOP     Instruction = 0x00 // No operation
	SWRESET Instruction = 0x01 // Software reset
	SLPIN   Instruction = 0x10 // Enter sleep mode
	SLPOUT  Instruction = 0x11 // Sleep out
	INVOFF  Instruction = 0x20 // Display inversion off
	INVON   Instruction = 0x21 // Display inversion on
	DISPOFF Instruction = 0x28 // Display off
	DISPON  Instruction = 0x29 // Display on
	CASET   Instruction = 0x2A // Column address set
	RASET   Instruction = 0x2B // Row (page) address set
	RAMWR   Instruction = 0x2C // Memory write
	RAMRD   Instruction = 0x2E // Memory read
	MADCTL  Instruction = 0x36 // Memory access control
)

var instructionNames = map[Instruction]string{
	NOP:     "NOP",
	SWRESET: "SWRESET",
	SLPIN:   "SLPIN",
	SLPOUT:  "SLPOUT",
	INVOFF:  "INVOFF",
	INVON:   "INVON",
	DISPOFF: "DISPOFF",
	DISPON:  "DISPON",
	CASET:   "CASET",
	RASET:   "RASET",
	RAMWR:   "RAMWR",
	RAMRD:   "RAMRD",
	MADCTL:  "MADCTL",
}

func (i Instruction) String() string {
	if s, ok := instructionNames[i]; ok {
		return s
	}
	return fmt.Sprintf("Instruction(0x%02X)", byte(i))
}

// Vendor registers only written by the initialization program.
const (
	regPGAMCTRL = 0xE0 // Positive gamma control
	regNGAMCTRL = 0xE1 // Negative gamma control
	regPWCTRL1  = 0xC0 // Power control 1
	regPWCTRL2  = 0xC1 // Power control 2
	regVMCTRL   = 0xC5 // VCOM control
	regCOLMOD   = 0x3A // Interface pixel format
	regIFMODE   = 0xB0 // Interface mode control
	regFRMCTRL1 = 0xB1 // Frame rate control (normal mode)
	regINVTR    = 0xB4 // Display inversion control
	regDISCTRL  = 0xB6 // Display function control
	regETMOD    = 0xB7 // Entry mode set
	regADJCTRL3 = 0xF7 // Adjust control 3
)

// MADCTL bits.
const (
	madctlMY  = 1 << 7 // Row address order
	madctlMX  = 1 << 6 // Column address order
	madctlMV  = 1 << 5 // Row/column exchange
	madctlBGR = 1 << 3
)

// Orientation is the MADCTL bit pattern mapping controller memory to the
// physical rows and columns of the panel.
type Orientation byte

const (
	Portrait         Orientation = 0                   // no inverting
	Landscape        Orientation = madctlMX | madctlMV // invert column and page/column order
	PortraitSwapped  Orientation = madctlMY | madctlMX // invert page and column order
	LandscapeSwapped Orientation = madctlMY | madctlMV // invert page and page/column order
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "Portrait"
	case Landscape:
		return "Landscape"
	case PortraitSwapped:
		return "PortraitSwapped"
	case LandscapeSwapped:
		return "LandscapeSwapped"
	}
	return fmt.Sprintf("Orientation(0x%02X)", byte(o))
}

// TearingEffect selects what the TE output line reports.
//
// The driver does not configure the TE line yet; the type is kept so
// boards wiring it can share one vocabulary.
type TearingEffect uint8

const (
	TearingOff                   TearingEffect = iota // Disable output
	TearingVertical                                   // V-blanking only
	TearingHorizontalAndVertical                      // H- and V-blanking
)

func (t TearingEffect) String() string {
	switch t {
	case TearingOff:
		return "Off"
	case TearingVertical:
		return "Vertical"
	case TearingHorizontalAndVertical:
		return "HorizontalAndVertical"
	}
	return fmt.Sprintf("TearingEffect(%d)", uint8(t))
}
