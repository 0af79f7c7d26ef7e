package jd9165ba

import "time"

// DCS and JD9165BA extended opcodes.
const (
	SLPIN   = 0x10 // Sleep in
	SLPOUT  = 0x11 // Sleep out
	DISPOFF = 0x28 // Display off
	DISPON  = 0x29 // Display on
	MADCTL  = 0x36 // Memory data access control
	COLMOD  = 0x3A // Interface pixel format

	SETEXTC  = 0xB9 // Enable extended command set
	SETMIPI  = 0xBA // MIPI related register
	SETPOWER = 0xB1 // Power control
	SETCYC   = 0xB4 // Display cycle timing
	SETVCOM  = 0xB6 // VCOM voltage
	SETGAMMA = 0xC7 // Gamma curve
	SETPANEL = 0xCC // Panel characteristics
)

// Settle times required by the controller after power-state commands.
const (
	SleepOutDelay   = 120 * time.Millisecond
	SleepInDelay    = 120 * time.Millisecond
	DisplayOnDelay  = 20 * time.Millisecond
	DisplayOffDelay = 20 * time.Millisecond
)

// Cmd is a single bus transaction: an opcode, its parameter bytes and the
// time to wait once it has been sent.
type Cmd struct {
	Op     byte
	Params []byte
	Delay  time.Duration
}

// initCmds brings the controller out of reset into RGB565 video mode.
// The MADCTL entry is a placeholder replaced when the sequence is built.
var initCmds = [...]Cmd{
	{Op: SETEXTC, Params: []byte{0xF1, 0x12, 0x83}},
	{Op: SETMIPI, Params: []byte{0x33}},
	{Op: SETPOWER, Params: []byte{
		0x00, // VRH
		0x09, // BT
		0x0C, // VSPR
		0x0C, // VSNR
		0x33, // AP
		0x33, // FS
	}},
	{Op: SETCYC, Params: []byte{
		0x80, // NW
		0x08, // RTN
		0x04, // DIV
		0x26, // DUM
		0x26, // DUM
		0x04, // GDON
		0x00, // GDOFF
	}},
	{Op: SETVCOM, Params: []byte{0x87}},
	{Op: SETPANEL, Params: []byte{0x0B}},
	{Op: SETGAMMA, Params: []byte{
		0x00, 0x04, 0x09, 0x0C, 0x10, 0x15, 0x19, 0x1F,
		0x24, 0x2E, 0x38, 0x3E, 0x4A, 0x56, 0x5F, 0x66,
		0x6E, 0x76, 0x7F, 0x85, 0x8C, 0x94, 0x9C, 0xA5,
		0xAF, 0xB9, 0xC5, 0xD1, 0xDD, 0xE9, 0xF5, 0xFF,
	}},
	{Op: COLMOD, Params: []byte{0x55}}, // 16 bits/pixel, RGB565
	{Op: MADCTL, Params: []byte{0x00}},
	{Op: SLPOUT, Delay: SleepOutDelay},
	{Op: DISPON, Delay: DisplayOnDelay},
}

// InitCmds returns the controller initialization sequence.
//
// Every call returns a fresh copy; callers may modify the result freely.
func InitCmds() []Cmd {
	cmds := make([]Cmd, len(initCmds))
	for i, c := range initCmds {
		cmds[i] = c
		if c.Params != nil {
			cmds[i].Params = append([]byte(nil), c.Params...)
		}
	}
	return cmds
}

// initSequence returns the init sequence with MADCTL set to madctl.
func initSequence(madctl byte) []Cmd {
	cmds := InitCmds()
	for i := range cmds {
		if cmds[i].Op == MADCTL {
			cmds[i].Params = []byte{madctl}
		}
	}
	return cmds
}
