package jd9165ba

import (
	"errors"
	"fmt"
)

// MADCTL bits.
const (
	MADCTLMH  = 0x04 // Horizontal refresh order
	MADCTLBGR = 0x08 // BGR color order
	MADCTLML  = 0x10 // Vertical refresh order
	MADCTLMV  = 0x20 // Row/column exchange
	MADCTLMX  = 0x40 // Column address order
	MADCTLMY  = 0x80 // Row address order
)

// ErrInvalidRotation is returned for rotations other than 0, 90, 180 and 270
// degrees.
var ErrInvalidRotation = errors.New("jd9165ba: invalid rotation")

// Rotation is the panel rotation in degrees, clockwise.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// madctlRotation is indexed by rotation/90.
var madctlRotation = [4]byte{
	0x00,
	MADCTLMV | MADCTLMY,
	MADCTLMX | MADCTLMY,
	MADCTLMV | MADCTLMX,
}

// Valid reports whether r is one of the four supported rotations.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// Swapped reports whether r exchanges rows and columns.
func (r Rotation) Swapped() bool {
	return r == Rotate90 || r == Rotate270
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", int(r))
}

// ParseRotation converts a degree value into a Rotation.
//
// Values that are not exactly 0, 90, 180 or 270 are rejected instead of being
// rounded down to a neighbouring rotation.
func ParseRotation(deg int) (Rotation, error) {
	r := Rotation(deg)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRotation, deg)
	}
	return r, nil
}

// RotationCmd returns the MADCTL register value for rotation r, with the BGR
// bit set when bgr is true.
func RotationCmd(r Rotation, bgr bool) (byte, error) {
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRotation, int(r))
	}
	v := madctlRotation[int(r)/90]
	if bgr {
		v |= MADCTLBGR
	}
	return v, nil
}
