package jd9165ba

import (
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// ErrInvalidState is returned when an operation is not allowed in the
// current power state.
var ErrInvalidState = errors.New("jd9165ba: invalid state transition")

// Panel is the lifecycle surface a display framework drives.
type Panel interface {
	Init() error
	SetRotation(r Rotation) error
	Rotation() Rotation
	Sleep() error
	Wake() error
}

// Clock provides the blocking waits required between commands.
type Clock interface {
	Sleep(d time.Duration)
}

type sysClock struct{}

func (sysClock) Sleep(d time.Duration) { time.Sleep(d) }

// ColorOrder is the subpixel order of the panel.
type ColorOrder uint8

const (
	RGB ColorOrder = iota
	BGR
)

func (o ColorOrder) String() string {
	if o == BGR {
		return "BGR"
	}
	return "RGB"
}

// State is the power state of the controller as tracked by the driver.
type State uint8

const (
	Uninitialized State = iota
	Active
	Asleep
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case Asleep:
		return "asleep"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Opts is the configuration for the JD9165BA panel.
type Opts struct {
	// Physical panel dimensions in pixels, before rotation
	W int // Width (default: 800)
	H int // Height (default: 1280)

	Rotation   Rotation   // Initial rotation applied by Init
	ColorOrder ColorOrder // RGB or BGR subpixel order

	// Optional hardware reset pin, active low
	RST gpio.PinOut

	Clock  Clock       // Defaults to time.Sleep
	Logger *zap.Logger // Defaults to a no-op logger
}

// Dev is the device handle for the JD9165BA panel.
type Dev struct {
	bus   Bus
	rst   gpio.PinOut
	clock Clock
	log   *zap.Logger

	w, h     int
	rotation Rotation
	order    ColorOrder
	state    State

	// Set by Halt, cleared once DISPON has been resent.
	displayOff bool
}

// New returns a driver for a panel reachable through bus. It does not talk
// to the controller; call Init to bring the panel up.
//
// opts can be nil to use defaults (800x1280, RGB, no rotation).
func New(bus Bus, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("jd9165ba: bus is required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	if opts.W < 0 || opts.H < 0 {
		return nil, errors.New("jd9165ba: dimensions must not be negative")
	}
	if !opts.Rotation.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotation, int(opts.Rotation))
	}
	if opts.ColorOrder != RGB && opts.ColorOrder != BGR {
		return nil, fmt.Errorf("jd9165ba: invalid color order %d", opts.ColorOrder)
	}

	d := &Dev{
		bus:      bus,
		rst:      opts.RST,
		clock:    opts.Clock,
		log:      opts.Logger,
		w:        opts.W,
		h:        opts.H,
		rotation: opts.Rotation,
		order:    opts.ColorOrder,
	}
	if d.w == 0 {
		d.w = 800
	}
	if d.h == 0 {
		d.h = 1280
	}
	if d.clock == nil {
		d.clock = sysClock{}
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	d.log = d.log.With(zap.String("dev", "jd9165ba"))
	return d, nil
}

// NewSPI returns a driver for a panel whose command interface is wired to an
// SPI port, with dc selecting between command and parameter bytes.
//
// The SPI port is configured for 10MHz, Mode0, 8-bit transfers.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	bus, err := NewSPIBus(p, dc, 10*physic.MegaHertz)
	if err != nil {
		return nil, err
	}
	return New(bus, opts)
}

// Init resets the controller and sends the initialization sequence, with
// MADCTL computed from the configured rotation and color order.
func (d *Dev) Init() error {
	if d.state != Uninitialized {
		return d.invalid("init")
	}
	madctl, err := RotationCmd(d.rotation, d.order == BGR)
	if err != nil {
		return err
	}

	if d.rst != nil {
		if err := d.reset(); err != nil {
			return err
		}
	}

	for _, c := range initSequence(madctl) {
		if err := d.send(c.Op, c.Params); err != nil {
			d.log.Error("init sequence failed", zap.Error(err))
			return err
		}
		if c.Delay > 0 {
			d.clock.Sleep(c.Delay)
		}
	}

	d.setState(Active)
	return nil
}

// reset pulses the hardware reset line.
func (d *Dev) reset() error {
	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("jd9165ba: failed to pull RST low: %w", err)
	}
	d.clock.Sleep(10 * time.Millisecond)

	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("jd9165ba: failed to pull RST high: %w", err)
	}
	d.clock.Sleep(120 * time.Millisecond)
	return nil
}

// SetRotation changes the panel orientation with a single MADCTL write.
//
// The panel must have been initialized.
func (d *Dev) SetRotation(r Rotation) error {
	madctl, err := RotationCmd(r, d.order == BGR)
	if err != nil {
		return err
	}
	if d.state == Uninitialized {
		return d.invalid("set rotation")
	}
	if err := d.send(MADCTL, []byte{madctl}); err != nil {
		return err
	}
	d.log.Info("rotation changed", zap.Stringer("from", d.rotation), zap.Stringer("to", r))
	d.rotation = r
	return nil
}

// Rotation returns the current rotation.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

// ColorOrder returns the configured subpixel order.
func (d *Dev) ColorOrder() ColorOrder {
	return d.order
}

// State returns the power state.
func (d *Dev) State() State {
	return d.state
}

// Sleep puts an active panel into sleep mode.
func (d *Dev) Sleep() error {
	if d.state != Active {
		return d.invalid("sleep")
	}
	if err := d.send(SLPIN, nil); err != nil {
		return err
	}
	d.clock.Sleep(SleepInDelay)
	d.setState(Asleep)
	return nil
}

// Wake takes the panel out of sleep mode. It blocks for the panel's settle
// time before returning.
func (d *Dev) Wake() error {
	if d.state != Asleep {
		return d.invalid("wake")
	}
	if err := d.send(SLPOUT, nil); err != nil {
		return err
	}
	d.clock.Sleep(SleepOutDelay)

	if d.displayOff {
		if err := d.send(DISPON, nil); err != nil {
			return err
		}
		d.clock.Sleep(DisplayOnDelay)
		d.displayOff = false
	}
	d.setState(Active)
	return nil
}

// Bounds returns the visible area for the current rotation.
func (d *Dev) Bounds() image.Rectangle {
	if d.rotation.Swapped() {
		return image.Rect(0, 0, d.h, d.w)
	}
	return image.Rect(0, 0, d.w, d.h)
}

// Halt turns the display off and puts the controller to sleep.
// Wake turns it back on.
func (d *Dev) Halt() error {
	switch d.state {
	case Uninitialized:
		return nil
	case Asleep:
		if d.displayOff {
			return nil
		}
		if err := d.send(DISPOFF, nil); err != nil {
			return err
		}
		d.displayOff = true
		return nil
	}

	if err := d.send(DISPOFF, nil); err != nil {
		return err
	}
	d.displayOff = true
	d.clock.Sleep(DisplayOffDelay)

	if err := d.send(SLPIN, nil); err != nil {
		return err
	}
	d.clock.Sleep(SleepInDelay)
	d.setState(Asleep)
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("jd9165ba.Dev{%dx%d}", d.w, d.h)
}

func (d *Dev) send(op byte, params []byte) error {
	d.log.Debug("tx", zap.Uint8("op", op), zap.Binary("params", params))
	if err := d.bus.Send(op, params); err != nil {
		return &BusError{Op: op, Err: err}
	}
	return nil
}

func (d *Dev) setState(s State) {
	d.log.Info("state changed", zap.Stringer("from", d.state), zap.Stringer("to", s))
	d.state = s
}

func (d *Dev) invalid(op string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidState, op, d.state)
}

var _ conn.Resource = &Dev{}
var _ Panel = &Dev{}
