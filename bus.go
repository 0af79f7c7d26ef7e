package jd9165ba

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Bus carries DCS command transactions to the controller.
//
// Send must not return until the transaction has been transmitted.
type Bus interface {
	Send(op byte, params []byte) error
}

// BusError is returned when the Bus fails to send a transaction.
type BusError struct {
	Op  byte
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("jd9165ba: send 0x%02X: %v", e.Op, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// DBIBus sends commands in MIPI-DBI type C (4-line serial) mode: the opcode
// is written with D/C low, the parameters with D/C high.
type DBIBus struct {
	c  conn.Conn
	dc gpio.PinOut
}

// NewDBIBus wraps an already connected link.
func NewDBIBus(c conn.Conn, dc gpio.PinOut) *DBIBus {
	return &DBIBus{c: c, dc: dc}
}

// NewSPIBus connects to an SPI port in Mode0 with 8-bit words.
//
// f defaults to 10MHz when zero.
func NewSPIBus(p spi.Port, dc gpio.PinOut, f physic.Frequency) (*DBIBus, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("jd9165ba: a D/C pin is required")
	}
	if f == 0 {
		f = 10 * physic.MegaHertz
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("jd9165ba: failed to connect SPI: %w", err)
	}
	return NewDBIBus(c, dc), nil
}

// Send implements Bus.
func (b *DBIBus) Send(op byte, params []byte) error {
	if err := b.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := b.c.Tx([]byte{op}, nil); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	if err := b.dc.Out(gpio.High); err != nil {
		return err
	}
	return b.c.Tx(params, nil)
}

func (b *DBIBus) String() string {
	return fmt.Sprintf("jd9165ba.DBIBus{%s}", b.c)
}
