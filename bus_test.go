package jd9165ba

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

// dcConn records each write along with the D/C level at the time.
type dcConn struct {
	dc     *gpiotest.Pin
	writes [][]byte
	levels []gpio.Level
	err    error
}

func (c *dcConn) String() string { return "dcConn" }
func (c *dcConn) Duplex() conn.Duplex { return conn.Half }
func (c *dcConn) Tx(w, r []byte) error {
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, append([]byte(nil), w...))
	c.levels = append(c.levels, c.dc.Read())
	return nil
}

func TestDBIBusSend(t *testing.T) {
	tests := []struct {
		name       string
		op         byte
		params     []byte
		wantWrites [][]byte
		wantLevels []gpio.Level
	}{
		{"no params", SLPOUT, nil, [][]byte{{0x11}}, []gpio.Level{gpio.Low}},
		{"one param", MADCTL, []byte{0xC0}, [][]byte{{0x36}, {0xC0}}, []gpio.Level{gpio.Low, gpio.High}},
		{"many params", SETEXTC, []byte{0xF1, 0x12, 0x83}, [][]byte{{0xB9}, {0xF1, 0x12, 0x83}}, []gpio.Level{gpio.Low, gpio.High}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := &gpiotest.Pin{N: "DC", L: gpio.High}
			c := &dcConn{dc: dc}
			b := NewDBIBus(c, dc)

			if err := b.Send(tt.op, tt.params); err != nil {
				t.Fatal(err)
			}
			if len(c.writes) != len(tt.wantWrites) {
				t.Fatalf("%d writes, want %d", len(c.writes), len(tt.wantWrites))
			}
			for i := range c.writes {
				if !bytes.Equal(c.writes[i], tt.wantWrites[i]) {
					t.Errorf("write %d = % X, want % X", i, c.writes[i], tt.wantWrites[i])
				}
				if c.levels[i] != tt.wantLevels[i] {
					t.Errorf("write %d D/C = %v, want %v", i, c.levels[i], tt.wantLevels[i])
				}
			}
		})
	}
}

func TestDBIBusSendError(t *testing.T) {
	cause := errors.New("tx failed")
	dc := &gpiotest.Pin{N: "DC"}
	b := NewDBIBus(&dcConn{dc: dc, err: cause}, dc)
	if err := b.Send(SLPIN, nil); err != cause {
		t.Errorf("Send() error = %v, want %v", err, cause)
	}
}

func TestNewSPIBusPlayback(t *testing.T) {
	p := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				{W: []byte{0x36}},
				{W: []byte{0xA0}},
				{W: []byte{0x10}},
			},
		},
	}
	dc := &gpiotest.Pin{N: "DC"}
	b, err := NewSPIBus(p, dc, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Send(MADCTL, []byte{0xA0}); err != nil {
		t.Fatal(err)
	}
	if err := b.Send(SLPIN, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewSPIBusRequiresDC(t *testing.T) {
	p := &spitest.Playback{}
	if _, err := NewSPIBus(p, nil, 0); err == nil {
		t.Error("NewSPIBus should fail without a D/C pin")
	}
	if _, err := NewSPIBus(p, gpio.INVALID, 0); err == nil {
		t.Error("NewSPIBus should fail with gpio.INVALID")
	}
}

func TestNewSPISetRotation(t *testing.T) {
	p := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				{W: []byte{0x36}},
				{W: []byte{0x68}},
			},
			DontPanic: true,
		},
	}
	d, err := NewSPI(p, &gpiotest.Pin{N: "DC"}, &Opts{ColorOrder: BGR})
	if err != nil {
		t.Fatal(err)
	}
	// Skip bring-up; only the MADCTL write is under test.
	d.state = Active
	if err := d.SetRotation(Rotate270); err != nil {
		t.Fatal(err)
	}
	if p.Count != len(p.Ops) {
		t.Fatalf("playback consumed %d of %d ops", p.Count, len(p.Ops))
	}

	// The playback is exhausted, so the next write fails.
	err = d.SetRotation(Rotate0)
	var be *BusError
	if !errors.As(err, &be) || be.Op != MADCTL {
		t.Errorf("SetRotation() error = %v, want BusError for MADCTL", err)
	}
	if d.Rotation() != Rotate270 {
		t.Errorf("Rotation() = %v, want 270°", d.Rotation())
	}
}
