// Package jd9165ba controls a JD9165BA MIPI-DSI TFT panel controller.
//
// The JD9165BA drives 800×1280 RGB panels, typically attached to a SoC's
// MIPI-DSI host running in video mode. This driver handles the command side
// of the controller only: bring-up, rotation and power states. Frame buffers
// and pixel transfer belong to the host's display engine.
//
// # Lifecycle
//
// A Dev starts Uninitialized. Init sends the bring-up sequence and leaves the
// panel Active. Sleep and Wake move between Active and Asleep:
//
//	Uninitialized --Init--> Active <--Sleep/Wake--> Asleep
//
// Calling Sleep twice, Wake while active, or any of SetRotation, Sleep or
// Wake before Init returns an error wrapping ErrInvalidState. Wake blocks for
// the controller's 120ms settle time before returning.
//
// Dev holds no lock: callers must not use it from several goroutines at once.
//
// # Transport
//
// Commands go through a Bus. DBIBus implements it on top of any periph.io
// connection plus a D/C GPIO, which is how the controller's command interface
// is exposed when strapped for serial DBI:
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/jd9165ba"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		p, _ := spireg.Open("")
//		defer p.Close()
//
//		dev, _ := jd9165ba.NewSPI(p, gpioreg.ByName("GPIO25"), &jd9165ba.Opts{
//			Rotation: jd9165ba.Rotate90,
//			RST:      gpioreg.ByName("GPIO27"),
//		})
//		defer dev.Halt()
//
//		if err := dev.Init(); err != nil {
//			panic(err)
//		}
//	}
//
// On hosts with a native DSI command channel, implement Bus with the
// platform's DCS write call and pass it to New.
//
// # Rotation
//
// Rotation is applied through the MADCTL register:
//
//	Rotate0    0x00
//	Rotate90   0xA0  (MV|MY)
//	Rotate180  0xC0  (MX|MY)
//	Rotate270  0x60  (MV|MX)
//
// The BGR bit (0x08) is added when Opts.ColorOrder is BGR. Only these four
// rotations are accepted; anything else returns ErrInvalidRotation.
//
// MADCTLML and MADCTLMH reverse the vertical and horizontal refresh order.
// No rotation sets them; they are left for Bus implementations that program
// MADCTL themselves.
//
// # Datasheet
//
// The init sequence follows the vendor reference for 800×1280 modules.
package jd9165ba
