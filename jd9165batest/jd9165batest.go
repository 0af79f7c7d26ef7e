// Package jd9165batest provides fakes for testing code built on the jd9165ba
// driver without hardware.
package jd9165batest

import (
	"fmt"
	"sync"
	"time"
)

// Tx is one recorded bus transaction.
type Tx struct {
	Op     byte
	Params []byte
	At     time.Time // Clock time at which the transaction was sent
}

func (t Tx) String() string {
	return fmt.Sprintf("0x%02X % X", t.Op, t.Params)
}

// Recorder is a bus that records every transaction it is given.
//
// When FailAt is positive, the FailAt-th Send (counting from 1) returns Err
// and is not recorded.
type Recorder struct {
	Clock  *Clock
	FailAt int
	Err    error

	mu    sync.Mutex
	ops   []Tx
	sends int
}

// Send records a transaction.
func (r *Recorder) Send(op byte, params []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends++
	if r.FailAt > 0 && r.sends == r.FailAt {
		if r.Err == nil {
			return fmt.Errorf("jd9165batest: send %d failed", r.sends)
		}
		return r.Err
	}
	tx := Tx{Op: op, Params: append([]byte(nil), params...)}
	if r.Clock != nil {
		tx.At = r.Clock.Now()
	}
	r.ops = append(r.ops, tx)
	return nil
}

// Txs returns a copy of the transactions recorded so far, in order.
func (r *Recorder) Txs() []Tx {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Tx(nil), r.ops...)
}

// Opcodes returns the opcodes recorded so far, in order.
func (r *Recorder) Opcodes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]byte, len(r.ops))
	for i, tx := range r.ops {
		out[i] = tx.Op
	}
	return out
}

// Reset forgets all recorded transactions.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
	r.sends = 0
}

// Clock is a manual clock. Sleep advances it instantly instead of blocking.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewClock returns a clock starting at t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now returns the current time of the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d.
func (c *Clock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
}

// Sleeps returns every duration passed to Sleep, in order.
func (c *Clock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}
