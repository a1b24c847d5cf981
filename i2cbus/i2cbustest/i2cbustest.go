// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i2cbustest provides in-memory buses to test code that uses
// package i2cbus without hardware.
package i2cbustest

import (
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Call is one endpoint operation seen by a Loopback.
type Call struct {
	Endpoint string // "controller" or "target"
	Op       string // "write" or "read"
	Data     []byte // bytes written, or bytes delivered by a read
}

// Loopback is an in-memory wire between a controller and a single
// peripheral-role endpoint.
//
// The controller side implements i2c.BusCloser so it can be driven by
// i2cbus.Dev like a real bus. The peripheral side is returned by Target.
//
// The peripheral keeps what the controller wrote in a bounded RX FIFO and
// what it wants to send in a bounded TX FIFO, the way a hardware target
// peripheral does. Nothing ever blocks: a read asking for more than is
// queued delivers the partial data and fails with i2cbus.ErrTimeout, since in
// a single control flow nothing else could fill the FIFO.
type Loopback struct {
	mu    sync.Mutex
	opts  i2cbus.PeripheralOpts
	rx    []byte
	tx    []byte
	speed physic.Frequency
	// Log records every operation in program order.
	Log []Call
}

// NewLoopback returns a wire with a target configured with opts.
func NewLoopback(opts *i2cbus.PeripheralOpts) (*Loopback, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Loopback{opts: *opts}, nil
}

func (l *Loopback) String() string {
	return fmt.Sprintf("i2cbustest.Loopback{0x%02X}", l.opts.Addr)
}

// Close implements i2c.BusCloser.
func (l *Loopback) Close() error {
	return nil
}

// SetSpeed implements i2c.Bus.
func (l *Loopback) SetSpeed(f physic.Frequency) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.speed = f
	return nil
}

// Speed returns the last speed set.
func (l *Loopback) Speed() physic.Frequency {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.speed
}

// Tx implements i2c.Bus.
func (l *Loopback) Tx(addr uint16, w, r []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if addr != l.opts.Addr {
		return fmt.Errorf("%w: no device at 0x%02X", i2cbus.ErrNack, addr)
	}
	if len(w) != 0 {
		if len(l.rx)+len(w) > l.opts.RxBufferLen {
			return fmt.Errorf("%w: %d bytes queued, %d more do not fit in %d", i2cbus.ErrCapacity, len(l.rx), len(w), l.opts.RxBufferLen)
		}
		l.rx = append(l.rx, w...)
		l.record("controller", "write", w)
	}
	if len(r) != 0 {
		n := copy(r, l.tx)
		l.tx = l.tx[n:]
		l.record("controller", "read", r[:n])
		if n < len(r) {
			return fmt.Errorf("%w: received %d of %d bytes", i2cbus.ErrTimeout, n, len(r))
		}
	}
	return nil
}

// Target returns the peripheral-role endpoint of the wire.
func (l *Loopback) Target() *Target {
	return &Target{l: l}
}

func (l *Loopback) record(endpoint, op string, b []byte) {
	l.Log = append(l.Log, Call{Endpoint: endpoint, Op: op, Data: append([]byte(nil), b...)})
}

// Target is the peripheral-role endpoint of a Loopback.
type Target struct {
	l *Loopback
}

func (t *Target) String() string {
	return fmt.Sprintf("i2cbustest.Target{0x%02X}", t.l.opts.Addr)
}

// Write implements i2cbus.Peripheral.
func (t *Target) Write(w []byte) error {
	l := t.l
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(w) == 0 {
		return &i2cbus.Error{Op: "write", Addr: l.opts.Addr, Kind: i2cbus.KindInvalid, Err: fmt.Errorf("%w: empty write", i2cbus.ErrInvalid)}
	}
	if len(l.tx)+len(w) > l.opts.TxBufferLen {
		return &i2cbus.Error{Op: "write", Addr: l.opts.Addr, Kind: i2cbus.KindCapacity, Err: fmt.Errorf("%d bytes queued, %d more do not fit in %d", len(l.tx), len(w), l.opts.TxBufferLen)}
	}
	l.tx = append(l.tx, w...)
	l.record("target", "write", w)
	return nil
}

// Read implements i2cbus.Peripheral.
func (t *Target) Read(r []byte) error {
	l := t.l
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(r) > l.opts.RxBufferLen {
		return &i2cbus.Error{Op: "read", Addr: l.opts.Addr, Kind: i2cbus.KindCapacity, Err: fmt.Errorf("%d bytes requested, buffer holds %d", len(r), l.opts.RxBufferLen)}
	}
	n := copy(r, l.rx)
	l.rx = l.rx[n:]
	l.record("target", "read", r[:n])
	if n < len(r) {
		return &i2cbus.Error{Op: "read", Addr: l.opts.Addr, Kind: i2cbus.KindTimeout, Err: fmt.Errorf("received %d of %d bytes", n, len(r))}
	}
	return nil
}

var _ i2c.BusCloser = &Loopback{}
var _ i2cbus.Peripheral = &Target{}
