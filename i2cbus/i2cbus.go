// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i2cbus

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Block disables the transaction timeout: calls wait until the bus driver
// returns.
const Block time.Duration = 0

// MaxAddr is the highest 7-bit address.
const MaxAddr = 0x7F

// Controller is the controller-role side of a bus. It initiates every
// transaction and selects the target by address.
type Controller interface {
	// Write sends start, addr+W, every byte of w, then stop.
	Write(addr uint16, w []byte) error
	// Read fills all of r from addr in one read-addressed transaction.
	Read(addr uint16, r []byte) error
}

// Peripheral is the peripheral-role side of a bus. It answers to the address
// it was configured with and exchanges data through bounded buffers.
type Peripheral interface {
	// Write queues w for the controller to read.
	Write(w []byte) error
	// Read blocks until len(r) bytes written by the controller are received.
	Read(r []byte) error
}

// Opts configures a controller Dev.
type Opts struct {
	// Speed is the bus clock. Zero leaves the bus as is.
	Speed physic.Frequency
	// Timeout bounds each transaction. Use Block to wait forever.
	Timeout time.Duration
}

// DefaultOpts is standard mode I²C without a timeout.
var DefaultOpts = Opts{
	Speed:   100 * physic.KiloHertz,
	Timeout: Block,
}

// PeripheralOpts configures a peripheral-role endpoint.
type PeripheralOpts struct {
	// Addr is the 7-bit address the endpoint answers to.
	Addr uint16
	// RxBufferLen bounds what the controller can write in one transaction.
	RxBufferLen int
	// TxBufferLen bounds what can be queued for the controller to read.
	TxBufferLen int
}

// DefaultPeripheralOpts is the loopback endpoint configuration.
var DefaultPeripheralOpts = PeripheralOpts{
	Addr:        0x22,
	RxBufferLen: 256,
	TxBufferLen: 256,
}

// Validate checks the address range and buffer capacities.
func (o *PeripheralOpts) Validate() error {
	if o.Addr > MaxAddr {
		return fmt.Errorf("%w: peripheral address 0x%X is not 7-bit", ErrInvalid, o.Addr)
	}
	if o.RxBufferLen <= 0 || o.TxBufferLen <= 0 {
		return fmt.Errorf("%w: peripheral buffers must be non-empty, got rx=%d tx=%d", ErrInvalid, o.RxBufferLen, o.TxBufferLen)
	}
	return nil
}

// Dev is a Controller on top of a periph I²C bus.
//
// It never retries: every failure is reported to the caller as an *Error.
type Dev struct {
	b       i2c.Bus
	timeout time.Duration
}

// New returns a Controller driving b.
func New(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("%w: negative timeout %s", ErrInvalid, opts.Timeout)
	}
	if opts.Speed != 0 {
		if err := b.SetSpeed(opts.Speed); err != nil {
			return nil, fmt.Errorf("i2cbus: set speed %s: %w", opts.Speed, err)
		}
	}
	return &Dev{b: b, timeout: opts.Timeout}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("i2cbus.Dev{%s}", d.b)
}

// Halt implements conn.Resource.
//
// The driver holds no state between transactions so there is nothing to stop.
func (d *Dev) Halt() error {
	return nil
}

// Write implements Controller.
func (d *Dev) Write(addr uint16, w []byte) error {
	if err := checkAddr("write", addr); err != nil {
		return err
	}
	if len(w) == 0 {
		return &Error{Op: "write", Addr: addr, Kind: KindInvalid, Err: fmt.Errorf("%w: empty write", ErrInvalid)}
	}
	return d.tx("write", addr, w, nil)
}

// Read implements Controller.
//
// r is only modified when the read succeeds.
func (d *Dev) Read(addr uint16, r []byte) error {
	if err := checkAddr("read", addr); err != nil {
		return err
	}
	if len(r) == 0 {
		return &Error{Op: "read", Addr: addr, Kind: KindInvalid, Err: fmt.Errorf("%w: empty read", ErrInvalid)}
	}
	buf := make([]byte, len(r))
	if err := d.tx("read", addr, nil, buf); err != nil {
		return err
	}
	copy(r, buf)
	return nil
}

func (d *Dev) tx(op string, addr uint16, w, r []byte) error {
	if d.timeout == Block {
		return wrap(op, addr, d.b.Tx(addr, w, r))
	}
	// The bus driver cannot be interrupted; on timeout the transaction is
	// left to finish in the background and its result is dropped. r is
	// private to this call so the late write is harmless.
	done := make(chan error, 1)
	go func() {
		done <- d.b.Tx(addr, w, r)
	}()
	t := time.NewTimer(d.timeout)
	defer t.Stop()
	select {
	case err := <-done:
		return wrap(op, addr, err)
	case <-t.C:
		return &Error{Op: op, Addr: addr, Kind: KindTimeout, Err: fmt.Errorf("%w after %s", ErrTimeout, d.timeout)}
	}
}

func checkAddr(op string, addr uint16) error {
	if addr > MaxAddr {
		return &Error{Op: op, Addr: addr, Kind: KindInvalid, Err: fmt.Errorf("%w: address 0x%X is not 7-bit", ErrInvalid, addr)}
	}
	return nil
}

var _ Controller = &Dev{}
var _ conn.Resource = &Dev{}
