// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i2cbustest

import (
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Faulty wraps an i2c.Bus and fails one transaction.
type Faulty struct {
	sync.Mutex
	Bus i2c.Bus
	// FailAt is the 1-based transaction to fail. Zero never fails.
	FailAt int
	// Err is returned by the failing transaction. It is not forwarded to Bus.
	Err error
	// Count is the number of transactions attempted so far.
	Count int
}

func (f *Faulty) String() string {
	return fmt.Sprintf("i2cbustest.Faulty{%s}", f.Bus)
}

// Close implements i2c.BusCloser.
func (f *Faulty) Close() error {
	if c, ok := f.Bus.(i2c.BusCloser); ok {
		return c.Close()
	}
	return nil
}

// SetSpeed implements i2c.Bus.
func (f *Faulty) SetSpeed(freq physic.Frequency) error {
	return f.Bus.SetSpeed(freq)
}

// Tx implements i2c.Bus.
func (f *Faulty) Tx(addr uint16, w, r []byte) error {
	f.Lock()
	f.Count++
	fail := f.Count == f.FailAt
	f.Unlock()
	if fail {
		return f.Err
	}
	return f.Bus.Tx(addr, w, r)
}

// FaultyTarget wraps an i2cbus.Peripheral and fails one call.
type FaultyTarget struct {
	sync.Mutex
	Peripheral i2cbus.Peripheral
	// FailAt is the 1-based call to fail. Zero never fails.
	FailAt int
	Err    error
	Count  int
}

// Write implements i2cbus.Peripheral.
func (f *FaultyTarget) Write(w []byte) error {
	if f.fail() {
		return f.Err
	}
	return f.Peripheral.Write(w)
}

// Read implements i2cbus.Peripheral.
func (f *FaultyTarget) Read(r []byte) error {
	if f.fail() {
		return f.Err
	}
	return f.Peripheral.Read(r)
}

func (f *FaultyTarget) fail() bool {
	f.Lock()
	defer f.Unlock()
	f.Count++
	return f.Count == f.FailAt
}

var _ i2c.BusCloser = &Faulty{}
var _ i2cbus.Peripheral = &FaultyTarget{}
