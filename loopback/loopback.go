// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package loopback validates a bus by exchanging a fixed payload between a
// controller and a peripheral-role endpoint on the same wires.
//
// The exchange has two phases, strictly one after the other since the bus is
// half-duplex:
//
//  1. the controller writes the payload to the peripheral address and the
//     peripheral reads it back;
//  2. the peripheral queues the payload and the controller reads it from the
//     peripheral address.
//
// Each received buffer must equal the payload byte for byte. The first
// failure ends the run.
package loopback

import (
	"fmt"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
	"github.com/GermanBionicSystems/i2cbench/txscript"
)

// Payload is the test pattern exchanged in both directions.
var Payload = []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}

// Opts defines the exchange.
type Opts struct {
	// Addr is the address the peripheral endpoint answers to.
	Addr uint16
	// Payload is sent in both directions.
	Payload []byte
}

// DefaultOpts is the standard loopback exchange.
var DefaultOpts = Opts{
	Addr:    i2cbus.DefaultPeripheralOpts.Addr,
	Payload: Payload,
}

// Steps returns the script of both phases.
func Steps(opts *Opts) ([]txscript.Step, error) {
	if opts.Addr > i2cbus.MaxAddr {
		return nil, fmt.Errorf("loopback: %w: address 0x%X is not 7-bit", i2cbus.ErrInvalid, opts.Addr)
	}
	if len(opts.Payload) == 0 {
		return nil, fmt.Errorf("loopback: %w: empty payload", i2cbus.ErrInvalid)
	}
	p := opts.Payload
	return []txscript.Step{
		{Name: "controller write", Role: txscript.Controller, Mode: txscript.Write, Addr: opts.Addr, Data: p},
		{Name: "peripheral read", Role: txscript.Peripheral, Mode: txscript.Read, Data: p},
		{Name: "peripheral write", Role: txscript.Peripheral, Mode: txscript.Write, Data: p},
		{Name: "controller read", Role: txscript.Controller, Mode: txscript.Read, Addr: opts.Addr, Data: p},
	}, nil
}

// Run performs the exchange between c and p.
func Run(c i2cbus.Controller, p i2cbus.Peripheral, opts *Opts) txscript.Report {
	return RunWith(&txscript.Runner{Controller: c, Peripheral: p}, opts)
}

// RunWith performs the exchange with a preconfigured runner, which must have
// both endpoints set.
func RunWith(r *txscript.Runner, opts *Opts) txscript.Report {
	steps, err := Steps(opts)
	if err != nil {
		return txscript.Report{FailedAt: 0, Step: txscript.Step{Name: "setup"}, Err: err}
	}
	return r.Run(steps)
}
