// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
//
// Page 28 lists all the commands. Page 64 has the recommended power on flow.

import (
	"fmt"
	"time"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
	"github.com/GermanBionicSystems/i2cbench/txscript"
)

const (
	_CHARGEPUMP          = 0x8D
	_COLUMNADDR          = 0x21
	_COMSCANDEC          = 0xC8
	_DISPLAYALLON_RESUME = 0xA4
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_MEMORYMODE          = 0x20
	_NORMALDISPLAY       = 0xA6
	_PAGEADDR            = 0x22
	_SETCOMPINS          = 0xDA
	_SETCONTRAST         = 0x81
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETDISPLAYOFFSET    = 0xD3
	_SETMULTIPLEX        = 0xA8
	_SETPRECHARGE        = 0xD9
	_SETSEGMENTREMAP     = 0xA1
	_SETSTARTLINE        = 0x40
	_SETVCOMDETECT       = 0xDB
)

const (
	i2cCmd  = 0x00 // I²C transaction has stream of command bytes
	i2cData = 0x40 // I²C transaction has stream of data bytes
)

// Pattern bytes, by 1-based position parity in the data stream.
const (
	patternEven = 0xAA
	patternOdd  = 0x55
)

// DefaultOpts is a 128x64 module at the usual address.
var DefaultOpts = Opts{
	W:          128,
	H:          64,
	Sequential: false,
	Addr:       0x3C,
	Settle:     10 * time.Millisecond,
}

// Opts defines the options for the device.
type Opts struct {
	W int
	H int
	// Sequential corresponds to the Sequential/Alternative COM pin configuration
	// in the OLED panel hardware. Try toggling this if half the rows appear to be
	// missing on your display. Particularly on 32 pixel height displays.
	Sequential bool
	// The I2C address of the display.
	Addr uint16
	// Settle is waited after every command write. The controller needs it
	// between init commands; it is not a tuning knob.
	Settle time.Duration
}

// Validate checks the geometry and address.
func (o *Opts) Validate() error {
	if o.Addr > i2cbus.MaxAddr {
		return fmt.Errorf("ssd1306: invalid address 0x%X", o.Addr)
	}
	if o.W < 8 || o.W > 128 || o.W&7 != 0 {
		return fmt.Errorf("ssd1306: invalid width %d", o.W)
	}
	if o.H < 8 || o.H > 64 || o.H&7 != 0 {
		return fmt.Errorf("ssd1306: invalid height %d", o.H)
	}
	if o.Settle < 0 {
		return fmt.Errorf("ssd1306: invalid settle delay %s", o.Settle)
	}
	return nil
}

// Command is one logical register write: an opcode and the operands that
// must follow it.
type Command struct {
	Name string
	Op   byte
	Args []byte
}

// Bytes returns the opcode followed by its operands.
func (c *Command) Bytes() []byte {
	return append([]byte{c.Op}, c.Args...)
}

// InitSequence returns the power on configuration, in the order it must be
// sent.
func InitSequence(opts *Opts) []Command {
	// See page 40.
	hwLayout := byte(0x02)
	if !opts.Sequential {
		hwLayout |= 0x10
	}
	return []Command{
		{"display off", _DISPLAYOFF, nil},
		{"clock divide", _SETDISPLAYCLOCKDIV, []byte{0x80}}, // power on reset value
		{"multiplex", _SETMULTIPLEX, []byte{byte(opts.H - 1)}},
		{"display offset", _SETDISPLAYOFFSET, []byte{0x00}},
		{"start line", _SETSTARTLINE, nil},
		{"charge pump", _CHARGEPUMP, []byte{0x14}},     // enable; page 62
		{"addressing mode", _MEMORYMODE, []byte{0x00}}, // horizontal
		{"segment remap", _SETSEGMENTREMAP, nil},
		{"com scan", _COMSCANDEC, nil},
		{"com pins", _SETCOMPINS, []byte{hwLayout}},
		{"contrast", _SETCONTRAST, []byte{0xCF}},
		{"precharge", _SETPRECHARGE, []byte{0xF1}},
		{"vcomh", _SETVCOMDETECT, []byte{0x40}},
		{"ram source", _DISPLAYALLON_RESUME, nil},
		{"polarity", _NORMALDISPLAY, nil},
		{"display on", _DISPLAYON, nil},
	}
}

// WindowSequence returns the column then page range commands selecting the
// GDDRAM region the next data writes fill.
func WindowSequence(colStart, colEnd, pageStart, pageEnd byte) ([]Command, error) {
	if colStart > colEnd || colEnd > 127 {
		return nil, fmt.Errorf("ssd1306: invalid column range %d-%d", colStart, colEnd)
	}
	if pageStart > pageEnd || pageEnd > 7 {
		return nil, fmt.Errorf("ssd1306: invalid page range %d-%d", pageStart, pageEnd)
	}
	return []Command{
		{"column range", _COLUMNADDR, []byte{colStart, colEnd}},
		{"page range", _PAGEADDR, []byte{pageStart, pageEnd}},
	}, nil
}

// CommandFrame prefixes b with the command control byte.
func CommandFrame(b ...byte) []byte {
	return append([]byte{i2cCmd}, b...)
}

// DataFrame prefixes b with the data control byte.
func DataFrame(b []byte) []byte {
	return append([]byte{i2cData}, b...)
}

// PatternPayload returns a data frame carrying n bytes alternating 0x55 and
// 0xAA. Counting the control byte as position 0, even positions hold 0xAA.
func PatternPayload(n int) []byte {
	content := make([]byte, n)
	for i := range content {
		// content[i] sits at position i+1 of the frame.
		if (i+1)%2 == 0 {
			content[i] = patternEven
		} else {
			content[i] = patternOdd
		}
	}
	return DataFrame(content)
}

// Steps returns the whole bring-up script: every init byte as its own command
// write, the window commands, then one page of pattern data.
func Steps(opts *Opts) ([]txscript.Step, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	var steps []txscript.Step
	for _, c := range InitSequence(opts) {
		for i, b := range c.Bytes() {
			name := c.Name
			if i > 0 {
				name = fmt.Sprintf("%s operand %d", c.Name, i)
			}
			steps = append(steps, commandStep(opts, name, CommandFrame(b)))
		}
	}
	window, err := WindowSequence(0, byte(opts.W-1), 0, byte(opts.H/8-1))
	if err != nil {
		return nil, err
	}
	for i := range window {
		steps = append(steps, commandStep(opts, window[i].Name, CommandFrame(window[i].Bytes()...)))
	}
	steps = append(steps, txscript.Step{
		Name: "pattern data",
		Role: txscript.Controller,
		Mode: txscript.Write,
		Addr: opts.Addr,
		Data: PatternPayload(opts.W),
	})
	return steps, nil
}

func commandStep(opts *Opts, name string, frame []byte) txscript.Step {
	return txscript.Step{
		Name:  name,
		Role:  txscript.Controller,
		Mode:  txscript.Write,
		Addr:  opts.Addr,
		Data:  frame,
		Delay: opts.Settle,
	}
}

// Run brings the display up on c.
func Run(c i2cbus.Controller, opts *Opts) txscript.Report {
	return RunWith(&txscript.Runner{Controller: c}, opts)
}

// RunWith brings the display up with a preconfigured runner.
func RunWith(r *txscript.Runner, opts *Opts) txscript.Report {
	steps, err := Steps(opts)
	if err != nil {
		return txscript.Report{FailedAt: 0, Step: txscript.Step{Name: "setup"}, Err: fmt.Errorf("%w: %v", i2cbus.ErrInvalid, err)}
	}
	return r.Run(steps)
}
