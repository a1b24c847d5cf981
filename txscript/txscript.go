// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package txscript runs a declarative list of bus transactions.
//
// A script is a slice of Step. The Runner executes the steps in order on a
// controller and, optionally, a peripheral endpoint and stops at the first
// failure. The outcome is a single Report.
package txscript

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
)

// ErrMismatch is returned when a Read step receives other bytes than
// expected.
var ErrMismatch = errors.New("txscript: received data differs")

// KindMismatch is reported by Report.Kind for an echo mismatch. It extends
// the i2cbus kinds.
const KindMismatch = i2cbus.KindUnknown + 1

// Role selects the endpoint executing a step.
type Role uint8

// Endpoint roles.
const (
	Controller Role = iota
	Peripheral
)

func (r Role) String() string {
	if r == Peripheral {
		return "peripheral"
	}
	return "controller"
}

// Mode is the transfer direction of a step.
type Mode uint8

// Transfer directions.
const (
	Write Mode = iota
	Read
)

func (m Mode) String() string {
	if m == Read {
		return "read"
	}
	return "write"
}

// Step is one blocking transaction.
type Step struct {
	Name string
	Role Role
	Mode Mode
	// Addr is the target address. It is ignored for the Peripheral role.
	Addr uint16
	// Data is written for Write. For Read, len(Data) bytes are received and
	// must equal Data.
	Data []byte
	// Delay is slept after the step succeeded.
	Delay time.Duration
}

func (s *Step) String() string {
	if s.Role == Peripheral {
		return fmt.Sprintf("%s: peripheral %s % X", s.Name, s.Mode, s.Data)
	}
	return fmt.Sprintf("%s: controller %s 0x%02X % X", s.Name, s.Mode, s.Addr, s.Data)
}

// MismatchError describes a failed echo.
type MismatchError struct {
	Want []byte
	Got  []byte
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: want % X, got % X", ErrMismatch, e.Want, e.Got)
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// Report is the outcome of a run.
type Report struct {
	// Steps is the length of the script.
	Steps int
	// Done is the number of steps that completed.
	Done int
	// FailedAt is the 0-based index of the failing step, -1 on success.
	FailedAt int
	// Step is the failing step; zero on success.
	Step Step
	Err  error
}

// OK reports whether every step completed.
func (r *Report) OK() bool {
	return r.Err == nil
}

// Kind classifies the failure.
func (r *Report) Kind() i2cbus.Kind {
	if errors.Is(r.Err, ErrMismatch) {
		return KindMismatch
	}
	return i2cbus.KindOf(r.Err)
}

func (r *Report) String() string {
	if r.OK() {
		return fmt.Sprintf("ok: %d/%d steps", r.Done, r.Steps)
	}
	k := r.Kind()
	kind := k.String()
	if k == KindMismatch {
		kind = "mismatch"
	}
	return fmt.Sprintf("failed at step %d/%d (%s): %s error: %v", r.FailedAt+1, r.Steps, r.Step.Name, kind, r.Err)
}

// Runner executes scripts.
type Runner struct {
	Controller i2cbus.Controller
	// Peripheral may be nil if no step uses it.
	Peripheral i2cbus.Peripheral
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
	// Logf, when set, receives one line per step.
	Logf func(format string, args ...interface{})
}

// Run executes steps in order and stops at the first failure. Nothing is
// retried.
func (r *Runner) Run(steps []Step) Report {
	rep := Report{Steps: len(steps), FailedAt: -1}
	for i := range steps {
		s := &steps[i]
		r.logf("%s", s)
		if err := r.exec(s); err != nil {
			rep.FailedAt = i
			rep.Step = *s
			rep.Err = err
			r.logf("%s", &rep)
			return rep
		}
		rep.Done++
		if s.Delay > 0 {
			r.sleep(s.Delay)
		}
	}
	return rep
}

func (r *Runner) exec(s *Step) error {
	switch s.Role {
	case Controller:
		if r.Controller == nil {
			return fmt.Errorf("%w: no controller endpoint", i2cbus.ErrInvalid)
		}
		if s.Mode == Write {
			return r.Controller.Write(s.Addr, s.Data)
		}
		got := make([]byte, len(s.Data))
		if err := r.Controller.Read(s.Addr, got); err != nil {
			return err
		}
		return check(s.Data, got)
	case Peripheral:
		if r.Peripheral == nil {
			return fmt.Errorf("%w: no peripheral endpoint", i2cbus.ErrInvalid)
		}
		if s.Mode == Write {
			return r.Peripheral.Write(s.Data)
		}
		got := make([]byte, len(s.Data))
		if err := r.Peripheral.Read(got); err != nil {
			return err
		}
		return check(s.Data, got)
	}
	return fmt.Errorf("%w: unknown role %d", i2cbus.ErrInvalid, s.Role)
}

func check(want, got []byte) error {
	if !bytes.Equal(want, got) {
		return &MismatchError{Want: want, Got: got}
	}
	return nil
}

func (r *Runner) sleep(d time.Duration) {
	if r.Sleep != nil {
		r.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}
