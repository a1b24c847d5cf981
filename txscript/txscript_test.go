// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package txscript_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
	"github.com/GermanBionicSystems/i2cbench/i2cbus/i2cbustest"
	"github.com/GermanBionicSystems/i2cbench/txscript"
	"github.com/google/go-cmp/cmp"
)

func setup(t *testing.T) (*i2cbustest.Loopback, *txscript.Runner) {
	wire, err := i2cbustest.NewLoopback(&i2cbus.DefaultPeripheralOpts)
	if err != nil {
		t.Fatal(err)
	}
	c, err := i2cbus.New(wire, &i2cbus.Opts{})
	if err != nil {
		t.Fatal(err)
	}
	return wire, &txscript.Runner{Controller: c, Peripheral: wire.Target(), Sleep: func(time.Duration) {}}
}

func TestRun(t *testing.T) {
	_, r := setup(t)
	var slept []time.Duration
	r.Sleep = func(d time.Duration) { slept = append(slept, d) }
	var lines []string
	r.Logf = func(format string, args ...interface{}) { lines = append(lines, fmt.Sprintf(format, args...)) }

	rep := r.Run([]txscript.Step{
		{Name: "a", Role: txscript.Controller, Mode: txscript.Write, Addr: 0x22, Data: []byte{1, 2}, Delay: time.Millisecond},
		{Name: "b", Role: txscript.Peripheral, Mode: txscript.Read, Data: []byte{1, 2}},
		{Name: "c", Role: txscript.Peripheral, Mode: txscript.Write, Data: []byte{3}, Delay: 2 * time.Millisecond},
		{Name: "d", Role: txscript.Controller, Mode: txscript.Read, Addr: 0x22, Data: []byte{3}},
	})
	if !rep.OK() {
		t.Fatal(rep.String())
	}
	if rep.Done != 4 || rep.Steps != 4 || rep.FailedAt != -1 {
		t.Fatalf("unexpected %+v", rep)
	}
	if s := rep.String(); s != "ok: 4/4 steps" {
		t.Fatal(s)
	}
	if diff := cmp.Diff(slept, []time.Duration{time.Millisecond, 2 * time.Millisecond}); diff != "" {
		t.Fatalf("Sleep difference (-got +want):\n%s", diff)
	}
	want := []string{
		"a: controller write 0x22 01 02",
		"b: peripheral read 01 02",
		"c: peripheral write 03",
		"d: controller read 0x22 03",
	}
	if diff := cmp.Diff(lines, want); diff != "" {
		t.Fatalf("Logf difference (-got +want):\n%s", diff)
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	wire, r := setup(t)
	slept := 0
	r.Sleep = func(time.Duration) { slept++ }
	rep := r.Run([]txscript.Step{
		{Name: "ok", Role: txscript.Controller, Mode: txscript.Write, Addr: 0x22, Data: []byte{1}, Delay: time.Second},
		{Name: "nack", Role: txscript.Controller, Mode: txscript.Write, Addr: 0x3C, Data: []byte{1}, Delay: time.Second},
		{Name: "never", Role: txscript.Peripheral, Mode: txscript.Read, Data: []byte{1}},
	})
	if rep.OK() {
		t.Fatal("expected failure")
	}
	if rep.FailedAt != 1 || rep.Done != 1 || rep.Step.Name != "nack" {
		t.Fatalf("unexpected %+v", rep)
	}
	if rep.Kind() != i2cbus.KindAddress {
		t.Fatalf("kind %s", rep.Kind())
	}
	if !strings.HasPrefix(rep.String(), "failed at step 2/3 (nack): addressing error: ") {
		t.Fatal(rep.String())
	}
	if slept != 1 {
		t.Fatalf("slept %d times", slept)
	}
	if len(wire.Log) != 1 {
		t.Fatalf("calls after failure: %v", wire.Log)
	}
}

func TestRun_Mismatch(t *testing.T) {
	_, r := setup(t)
	rep := r.Run([]txscript.Step{
		{Name: "w", Role: txscript.Controller, Mode: txscript.Write, Addr: 0x22, Data: []byte{1, 2}},
		{Name: "r", Role: txscript.Peripheral, Mode: txscript.Read, Data: []byte{1, 3}},
	})
	if rep.Kind() != txscript.KindMismatch {
		t.Fatalf("kind %s: %v", rep.Kind(), rep.Err)
	}
	var m *txscript.MismatchError
	if !errors.As(rep.Err, &m) {
		t.Fatalf("%v", rep.Err)
	}
	if diff := cmp.Diff(m.Got, []byte{1, 2}); diff != "" {
		t.Fatal(diff)
	}
	if !strings.Contains(rep.String(), "mismatch error") {
		t.Fatal(rep.String())
	}
}

func TestRun_MissingEndpoint(t *testing.T) {
	rep := (&txscript.Runner{}).Run([]txscript.Step{{Name: "x", Role: txscript.Peripheral, Data: []byte{1}}})
	if rep.Kind() != i2cbus.KindInvalid {
		t.Fatalf("kind %s", rep.Kind())
	}
	rep = (&txscript.Runner{}).Run([]txscript.Step{{Name: "x", Data: []byte{1}}})
	if rep.Kind() != i2cbus.KindInvalid {
		t.Fatalf("kind %s", rep.Kind())
	}
}

func TestRun_Empty(t *testing.T) {
	rep := (&txscript.Runner{}).Run(nil)
	if !rep.OK() || rep.String() != "ok: 0/0 steps" {
		t.Fatal(rep.String())
	}
}
