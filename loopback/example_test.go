// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package loopback_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
	"github.com/GermanBionicSystems/i2cbench/i2cbus/i2cbustest"
	"github.com/GermanBionicSystems/i2cbench/loopback"
)

func Example() {
	wire, err := i2cbustest.NewLoopback(&i2cbus.DefaultPeripheralOpts)
	if err != nil {
		log.Fatal(err)
	}
	c, err := i2cbus.New(wire, &i2cbus.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	rep := loopback.Run(c, wire.Target(), &loopback.DefaultOpts)
	fmt.Println(rep.String())
	// Output: ok: 4/4 steps
}
