// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
	"github.com/GermanBionicSystems/i2cbench/ssd1306"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	c, err := i2cbus.New(b, &i2cbus.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	rep := ssd1306.Run(c, &ssd1306.DefaultOpts)
	if !rep.OK() {
		log.Fatalf("failed to initialize display: %s", rep.String())
	}
	fmt.Println(rep.String())
}
