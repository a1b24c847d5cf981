// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// ssd1306test initializes an SSD1306 OLED at 0x3C and fills one page with an
// alternating pixel pattern.
//
// The I²C bus is the first one found, or the one named by $I2CBUS.
package main

import (
	"flag"
	"os"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
	"github.com/GermanBionicSystems/i2cbench/pageview"
	"github.com/GermanBionicSystems/i2cbench/ssd1306"
	"github.com/GermanBionicSystems/i2cbench/txscript"
	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		return err
	}
	b, err := i2creg.Open(os.Getenv("I2CBUS"))
	if err != nil {
		return err
	}
	defer b.Close()

	c, err := i2cbus.New(b, &i2cbus.DefaultOpts)
	if err != nil {
		return err
	}
	opts := ssd1306.DefaultOpts
	glog.Infof("controller=%s display=0x%02X", c, opts.Addr)

	r := &txscript.Runner{Controller: c, Logf: glog.V(1).Infof}
	rep := ssd1306.RunWith(r, &opts)
	if !rep.OK() {
		return rep.Err
	}
	glog.Infof("display %s", &rep)

	v, err := pageview.New(&pageview.Opts{W: opts.W})
	if err != nil {
		return err
	}
	defer v.Halt()
	_, err = v.Write(ssd1306.PatternPayload(opts.W)[1:])
	return err
}

func main() {
	// Console only.
	_ = flag.Set("logtostderr", "true")
	flag.Parse()
	if err := mainImpl(); err != nil {
		glog.Errorf("ssd1306test: %v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}
