// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// i2cloopback exchanges a fixed payload between a controller and a
// peripheral-role endpoint and checks it comes back unchanged both ways.
//
// periph has no host driver for the peripheral role, so both endpoints are
// joined by the in-memory loopback wire. The controller side still goes
// through i2cbus.Dev exactly as it would on a real bus.
package main

import (
	"flag"
	"os"

	"github.com/GermanBionicSystems/i2cbench/i2cbus"
	"github.com/GermanBionicSystems/i2cbench/i2cbus/i2cbustest"
	"github.com/GermanBionicSystems/i2cbench/loopback"
	"github.com/GermanBionicSystems/i2cbench/txscript"
	"github.com/golang/glog"
)

func mainImpl() error {
	wire, err := i2cbustest.NewLoopback(&i2cbus.DefaultPeripheralOpts)
	if err != nil {
		return err
	}
	defer wire.Close()
	c, err := i2cbus.New(wire, &i2cbus.DefaultOpts)
	if err != nil {
		return err
	}
	glog.Infof("controller=%s peripheral=%s speed=%s", c, wire.Target(), wire.Speed())

	r := &txscript.Runner{Controller: c, Peripheral: wire.Target(), Logf: glog.Infof}
	rep := loopback.RunWith(r, &loopback.DefaultOpts)
	if !rep.OK() {
		return rep.Err
	}
	for _, call := range wire.Log {
		glog.Infof("%s %s: % X", call.Endpoint, call.Op, call.Data)
	}
	glog.Infof("loopback %s", &rep)
	return nil
}

func main() {
	// Console only.
	_ = flag.Set("logtostderr", "true")
	flag.Parse()
	if err := mainImpl(); err != nil {
		glog.Errorf("i2cloopback: %v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}
