// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i2cbench exercises I²C links and devices.
//
// Two scripted runs share one transaction driver:
//
//   - loopback: a controller and a peripheral-role endpoint exchange a fixed
//     payload both ways and must read it back unchanged.
//   - ssd1306: an OLED controller is brought from power on to a known
//     addressable state and one page is filled with a test pattern.
//
// See cmd/i2cloopback and cmd/ssd1306test.
package i2cbench
