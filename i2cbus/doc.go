// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i2cbus is a thin transaction driver over a periph I²C bus.
//
// It exposes the two operations every exerciser in this module needs, a
// framed write and a buffered read, for both bus roles:
//
//   - Controller: addressed Write/Read, implemented by Dev on any i2c.Bus.
//   - Peripheral: unaddressed Write/Read on an endpoint answering to the
//     address it was configured with.
//
// Failures are classified as addressing (NACK), timeout, capacity or
// arbitration errors. Nothing is retried; the caller decides what a failure
// means.
//
// # Kernel errors
//
// On linux the errno values returned by i2c-dev adapters are mapped per
// https://docs.kernel.org/i2c/fault-codes.html.
package i2cbus
