// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i2cbus

import (
	"errors"
	"fmt"
)

var (
	// ErrNack is returned when the address phase was not acknowledged: no
	// device is present at the address, or it is not ready.
	ErrNack = errors.New("i2cbus: address not acknowledged")
	// ErrTimeout is returned when a blocking transaction did not complete in
	// the allotted time. Some data may have been transferred.
	ErrTimeout = errors.New("i2cbus: transaction timed out")
	// ErrCapacity is returned when a payload does not fit the configured
	// buffer.
	ErrCapacity = errors.New("i2cbus: buffer capacity exceeded")
	// ErrArbitration is returned when the controller lost the bus to another
	// controller.
	ErrArbitration = errors.New("i2cbus: arbitration lost")
	// ErrInvalid is returned for arguments rejected before touching the bus.
	ErrInvalid = errors.New("i2cbus: invalid argument")
)

// Kind classifies a bus failure.
type Kind uint8

// Failure kinds.
const (
	KindNone Kind = iota
	KindAddress
	KindTimeout
	KindCapacity
	KindArbitration
	KindInvalid
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAddress:
		return "addressing"
	case KindTimeout:
		return "timeout"
	case KindCapacity:
		return "capacity"
	case KindArbitration:
		return "arbitration"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// sentinel returns the sentinel error matching the kind, if any.
func (k Kind) sentinel() error {
	switch k {
	case KindAddress:
		return ErrNack
	case KindTimeout:
		return ErrTimeout
	case KindCapacity:
		return ErrCapacity
	case KindArbitration:
		return ErrArbitration
	case KindInvalid:
		return ErrInvalid
	}
	return nil
}

// Error is a failed bus operation.
type Error struct {
	Op   string // "write" or "read"
	Addr uint16 // target address; the local address for a peripheral endpoint
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("i2cbus: %s 0x%02X: %s: %v", e.Op, e.Addr, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNack) and friends hold for an *Error even when
// the cause is a raw driver error.
func (e *Error) Is(target error) bool {
	if s := e.Kind.sentinel(); s != nil {
		return s == target
	}
	return false
}

// KindOf classifies err. It returns KindNone for a nil error and KindUnknown
// for an error it cannot attribute.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrNack):
		return KindAddress
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrCapacity):
		return KindCapacity
	case errors.Is(err, ErrArbitration):
		return KindArbitration
	case errors.Is(err, ErrInvalid):
		return KindInvalid
	}
	return errnoKind(err)
}

// wrap turns a driver error into an *Error, keeping the cause.
func wrap(op string, addr uint16, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Op: op, Addr: addr, Kind: KindOf(err), Err: err}
}
