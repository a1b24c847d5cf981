// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package i2cbus

import (
	"errors"
	"strings"

	"golang.org/x/sys/unix"
)

// errnoKinds maps the errno values the kernel I²C adapters return, as listed
// in Documentation/i2c/fault-codes.rst.
var errnoKinds = []struct {
	errno unix.Errno
	kind  Kind
}{
	{unix.ENXIO, KindAddress},
	{unix.EREMOTEIO, KindAddress},
	{unix.ETIMEDOUT, KindTimeout},
	{unix.EAGAIN, KindArbitration},
	{unix.EMSGSIZE, KindCapacity},
}

func errnoKind(err error) Kind {
	var errno unix.Errno
	if errors.As(err, &errno) {
		for _, e := range errnoKinds {
			if e.errno == errno {
				return e.kind
			}
		}
		return KindUnknown
	}
	// sysfs-i2c formats the errno into its message instead of wrapping it.
	msg := err.Error()
	for _, e := range errnoKinds {
		if strings.Contains(msg, e.errno.Error()) {
			return e.kind
		}
	}
	return KindUnknown
}
