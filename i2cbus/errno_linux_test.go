// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package i2cbus

import (
	"fmt"
	"syscall"
	"testing"
)

func TestErrnoKind(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want Kind
	}{
		{syscall.ENXIO, KindAddress},
		{fmt.Errorf("i2c-dev: %w", syscall.EREMOTEIO), KindAddress},
		{syscall.ETIMEDOUT, KindTimeout},
		{syscall.EAGAIN, KindArbitration},
		{syscall.EMSGSIZE, KindCapacity},
		{syscall.EIO, KindUnknown},
		// Formatted rather than wrapped.
		{fmt.Errorf("sysfs-i2c: %v", syscall.EREMOTEIO), KindAddress},
	} {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
