// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pageview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func TestWrite(t *testing.T) {
	var out bytes.Buffer
	d, err := New(&Opts{W: 2, Out: &out})
	if err != nil {
		t.Fatal(err)
	}
	// Column 0 lights the top row, column 1 the bottom row. The third column
	// is past the width.
	n, err := d.Write([]byte{0x01, 0x80, 0xFF})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("wrote %d", n)
	}
	on := ansi256.Default.Block(lit)
	off := ansi256.Default.Block(dark)
	rows := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(rows) != 8 {
		t.Fatalf("%d rows", len(rows))
	}
	for y, row := range rows {
		want := "\033[0m" + off + off + "\033[0m"
		switch y {
		case 0:
			want = "\033[0m" + on + off + "\033[0m"
		case 7:
			want = "\033[0m" + off + on + "\033[0m"
		}
		if row != want {
			t.Errorf("row %d: %q, want %q", y, row, want)
		}
	}
	if d.String() != "PageView" {
		t.Fatal(d.String())
	}
	out.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[0m" {
		t.Fatalf("%q", out.String())
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(&Opts{}); err == nil {
		t.Fatal("zero width accepted")
	}
	d, err := New(&Opts{W: 1, Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Write(nil); err == nil {
		t.Fatal("empty page accepted")
	}
}
