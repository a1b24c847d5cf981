// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pageview prints one SSD1306 GDDRAM page to the terminal using ANSI
// color codes.
//
// A page is a horizontal band 8 pixels high. Each byte is one column, least
// significant bit on top. Printing the bytes sent in a data stream shows what
// the panel should light without looking at it.
package pageview

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// Opts represents the options available for this display.
type Opts struct {
	// W is the number of columns; longer streams are truncated.
	W int
	// Out defaults to a color capable stdout.
	Out     io.Writer
	Palette *ansi256.Palette

	_ struct{}
}

var (
	lit  = color.NRGBA{0x40, 0xC0, 0xFF, 0xFF}
	dark = color.NRGBA{0x10, 0x10, 0x10, 0xFF}
)

// Dev prints pages to the console.
type Dev struct {
	w       io.Writer
	cols    int
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a Dev that prints at the console.
func New(opts *Opts) (*Dev, error) {
	if opts.W <= 0 {
		return nil, fmt.Errorf("pageview: invalid width %d", opts.W)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{w: w, cols: opts.W, palette: *p}, nil
}

func (d *Dev) String() string {
	return "PageView"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

// Write prints a stream of page columns, one text line per pixel row.
func (d *Dev) Write(page []byte) (int, error) {
	if len(page) == 0 {
		return 0, errors.New("pageview: empty page")
	}
	n := len(page)
	if n > d.cols {
		n = d.cols
	}
	d.buf.Reset()
	for y := uint(0); y < 8; y++ {
		_, _ = d.buf.WriteString("\033[0m")
		for _, b := range page[:n] {
			c := dark
			if b&(1<<y) != 0 {
				c = lit
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	if _, err := d.buf.WriteTo(d.w); err != nil {
		return 0, err
	}
	return n, nil
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
