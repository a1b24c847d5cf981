// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306 brings a monochrome SSD1306 OLED controller from power on
// to a known addressable state over I²C.
//
// The controller is stateless from the host point of view: it is configured
// by an ordered list of command writes. Each I²C write starts with a control
// byte, 0x00 for a stream of command bytes and 0x40 for a stream of display
// data bytes.
//
// The bring-up script is:
//
//   - the init sequence, one command write per byte, each followed by a
//     settling delay;
//   - the column and page range commands;
//   - one data write filling a page with an alternating 0x55/0xAA pattern.
//
// The first failing write aborts the script. A half configured controller is
// not reset; run the whole script again.
//
// # Datasheets
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
