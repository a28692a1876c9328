// Package crt renders the handheld device's CRT from a simulation trace.
//
// The beam draws one pixel per cycle, left to right, wrapping to a new row
// every Width cycles. A pixel is lit when the beam's column lies within the
// sprite: Radius columns either side of a register's value.
package crt

import (
	"strings"

	"github.com/ezrec/handheld/cpu"
	"github.com/ezrec/handheld/emulator"
	"github.com/ezrec/handheld/internal"
	"github.com/ezrec/handheld/translate"
)

var f = translate.From

// Pixel is the state of a single CRT pixel.
type Pixel int

//go:generate go tool stringer -linecomment -type=Pixel
const (
	PIXEL_DARK = Pixel(0) // .
	PIXEL_LIT  = Pixel(1) // #
)

// Row is a single scanline.
type Row []Pixel

// String renders the row with '#' for lit and '.' for dark pixels.
func (row Row) String() string {
	var sb strings.Builder
	for _, pixel := range row {
		sb.WriteString(pixel.String())
	}
	return sb.String()
}

// ErrRowPartial reports a trailing row the beam did not finish.
type ErrRowPartial struct {
	Pixels int
	Width  int
}

func (err ErrRowPartial) Error() string {
	return f("partial row of %d/%d pixels", err.Pixels, err.Width)
}

// Screen is a rendered CRT frame.
type Screen struct {
	Width   int
	Rows    []Row // Complete rows.
	Partial Row   // Trailing incomplete row, if any.
}

// Err returns ErrRowPartial if the frame ends with an incomplete row.
func (scr *Screen) Err() (err error) {
	if len(scr.Partial) > 0 {
		err = ErrRowPartial{Pixels: len(scr.Partial), Width: scr.Width}
	}
	return
}

// Lines returns every row as text, including any partial row.
func (scr *Screen) Lines() (lines []string) {
	for _, row := range scr.Rows {
		lines = append(lines, row.String())
	}
	if len(scr.Partial) > 0 {
		lines = append(lines, scr.Partial.String())
	}
	return
}

// String returns the frame as newline separated rows.
func (scr *Screen) String() string {
	return strings.Join(scr.Lines(), "\n")
}

// Beam describes how the CRT scans a trace.
type Beam struct {
	Register rune // Register holding the sprite's center column.
	Width    int  // Pixels per row.
	Radius   int  // Sprite half-width.
}

// Validate checks the beam configuration.
func (beam Beam) Validate() (err error) {
	switch {
	case beam.Width < 1:
		err = cpu.ErrConfiguration{Param: "width", Value: beam.Width}
	case beam.Radius < 0:
		err = cpu.ErrConfiguration{Param: "radius", Value: beam.Radius}
	}
	return
}

// pixel returns the pixel drawn during a trace entry.
func (beam Beam) pixel(entry emulator.TraceEntry) (pixel Pixel, err error) {
	sprite, err := entry.Value(beam.Register)
	if err != nil {
		return
	}

	column := int((entry.Cycle - 1) % uint32(beam.Width))
	if column >= sprite-beam.Radius && column <= sprite+beam.Radius {
		pixel = PIXEL_LIT
	} else {
		pixel = PIXEL_DARK
	}

	return
}

// Render draws the trace. A trace that is not a whole number of rows
// leaves its trailing pixels in Screen.Partial.
func (beam Beam) Render(trace *emulator.Trace) (scr *Screen, err error) {
	err = beam.Validate()
	if err != nil {
		return
	}

	frame := &Screen{Width: beam.Width}

	for entries := range internal.IterSeqChunk(trace.All(), beam.Width) {
		row := make(Row, len(entries))
		for n, entry := range entries {
			row[n], err = beam.pixel(entry)
			if err != nil {
				return
			}
		}

		if len(row) < beam.Width {
			frame.Partial = row
		} else {
			frame.Rows = append(frame.Rows, row)
		}
	}

	scr = frame
	return
}

// Render draws the trace using register target as the sprite position.
func Render(trace *emulator.Trace, target rune, width int, radius int) (*Screen, error) {
	return Beam{Register: target, Width: width, Radius: radius}.Render(trace)
}
