package crt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/handheld/cpu"
	"github.com/ezrec/handheld/emulator"
)

func doTrace(t *testing.T, program ...string) *emulator.Trace {
	t.Helper()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	trace, err := emulator.Simulate(prog, cpu.Registers{'X': 1})
	if err != nil {
		t.Fatal(err)
	}
	return trace
}

// rampProgram is 2*count cycles where X is 1 + (cycle-1)/2.
func rampProgram(count int, extra ...string) []string {
	program := make([]string, count)
	for n := range program {
		program[n] = "addx 1"
	}
	return append(program, extra...)
}

func TestRenderSmall(t *testing.T) {
	assert := assert.New(t)

	// X by cycle: 1, 1, 1, 4, 4
	trace := doTrace(t, "noop", "addx 3", "addx -5")

	table := [](struct {
		name    string
		width   int
		radius  int
		lines   []string
		partial int
	}){
		{"one_row", 5, 1, []string{"#####"}, 0},
		{"narrow_sprite", 5, 0, []string{".#..#"}, 0},
		{"wide_sprite", 5, 3, []string{"#####"}, 0},
		{"two_rows", 3, 1, []string{"###", ".."}, 2},
		{"column", 1, 0, []string{".", ".", ".", ".", "."}, 0},
		{"oversized", 8, 1, []string{"#####"}, 5},
	}

	for _, entry := range table {
		scr, err := Render(trace, 'X', entry.width, entry.radius)
		if !assert.NoError(err, entry.name) {
			continue
		}
		assert.Equal(entry.lines, scr.Lines(), entry.name)
		assert.Equal(strings.Join(entry.lines, "\n"), scr.String(), entry.name)
		assert.Equal(entry.partial, len(scr.Partial), entry.name)
		if entry.partial == 0 {
			assert.NoError(scr.Err(), entry.name)
		} else {
			assert.Equal(ErrRowPartial{Pixels: entry.partial, Width: entry.width}, scr.Err(), entry.name)
		}
	}
}

func TestRenderFrame(t *testing.T) {
	assert := assert.New(t)

	trace := doTrace(t, rampProgram(120)...)
	assert.Equal(240, trace.Len())

	scr, err := Render(trace, 'X', 40, 1)
	assert.NoError(err)
	assert.NoError(scr.Err())
	assert.Equal(40, scr.Width)
	assert.Empty(scr.Partial)

	assert.Equal(6, len(scr.Rows))
	for _, row := range scr.Rows {
		assert.Equal(40, len(row))
	}

	assert.Equal("#####"+strings.Repeat(".", 35), scr.Rows[0].String())
	assert.Equal(strings.Repeat(".", 39)+"#", scr.Rows[1].String())
	for _, row := range scr.Rows[2:] {
		assert.Equal(strings.Repeat(".", 40), row.String())
	}

	// Rendering is repeatable over the same trace.
	again, err := Render(trace, 'X', 40, 1)
	assert.NoError(err)
	assert.Equal(scr, again)
}

func TestRenderPartial(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		rows    int
		partial int
	}){
		{"extra_noop", rampProgram(120, "noop"), 6, 1},
		{"short", rampProgram(115), 5, 30},
		{"tiny", []string{"noop"}, 0, 1},
		{"empty", nil, 0, 0},
	}

	for _, entry := range table {
		trace := doTrace(t, entry.program...)

		scr, err := Render(trace, 'X', 40, 1)
		if !assert.NoError(err, entry.name) {
			continue
		}
		assert.Equal(entry.rows, len(scr.Rows), entry.name)
		assert.Equal(entry.partial, len(scr.Partial), entry.name)
		assert.Equal(trace.Len(), entry.rows*40+len(scr.Partial), entry.name)

		var partial ErrRowPartial
		if entry.partial == 0 {
			assert.NoError(scr.Err(), entry.name)
		} else if assert.True(errors.As(scr.Err(), &partial), entry.name) {
			assert.Equal(entry.partial, partial.Pixels, entry.name)
			assert.Equal(40, partial.Width, entry.name)
			assert.Contains(scr.Err().Error(), "partial row", entry.name)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	assert := assert.New(t)

	trace := doTrace(t, "noop", "noop")

	table := [](struct {
		width  int
		radius int
		param  string
		value  int
	}){
		{0, 1, "width", 0},
		{-40, 1, "width", -40},
		{40, -1, "radius", -1},
	}

	for _, entry := range table {
		scr, err := Render(trace, 'X', entry.width, entry.radius)
		assert.Nil(scr)
		assert.Equal(cpu.ErrConfiguration{Param: entry.param, Value: entry.value}, err)
	}

	scr, err := Render(trace, 'Y', 40, 1)
	assert.Nil(scr)
	assert.ErrorIs(err, cpu.ErrRegisterMissing('Y'))
}

func TestPixel(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("#", PIXEL_LIT.String())
	assert.Equal(".", PIXEL_DARK.String())
	assert.Equal("Pixel(5)", Pixel(5).String())
	assert.Equal("#.#", Row{PIXEL_LIT, PIXEL_DARK, PIXEL_LIT}.String())
	assert.Equal("", Row{}.String())
}
