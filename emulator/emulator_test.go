package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/handheld/cpu"
)

func doAssemble(t *testing.T, program ...string) *cpu.Program {
	t.Helper()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func traceValues(t *testing.T, trace *Trace, id rune) (values []int) {
	t.Helper()

	for entry := range trace.All() {
		value, err := entry.Value(id)
		if err != nil {
			t.Fatal(err)
		}
		values = append(values, value)
	}
	return
}

func TestEmulatorScenario(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, "noop", "addx 3", "addx -5")

	trace, err := Simulate(prog, cpu.Registers{'X': 1})
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(5, trace.Len())
	assert.Equal([]int{1, 1, 1, 4, 4}, traceValues(t, trace, 'X'))
	assert.Equal(cpu.Registers{'X': -1}, trace.Final())

	var cycles []uint32
	for entry := range trace.All() {
		cycles = append(cycles, entry.Cycle)
	}
	assert.Equal([]uint32{1, 2, 3, 4, 5}, cycles)
}

func TestEmulatorLength(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		cycles  int
	}){
		{"empty", nil, 0},
		{"noop", []string{"noop"}, 1},
		{"addx", []string{"addx 1"}, 2},
		{"mixed", []string{"noop", "addx 1", "noop", "noop", "addx -3", "addx 2"}, 9},
	}

	for _, entry := range table {
		prog := doAssemble(t, entry.program...)
		trace, err := Simulate(prog, cpu.Registers{'X': 1})
		assert.NoError(err, entry.name)
		assert.Equal(entry.cycles, trace.Len(), entry.name)
		assert.Equal(int(prog.Cycles()), trace.Len(), entry.name)
	}
}

func TestEmulatorPreEffect(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, "addx 2", "noop", "addx 5", "addx -1", "noop")
	trace, err := Simulate(prog, cpu.Registers{'X': 0})
	assert.NoError(err)

	// An effect becomes visible on the cycle after its instruction completes.
	regs := cpu.Registers{'X': 0}
	var cycle uint32
	for _, in := range prog.Instructions() {
		for range in.Latency() {
			cycle++
			entry, ok := trace.Entry(cycle)
			assert.True(ok, "cycle %d", cycle)
			assert.Equal(regs, entry.Registers(), "cycle %d", cycle)
		}
		regs, err = in.Apply(regs)
		assert.NoError(err)
	}
	assert.Equal(regs, trace.Final())
	assert.Equal([]int{0, 0, 2, 2, 2, 7, 7, 6}, traceValues(t, trace, 'X'))
}

func TestEmulatorDeterminism(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, "addx 15", "addx -11", "noop", "addx 6", "addx -3")
	initial := cpu.Registers{'X': 1, 'Y': 7}

	first, err := Simulate(prog, initial)
	assert.NoError(err)
	second, err := (&Emulator{}).Simulate(prog, initial)
	assert.NoError(err)

	assert.Equal(first, second)
	assert.Equal(first.Fingerprint(), second.Fingerprint())
	assert.NotEmpty(first.Fingerprint())

	// The initial bank is not modified by the simulation.
	assert.Equal(cpu.Registers{'X': 1, 'Y': 7}, initial)

	other, err := Simulate(prog, cpu.Registers{'X': 2, 'Y': 7})
	assert.NoError(err)
	assert.NotEqual(first.Fingerprint(), other.Fingerprint())

	shorter, err := Simulate(doAssemble(t, "addx 15", "addx -11"), initial)
	assert.NoError(err)
	assert.NotEqual(first.Fingerprint(), shorter.Fingerprint())
}

func TestEmulatorMissingRegister(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, "noop", "noop", "addx 3")

	trace, err := Simulate(prog, cpu.Registers{'Y': 1})
	assert.Nil(trace)
	assert.ErrorIs(err, cpu.ErrRegisterMissing('X'))

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(3, runtime.LineNo)
	}
	assert.Contains(err.Error(), "line 3")
	assert.Contains(err.Error(), "register X missing")

	// No instruction referencing a register needs no registers.
	trace, err = Simulate(doAssemble(t, "noop"), nil)
	assert.NoError(err)
	assert.Equal(1, trace.Len())
}

func TestTraceEntry(t *testing.T) {
	assert := assert.New(t)

	trace, err := Simulate(doAssemble(t, "addx 3", "noop"), cpu.Registers{'X': 1})
	assert.NoError(err)

	_, ok := trace.Entry(0)
	assert.False(ok)
	_, ok = trace.Entry(4)
	assert.False(ok)

	entry, ok := trace.Entry(3)
	assert.True(ok)
	assert.Equal(uint32(3), entry.Cycle)

	// Copies handed out do not alias the trace.
	regs := entry.Registers()
	regs['X'] = 99
	value, err := entry.Value('X')
	assert.NoError(err)
	assert.Equal(4, value)

	final := trace.Final()
	final['X'] = 99
	assert.Equal(cpu.Registers{'X': 4}, trace.Final())

	_, err = entry.Value('Q')
	assert.Equal(cpu.ErrRegisterMissing('Q'), err)
}

func TestEmulatorCycles(t *testing.T) {
	assert := assert.New(t)

	emu := &Emulator{}
	prog := doAssemble(t, "addx 1", "addx 1", "addx 1")

	var final cpu.Registers
	var seen []uint32
	for entry, err := range emu.Cycles(prog, cpu.Registers{'X': 0}, &final) {
		assert.NoError(err)
		seen = append(seen, entry.Cycle)
		if entry.Cycle == 3 {
			break
		}
	}
	assert.Equal([]uint32{1, 2, 3}, seen)
	assert.Nil(final, "final reported on early exit")

	for range emu.Cycles(prog, cpu.Registers{'X': 0}, &final) {
	}
	assert.Equal(cpu.Registers{'X': 3}, final)
}
