// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs handheld device programs cycle by cycle.
package emulator

import (
	"context"
	"iter"
	"log/slog"

	"github.com/ezrec/handheld/cpu"
)

// Emulator simulates programs on the handheld CPU.
// It carries no state between simulations.
type Emulator struct {
	Logger *slog.Logger // If set, logs each completed instruction at debug level.
}

// Simulate runs a program with the default emulator.
func Simulate(prog *cpu.Program, initial cpu.Registers) (*Trace, error) {
	return (&Emulator{}).Simulate(prog, initial)
}

func (emu *Emulator) debug(msg string, args ...any) {
	if emu.Logger != nil {
		emu.Logger.Log(context.Background(), slog.LevelDebug, msg, args...)
	}
}

// Check verifies that every register referenced by the program is
// present in the initial bank.
func (emu *Emulator) Check(prog *cpu.Program, initial cpu.Registers) (err error) {
	for lineno, in := range prog.Instructions() {
		for _, id := range in.Registers() {
			_, err = initial.Value(id)
			if err != nil {
				err = &ErrRuntime{LineNo: lineno, Err: err}
				return
			}
		}
	}

	return
}

// Cycles iterates over the program one cycle at a time, yielding the
// pre-effect register state of every cycle. The final register bank is
// reported through final, if not nil, once the iteration completes.
//
// The program must have passed Check.
func (emu *Emulator) Cycles(prog *cpu.Program, initial cpu.Registers, final *cpu.Registers) iter.Seq2[TraceEntry, error] {
	return func(yield func(TraceEntry, error) bool) {
		regs := initial.Clone()

		var cycle uint32
		for lineno, in := range prog.Instructions() {
			latency := in.Latency()
			for n := range latency {
				cycle++
				if !yield(TraceEntry{Cycle: cycle, registers: regs}, nil) {
					return
				}

				if n == latency-1 {
					var err error
					regs, err = in.Apply(regs)
					if err != nil {
						yield(TraceEntry{}, &ErrRuntime{LineNo: lineno, Err: err})
						return
					}
				}
			}
			emu.debug("emulator: complete", "line", lineno, "cycle", cycle, "op", in.String(), "registers", regs.String())
		}

		if final != nil {
			*final = regs
		}
	}
}

// Simulate runs a program against an initial register bank, returning the
// trace of every cycle. Identical inputs always produce identical traces.
func (emu *Emulator) Simulate(prog *cpu.Program, initial cpu.Registers) (trace *Trace, err error) {
	err = emu.Check(prog, initial)
	if err != nil {
		return
	}

	tr := &Trace{
		entries: make([]TraceEntry, 0, prog.Cycles()),
	}

	for entry, err := range emu.Cycles(prog, initial, &tr.final) {
		if err != nil {
			return nil, err
		}
		tr.entries = append(tr.entries, entry)
	}

	emu.debug("emulator: simulated", "cycles", len(tr.entries), "final", tr.final.String())

	trace = tr
	return
}
