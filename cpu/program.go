package cpu

import (
	"iter"
)

// Opcode is a line of assembled source with its decoded instruction.
type Opcode struct {
	LineNo      int
	Words       []string
	Instruction Instruction
}

// Program is an assembled, read-only instruction listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode occupying a cycle.
type Debug struct {
	*Opcode
	Cycle uint32 // First cycle of the opcode.
	Index int    // Cycle offset within the opcode.
}

// Debug returns the opcode executing during the given 1-based cycle.
// dbg.Opcode is nil if the cycle is past the end of the program.
func (prog *Program) Debug(cycle uint32) (dbg Debug) {
	start := uint32(1)
	for n, op := range prog.Opcodes {
		latency := uint32(op.Instruction.Latency())
		if cycle >= start && cycle < start+latency {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Cycle:  start,
				Index:  int(cycle - start),
			}
			break
		}
		start += latency
	}

	return
}

// Cycles returns the total latency of the program.
func (prog *Program) Cycles() (cycles uint32) {
	for _, in := range prog.Instructions() {
		cycles += uint32(in.Latency())
	}

	return
}

// Instructions iterates over the program's instructions with their
// source line numbers.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(lineno int, in Instruction) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.LineNo, op.Instruction) {
				return
			}
		}
	}
}
