package cpu

import (
	"fmt"
)

// Kind is the instruction kind.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	OP_NOOP = Kind(0) // noop
	OP_ADD  = Kind(1) // addx
)

// REGISTER_X is the register targeted by the addx instruction.
const REGISTER_X = 'X'

// Instruction is a single decoded instruction.
// Only the fields relevant to its Kind are meaningful.
type Instruction struct {
	Kind   Kind
	Target rune // OP_ADD: register to modify.
	Delta  int  // OP_ADD: signed value added to Target.
}

// MakeNoop creates an instruction that idles for one cycle.
func MakeNoop() Instruction {
	return Instruction{Kind: OP_NOOP}
}

// MakeAdd creates an instruction that adds delta to the target register
// after two cycles.
func MakeAdd(target rune, delta int) Instruction {
	return Instruction{Kind: OP_ADD, Target: target, Delta: delta}
}

// Latency returns the number of cycles the instruction occupies.
func (in Instruction) Latency() int {
	switch in.Kind {
	case OP_NOOP:
		return 1
	case OP_ADD:
		return 2
	}

	panic(ErrOpcodeInvalid(in.Kind.String()))
}

// Apply returns the register bank after the instruction's effect.
// The input bank is never modified; a bank without any change is returned
// as-is.
func (in Instruction) Apply(regs Registers) (out Registers, err error) {
	switch in.Kind {
	case OP_NOOP:
		out = regs
	case OP_ADD:
		var value int
		value, err = regs.Value(in.Target)
		if err != nil {
			return
		}
		out = regs.Clone()
		out[in.Target] = value + in.Delta
	default:
		panic(ErrOpcodeInvalid(in.Kind.String()))
	}

	return
}

// Registers returns the registers read or written by the instruction.
func (in Instruction) Registers() (regs []rune) {
	if in.Kind == OP_ADD {
		regs = append(regs, in.Target)
	}
	return
}

// String returns the instruction in assembler syntax.
func (in Instruction) String() string {
	switch in.Kind {
	case OP_ADD:
		return fmt.Sprintf("%v %d", in.Kind, in.Delta)
	default:
		return in.Kind.String()
	}
}
