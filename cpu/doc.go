// Package cpu implements the instruction set and assembler for the handheld
// device.
//
// The device has a small bank of named integer registers and a closed
// instruction vocabulary. Every instruction occupies a fixed number of clock
// cycles (its latency) and applies its effect to the register bank only once
// the final cycle has elapsed.
//
// The assembler turns program text into an immutable Program listing,
// supporting comments, equates, and compile-time expression evaluation.
package cpu
