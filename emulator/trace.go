package emulator

import (
	"encoding/binary"
	"iter"

	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"

	"github.com/ezrec/handheld/cpu"
)

// TraceEntry is the register state during a single cycle, before any
// instruction completing on that cycle applies its effect.
type TraceEntry struct {
	Cycle uint32 // 1-based cycle number.

	registers cpu.Registers // Shared, never modified.
}

// Value returns a register value during the cycle.
func (te TraceEntry) Value(id rune) (int, error) {
	return te.registers.Value(id)
}

// Registers returns a copy of the register bank during the cycle.
func (te TraceEntry) Registers() cpu.Registers {
	return te.registers.Clone()
}

// Trace is the read-only record of a simulation, one entry per cycle.
// It is safe for concurrent use.
type Trace struct {
	entries []TraceEntry
	final   cpu.Registers
}

// Len returns the number of cycles in the trace.
func (tr *Trace) Len() int {
	return len(tr.entries)
}

// Entry returns the entry for a 1-based cycle.
func (tr *Trace) Entry(cycle uint32) (entry TraceEntry, ok bool) {
	if cycle == 0 || int(cycle) > len(tr.entries) {
		return
	}

	return tr.entries[cycle-1], true
}

// All iterates over the entries in cycle order.
func (tr *Trace) All() iter.Seq[TraceEntry] {
	return func(yield func(TraceEntry) bool) {
		for _, entry := range tr.entries {
			if !yield(entry) {
				return
			}
		}
	}
}

// Final returns a copy of the register bank after every instruction has
// completed.
func (tr *Trace) Final() cpu.Registers {
	return tr.final.Clone()
}

// Fingerprint returns the base58 encoded BLAKE3 digest of the trace.
// Identical traces have identical fingerprints.
func (tr *Trace) Fingerprint() string {
	h := blake3.New()

	var buf []byte
	putRegisters := func(regs cpu.Registers) {
		keys := regs.Keys()
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(keys)))
		for _, id := range keys {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
			buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(regs[id])))
		}
	}

	for _, entry := range tr.entries {
		buf = binary.LittleEndian.AppendUint32(buf[:0], entry.Cycle)
		putRegisters(entry.registers)
		h.Write(buf)
	}

	buf = binary.LittleEndian.AppendUint32(buf[:0], ^uint32(0))
	putRegisters(tr.final)
	h.Write(buf)

	return base58.Encode(h.Sum(nil))
}
