package cpu

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Registers is a bank of named registers.
// The set of keys is fixed once the bank is seeded.
type Registers map[rune]int

// Clone returns an independent copy of the bank.
func (regs Registers) Clone() Registers {
	return maps.Clone(regs)
}

// Value returns the value of a single register.
func (regs Registers) Value(id rune) (value int, err error) {
	value, ok := regs[id]
	if !ok {
		err = ErrRegisterMissing(id)
	}
	return
}

// Keys returns the register identifiers in ascending order.
func (regs Registers) Keys() []rune {
	return slices.Sorted(maps.Keys(regs))
}

// String returns the bank as space separated 'id=value' pairs.
func (regs Registers) String() string {
	var text []string
	for _, id := range regs.Keys() {
		text = append(text, fmt.Sprintf("%c=%d", id, regs[id]))
	}
	return strings.Join(text, " ")
}
