// Package signal measures the signal strength of a simulated program.
//
// The strength at a cycle is the cycle number multiplied by the value of a
// register during that cycle. Strengths are sampled periodically from a
// starting cycle and summed.
package signal

import (
	"iter"

	"github.com/ezrec/handheld/cpu"
	"github.com/ezrec/handheld/emulator"
	"github.com/ezrec/handheld/internal"
)

// Sample is a single signal strength measurement.
type Sample struct {
	Cycle    uint32
	Value    int // Register value during the cycle.
	Strength int // Cycle * Value
}

// Sampler selects the cycles to measure.
type Sampler struct {
	Register rune   // Register to measure.
	Offset   uint32 // First sampled cycle.
	Period   int    // Cycles between samples.
}

// Validate checks the sampler configuration.
func (sm Sampler) Validate() (err error) {
	if sm.Period < 1 {
		err = cpu.ErrConfiguration{Param: "period", Value: sm.Period}
	}
	return
}

// sampled returns true if the cycle is measured.
func (sm Sampler) sampled(cycle uint32) bool {
	return cycle >= sm.Offset && (cycle-sm.Offset)%uint32(sm.Period) == 0
}

// Samples iterates over the measured cycles of the trace.
// An invalid configuration is reported before any sample.
func (sm Sampler) Samples(trace *emulator.Trace) iter.Seq2[Sample, error] {
	return func(yield func(Sample, error) bool) {
		err := sm.Validate()
		if err != nil {
			yield(Sample{}, err)
			return
		}

		entries := internal.IterSeqFilter(trace.All(), func(entry emulator.TraceEntry) bool {
			return sm.sampled(entry.Cycle)
		})
		for entry := range entries {
			value, err := entry.Value(sm.Register)
			if err != nil {
				yield(Sample{Cycle: entry.Cycle}, err)
				return
			}
			sample := Sample{
				Cycle:    entry.Cycle,
				Value:    value,
				Strength: int(entry.Cycle) * value,
			}
			if !yield(sample, nil) {
				return
			}
		}
	}
}

// Strength returns the sum of all sampled signal strengths.
func (sm Sampler) Strength(trace *emulator.Trace) (sum int, err error) {
	for sample, err := range sm.Samples(trace) {
		if err != nil {
			return 0, err
		}
		sum += sample.Strength
	}

	return
}

// Strength sums the signal strength of register target every period
// cycles, starting at cycle offset.
func Strength(trace *emulator.Trace, target rune, offset uint32, period int) (int, error) {
	return Sampler{Register: target, Offset: offset, Period: period}.Strength(trace)
}
