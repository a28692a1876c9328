package internal

import (
	"iter"
)

// IterSeqFilter yields only the values of seq accepted by keep.
func IterSeqFilter[T any](seq iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for val := range seq {
			if !keep(val) {
				continue
			}
			if !yield(val) {
				return // Stop if the consumer stops
			}
		}
	}
}

// IterSeqChunk groups a sequence into slices of size values.
// The final slice is shorter than size if the sequence runs out early.
// Each yielded slice is freshly allocated.
func IterSeqChunk[T any](seq iter.Seq[T], size int) iter.Seq[[]T] {
	if size < 1 {
		panic("IterSeqChunk: size must be positive")
	}

	return func(yield func([]T) bool) {
		chunk := make([]T, 0, size)
		for val := range seq {
			chunk = append(chunk, val)
			if len(chunk) == size {
				if !yield(chunk) {
					return // Stop if the consumer stops
				}
				chunk = make([]T, 0, size)
			}
		}
		if len(chunk) > 0 {
			yield(chunk)
		}
	}
}
