package internal

import (
	"iter"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Odometer iterates every digit tuple of a mixed-radix number, from all
// zeros upwards. The last position varies fastest.
//
// Each iteration restarts from zero. The yielded slice is reused between
// steps. No radix yields a single empty tuple; any zero radix yields nothing.
func Odometer(radix []int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		for _, r := range radix {
			if r <= 0 {
				return
			}
		}

		digit := make([]int, len(radix))
		for {
			if !yield(digit) {
				return
			}

			pos := len(radix) - 1
			for ; pos >= 0; pos-- {
				digit[pos]++
				if digit[pos] < radix[pos] {
					break
				}
				digit[pos] = 0
			}
			if pos < 0 {
				return
			}
		}
	}
}

// Product returns the ordered cartesian power of elems, with repetition.
//
// Each iteration restarts from the first tuple. The yielded slice is reused
// between steps; callers that retain a tuple must clone it. Position 0 varies
// slowest.
func Product[T any](elems []T, times int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if times < 0 {
			return
		}

		radix := make([]int, times)
		for n := range radix {
			radix[n] = len(elems)
		}

		tuple := make([]T, times)
		for digit := range Odometer(radix) {
			for n, d := range digit {
				tuple[n] = elems[d]
			}
			if !yield(tuple) {
				return
			}
		}
	}
}
