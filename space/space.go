// Package space enumerates the candidate program space of the superoptimizer.
//
// The universe is every instruction valid within a set of bounds. The space
// of programs of length L is the L-fold cartesian power of the universe,
// visited lazily in a fixed order: position 0 varies slowest, and the
// universe is ordered by opcode then by argument tuple.
package space

import (
	"errors"
	"iter"
	"math/bits"

	"github.com/ezrec/superopt/cpu"
	"github.com/ezrec/superopt/internal"
	"github.com/ezrec/superopt/translate"
)

var f = translate.From

var (
	ErrSpaceTooLarge = errors.New(f("program space too large"))
	ErrSpaceRange    = errors.New(f("program space range invalid"))
)

// Instructions returns every instantiation of one opcode within the bounds.
func Instructions(b cpu.Bounds, info cpu.OpInfo) iter.Seq[cpu.Instruction] {
	return func(yield func(cpu.Instruction) bool) {
		radix := make([]int, len(info.Args))
		for n, kind := range info.Args {
			radix[n] = b.Domain(kind)
		}

		for args := range internal.Odometer(radix) {
			ins := cpu.Instruction{Op: info.Op}
			copy(ins.Arg[:], args)
			if !yield(ins) {
				return
			}
		}
	}
}

// Universe returns every instruction valid within the bounds.
func Universe(b cpu.Bounds) (universe []cpu.Instruction) {
	var seqs []iter.Seq[cpu.Instruction]
	for _, info := range cpu.OpCodes() {
		seqs = append(seqs, Instructions(b, info))
	}

	for ins := range internal.IterSeqConcat(seqs...) {
		universe = append(universe, ins)
	}

	return
}

// Size returns the number of instructions in the universe of the bounds.
func Size(b cpu.Bounds) (size int) {
	for _, info := range cpu.OpCodes() {
		count := 1
		for _, kind := range info.Args {
			count *= b.Domain(kind)
		}
		size += count
	}

	return
}

// Space is the set of programs of a single length.
type Space struct {
	Universe []cpu.Instruction // Instructions to draw from.
	Length   int               // Program length.

	index map[cpu.Instruction]int
}

// New creates the program space of a length, within the bounds.
func New(b cpu.Bounds, length int) (sp *Space) {
	sp = &Space{
		Universe: Universe(b),
		Length:   length,
	}

	return
}

// Count returns the number of programs in the space.
func (sp *Space) Count() (count uint64, err error) {
	if sp.Length <= 0 {
		return
	}

	count = 1
	size := uint64(len(sp.Universe))
	for range sp.Length {
		var hi uint64
		hi, count = bits.Mul64(count, size)
		if hi != 0 {
			count = 0
			err = ErrSpaceTooLarge
			return
		}
	}

	return
}

// All iterates every program in the space.
//
// The yielded program is reused between steps; clone it to retain it.
func (sp *Space) All() iter.Seq[cpu.Program] {
	return func(yield func(cpu.Program) bool) {
		if sp.Length <= 0 {
			return
		}
		for tuple := range internal.Product(sp.Universe, sp.Length) {
			if !yield(cpu.Program(tuple)) {
				return
			}
		}
	}
}

// Range iterates the programs with index in [lo, hi).
//
// The yielded program is reused between steps; clone it to retain it.
func (sp *Space) Range(lo, hi uint64) iter.Seq[cpu.Program] {
	return func(yield func(cpu.Program) bool) {
		size := len(sp.Universe)
		if count, err := sp.Count(); err == nil {
			hi = min(hi, count)
		}
		if sp.Length <= 0 || size == 0 || lo >= hi {
			return
		}

		prog, err := sp.At(lo)
		if err != nil {
			return
		}
		digit := sp.digits(lo)

		for index := lo; index < hi; index++ {
			if !yield(prog) {
				return
			}

			pos := sp.Length - 1
			for ; pos >= 0; pos-- {
				digit[pos]++
				if digit[pos] < size {
					prog[pos] = sp.Universe[digit[pos]]
					break
				}
				digit[pos] = 0
				prog[pos] = sp.Universe[0]
			}
			if pos < 0 {
				return
			}
		}
	}
}

// Split divides the space into at most parts contiguous index ranges.
func (sp *Space) Split(parts int) (ranges [][2]uint64, err error) {
	if parts < 1 {
		err = ErrSpaceRange
		return
	}

	count, err := sp.Count()
	if err != nil {
		return
	}

	chunk := count / uint64(parts)
	if count%uint64(parts) != 0 {
		chunk++
	}
	if chunk == 0 {
		return
	}

	for lo := uint64(0); lo < count; lo += chunk {
		hi := lo + chunk
		if hi > count || hi < lo {
			hi = count
		}
		ranges = append(ranges, [2]uint64{lo, hi})
		if hi == count {
			break
		}
	}

	return
}

// At returns the program at an index.
func (sp *Space) At(index uint64) (prog cpu.Program, err error) {
	if sp.Length <= 0 || len(sp.Universe) == 0 {
		err = ErrSpaceRange
		return
	}

	count, err := sp.Count()
	switch {
	case errors.Is(err, ErrSpaceTooLarge):
		// Every index fits.
		err = nil
	case err != nil:
		return
	case index >= count:
		err = ErrSpaceRange
		return
	}

	prog = make(cpu.Program, sp.Length)
	for n, d := range sp.digits(index) {
		prog[n] = sp.Universe[d]
	}

	return
}

// Index returns the index of a program in the space.
// Not safe for concurrent use.
func (sp *Space) Index(prog cpu.Program) (index uint64, ok bool) {
	if len(prog) != sp.Length {
		return
	}

	if sp.index == nil {
		sp.index = make(map[cpu.Instruction]int, len(sp.Universe))
		for n, ins := range sp.Universe {
			sp.index[ins] = n
		}
	}

	size := uint64(len(sp.Universe))
	for _, ins := range prog {
		var d int
		d, ok = sp.index[ins]
		if !ok {
			index = 0
			return
		}
		index = index*size + uint64(d)
	}

	return
}

// digits decodes an index into universe positions, last position fastest.
func (sp *Space) digits(index uint64) (digit []int) {
	digit = make([]int, sp.Length)
	size := uint64(len(sp.Universe))
	for pos := sp.Length - 1; pos >= 0; pos-- {
		digit[pos] = int(index % size)
		index /= size
	}

	return
}
