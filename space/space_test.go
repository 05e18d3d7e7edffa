package space

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/superopt/cpu"
)

func TestUniverse(t *testing.T) {
	assert := assert.New(t)

	b := cpu.Bounds{Cells: 2, Values: 2}

	expected := []cpu.Instruction{
		cpu.Load(0), cpu.Load(1),
		cpu.Swap(0, 0), cpu.Swap(0, 1), cpu.Swap(1, 0), cpu.Swap(1, 1),
		cpu.Xor(0, 0), cpu.Xor(0, 1), cpu.Xor(1, 0), cpu.Xor(1, 1),
		cpu.Inc(0), cpu.Inc(1),
	}

	assert.Equal(expected, Universe(b))
}

func TestUniverseSize(t *testing.T) {
	assert := assert.New(t)

	for cells := 1; cells <= 5; cells++ {
		for values := 1; values <= 6; values++ {
			b := cpu.Bounds{Cells: cells, Values: values}
			universe := Universe(b)

			expected := values + 2*cells*cells + cells
			assert.Equal(expected, len(universe), "%+v", b)
			assert.Equal(expected, Size(b), "%+v", b)

			seen := map[cpu.Instruction]bool{}
			for _, ins := range universe {
				assert.NoError(b.Check(ins), ins.String())
				assert.False(seen[ins], ins.String())
				seen[ins] = true
			}
		}
	}
}

func TestSpaceExhaustive(t *testing.T) {
	assert := assert.New(t)

	b := cpu.Bounds{Cells: 2, Values: 1}
	size := uint64(Size(b))
	assert.Equal(uint64(11), size)

	expected := uint64(1)
	for length := 1; length <= 3; length++ {
		expected *= size

		sp := New(b, length)
		count, err := sp.Count()
		assert.NoError(err)
		assert.Equal(expected, count)

		seen := make(map[uint64]bool, count)
		var visited uint64
		for prog := range sp.All() {
			assert.Equal(length, len(prog))
			index, ok := sp.Index(prog)
			assert.True(ok)
			assert.Equal(visited, index)
			assert.False(seen[index])
			seen[index] = true
			visited++
		}
		assert.Equal(count, visited)
		assert.Equal(int(count), len(seen))
	}
}

func TestSpaceDeterministic(t *testing.T) {
	assert := assert.New(t)

	sp := New(cpu.Bounds{Cells: 2, Values: 2}, 2)

	var first, second []cpu.Program
	for prog := range sp.All() {
		first = append(first, prog.Clone())
	}
	for prog := range sp.All() {
		second = append(second, prog.Clone())
	}

	assert.Equal(first, second)
	assert.Equal(cpu.Program{cpu.Load(0), cpu.Load(0)}, first[0])
	assert.Equal(cpu.Program{cpu.Load(0), cpu.Load(1)}, first[1])
	assert.Equal(cpu.Program{cpu.Inc(1), cpu.Inc(1)}, first[len(first)-1])
}

func TestSpaceRange(t *testing.T) {
	assert := assert.New(t)

	sp := New(cpu.Bounds{Cells: 2, Values: 3}, 2)

	var all []cpu.Program
	for prog := range sp.All() {
		all = append(all, prog.Clone())
	}

	for parts := 1; parts <= 9; parts++ {
		ranges, err := sp.Split(parts)
		assert.NoError(err)
		assert.LessOrEqual(len(ranges), parts)

		var joined []cpu.Program
		for _, r := range ranges {
			for prog := range sp.Range(r[0], r[1]) {
				joined = append(joined, prog.Clone())
			}
		}
		assert.Equal(all, joined, "parts %d", parts)
	}

	var count int
	for range sp.Range(uint64(len(all))-2, uint64(len(all))+10) {
		count++
	}
	assert.Equal(2, count)

	for range sp.Range(5, 5) {
		assert.Fail("empty range")
	}

	_, err := sp.Split(0)
	assert.ErrorIs(err, ErrSpaceRange)
}

func TestSpaceAt(t *testing.T) {
	assert := assert.New(t)

	sp := New(cpu.Bounds{Cells: 3, Values: 2}, 3)
	count, err := sp.Count()
	assert.NoError(err)

	for _, index := range []uint64{0, 1, 17, count / 2, count - 1} {
		prog, err := sp.At(index)
		assert.NoError(err)
		back, ok := sp.Index(prog)
		assert.True(ok)
		assert.Equal(index, back)
	}

	_, err = sp.At(count)
	assert.ErrorIs(err, ErrSpaceRange)

	_, ok := sp.Index(cpu.Program{cpu.Load(0)})
	assert.False(ok)

	_, ok = sp.Index(cpu.Program{cpu.Load(0), cpu.Load(0), cpu.Inc(7)})
	assert.False(ok)
}

func TestSpaceTooLarge(t *testing.T) {
	assert := assert.New(t)

	sp := New(cpu.Bounds{Cells: 4, Values: 4}, 40)
	_, err := sp.Count()
	assert.ErrorIs(err, ErrSpaceTooLarge)

	_, err = sp.Split(4)
	assert.ErrorIs(err, ErrSpaceTooLarge)

	prog, err := sp.At(1 << 63)
	assert.NoError(err)
	assert.Equal(40, len(prog))

	var ranged int
	for range sp.Range(1<<63, 1<<63+10) {
		ranged++
	}
	assert.Equal(10, ranged)

	// Lazy iteration still works.
	var count int
	for range sp.All() {
		count++
		if count == 100 {
			break
		}
	}
	assert.Equal(100, count)
}

func TestSpaceEmpty(t *testing.T) {
	assert := assert.New(t)

	sp := New(cpu.Bounds{Cells: 1, Values: 1}, 0)
	count, err := sp.Count()
	assert.NoError(err)
	assert.Equal(uint64(0), count)

	for range sp.All() {
		assert.Fail("no programs of length 0")
	}
}
