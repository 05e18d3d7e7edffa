package cpu

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// decodeProgram turns fuzz bytes into a valid program for the bounds.
func decodeProgram(data []byte, b Bounds) (prog Program) {
	for len(data) >= 3 {
		op := OpCode(int(data[0]) % len(opInfo))
		var args []int
		for n, kind := range opInfo[op].Args {
			args = append(args, int(data[1+n])%b.Domain(kind))
		}
		ins, err := b.Make(op, args...)
		if err != nil {
			panic(err)
		}
		prog = append(prog, ins)
		data = data[3:]
	}
	return
}

func FuzzCpuDeterminism(f *testing.F) {
	f.Add([]byte{}, []byte{0, 0, 0})
	f.Add([]byte{1, 2, 3}, []byte{0, 3, 0, 3, 1, 0, 2, 1, 0})
	f.Add([]byte{0xff, 0x80}, []byte{1, 0, 1, 2, 1, 1, 3, 1, 0})

	f.Fuzz(func(t *testing.T, initial []byte, code []byte) {
		assert := assert.New(t)

		b := Bounds{Cells: 4, Values: 5}
		prog := decodeProgram(code, b)
		assert.NoError(prog.Check(b))

		start := make([]int, b.Cells)
		for n := range min(len(initial), b.Cells) {
			start[n] = int(initial[n])
		}

		a := NewCpu(uint(b.Cells))
		copy(a.State, start)
		a.Run(prog)

		c := NewCpu(uint(b.Cells))
		copy(c.State, start)
		c.Run(prog)

		assert.Equal(a.State, c.State)
		assert.Equal(b.Cells, len(a.State))

		// Running one instruction at a time is the same fold.
		d := NewCpu(uint(b.Cells))
		copy(d.State, start)
		for _, ins := range prog {
			d.Execute(ins)
		}
		assert.True(slices.Equal(a.State, d.State))
	})
}
