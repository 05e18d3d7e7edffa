package cpu

import (
	"slices"
	"strings"
)

// Program is an ordered sequence of instructions.
type Program []Instruction

// Clone returns an independent copy of the program.
func (prog Program) Clone() Program {
	return slices.Clone(prog)
}

// Equal returns true if both programs have identical instructions.
func (prog Program) Equal(other Program) bool {
	return slices.Equal(prog, other)
}

// Check verifies every instruction against the bounds.
func (prog Program) Check(b Bounds) (err error) {
	for n, ins := range prog {
		err = b.Check(ins)
		if err != nil {
			err = &ErrSyntax{LineNo: n + 1, Line: ins.String(), Err: err}
			return
		}
	}

	return
}

// String returns the assembly listing, one instruction per line.
func (prog Program) String() string {
	lines := make([]string, len(prog))
	for n, ins := range prog {
		lines[n] = ins.String()
	}

	return strings.Join(lines, "\n")
}
