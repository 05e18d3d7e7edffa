package cpu

import (
	"errors"
	"fmt"
)

// OpCode is an instruction operation.
type OpCode int

//go:generate go tool stringer -linecomment -type=OpCode
const (
	OP_LOAD = OpCode(0) // LOAD
	OP_SWAP = OpCode(1) // SWAP
	OP_XOR  = OpCode(2) // XOR
	OP_INC  = OpCode(3) // INC
)

// ArgKind is the domain of an instruction argument.
type ArgKind int

//go:generate go tool stringer -linecomment -type=ArgKind
const (
	ARG_VALUE = ArgKind(0) // value
	ARG_CELL  = ArgKind(1) // cell
)

// MAX_ARGS is the largest argument count of any opcode.
const MAX_ARGS = 2

// OpInfo describes one opcode of the instruction set.
type OpInfo struct {
	Op   OpCode
	Args []ArgKind

	exec func(state []int, arg [MAX_ARGS]int)
}

// opInfo is the instruction set. The VM, the assembler and the program
// space enumeration all read it, so adding an opcode here is sufficient.
var opInfo = [...]OpInfo{
	OP_LOAD: {
		Op:   OP_LOAD,
		Args: []ArgKind{ARG_VALUE},
		exec: func(state []int, arg [MAX_ARGS]int) {
			state[0] = arg[0]
		},
	},
	OP_SWAP: {
		Op:   OP_SWAP,
		Args: []ArgKind{ARG_CELL, ARG_CELL},
		exec: func(state []int, arg [MAX_ARGS]int) {
			state[arg[0]], state[arg[1]] = state[arg[1]], state[arg[0]]
		},
	},
	OP_XOR: {
		Op:   OP_XOR,
		Args: []ArgKind{ARG_CELL, ARG_CELL},
		exec: func(state []int, arg [MAX_ARGS]int) {
			state[arg[0]] ^= state[arg[1]]
		},
	},
	OP_INC: {
		Op:   OP_INC,
		Args: []ArgKind{ARG_CELL},
		exec: func(state []int, arg [MAX_ARGS]int) {
			state[arg[0]]++
		},
	},
}

// OpCodes returns the descriptors of every opcode, in opcode order.
func OpCodes() []OpInfo {
	return opInfo[:]
}

// Info returns the descriptor of the opcode.
func (op OpCode) Info() (info OpInfo, ok bool) {
	if op < 0 || int(op) >= len(opInfo) {
		return
	}

	return opInfo[op], true
}

// Instruction is a single decoded instruction. Unused arguments are zero.
type Instruction struct {
	Op  OpCode
	Arg [MAX_ARGS]int
}

// Load creates a LOAD instruction. Arguments are not checked.
func Load(value int) Instruction {
	return Instruction{Op: OP_LOAD, Arg: [MAX_ARGS]int{value}}
}

// Swap creates a SWAP instruction. Arguments are not checked.
func Swap(a, b int) Instruction {
	return Instruction{Op: OP_SWAP, Arg: [MAX_ARGS]int{a, b}}
}

// Xor creates a XOR instruction. Arguments are not checked.
func Xor(a, b int) Instruction {
	return Instruction{Op: OP_XOR, Arg: [MAX_ARGS]int{a, b}}
}

// Inc creates an INC instruction. Arguments are not checked.
func Inc(cell int) Instruction {
	return Instruction{Op: OP_INC, Arg: [MAX_ARGS]int{cell}}
}

// Args returns the arguments used by the instruction's opcode.
func (ins Instruction) Args() []int {
	info, ok := ins.Op.Info()
	if !ok {
		return nil
	}

	return ins.Arg[:len(info.Args)]
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() (out string) {
	out = ins.Op.String()
	for n, arg := range ins.Args() {
		if n == 0 {
			out += " "
		} else {
			out += ", "
		}
		out += fmt.Sprintf("%d", arg)
	}

	return
}

// Bounds are the argument domains for instructions.
type Bounds struct {
	Cells  int // Memory cells; cell arguments are in [0, Cells).
	Values int // Load values are in [0, Values).
}

// Domain returns the exclusive upper bound for an argument kind.
func (b Bounds) Domain(kind ArgKind) int {
	switch kind {
	case ARG_VALUE:
		return b.Values
	case ARG_CELL:
		return b.Cells
	}

	return 0
}

// Check verifies that the instruction is valid within the bounds.
func (b Bounds) Check(ins Instruction) (err error) {
	info, ok := ins.Op.Info()
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	for n, kind := range info.Args {
		arg := ins.Arg[n]
		if arg < 0 || arg >= b.Domain(kind) {
			err = &ErrArgRange{Ins: ins, Index: n, Kind: kind, Limit: b.Domain(kind)}
			return
		}
	}

	for n := len(info.Args); n < MAX_ARGS; n++ {
		if ins.Arg[n] != 0 {
			err = errors.Join(ErrInstructionInvalid, ErrOpcodeExtraArgs)
			return
		}
	}

	return
}

// Make creates a checked instruction.
func (b Bounds) Make(op OpCode, args ...int) (ins Instruction, err error) {
	info, ok := op.Info()
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	switch {
	case len(args) < len(info.Args):
		err = ErrOpcodeValueMissing
		return
	case len(args) > len(info.Args):
		err = ErrOpcodeExtraArgs
		return
	}

	ins.Op = op
	copy(ins.Arg[:], args)

	err = b.Check(ins)
	if err != nil {
		ins = Instruction{}
	}

	return
}
