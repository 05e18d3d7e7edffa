package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog))
	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssemblerParse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"LOAD 0",
		"SWAP 1, 2",
		"XOR 3,4",
		"INC 5",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(Program{Load(0), Swap(1, 2), Xor(3, 4), Inc(5)}, prog)
}

func TestAssemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	text := "LOAD 0\nSWAP 1, 2\nXOR 3, 4\nINC 5"
	prog, err := asm.Parse(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal(text, prog.String())

	again, err := asm.Parse(strings.NewReader(prog.String()))
	assert.NoError(err)
	assert.True(again.Equal(prog))
}

func TestAssemblerComments(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		"  load 2 ; set cell 0",
		"",
		"; this does not count as an instruction.",
		"inc 1",
		"LOAD 0x10",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(Program{Load(2), Inc(1), Load(16)}, prog)
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("CELLS", "4")

	program := []string{
		".equ N 3",
		"LOAD N",
		"SWAP $(N - 2), $(N - 3)",
		"INC $(LINENO)",
		"XOR $(CELLS - 1), N",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(Program{Load(3), Swap(1, 0), Inc(4), Xor(3, 3)}, prog)
	assert.Equal("3", asm.Equate["N"])
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		lineno int
		err    error
	}){
		{"invalid_op", "LOAD 0\nSWAP 1, 2\nXOR 3, 4\nINVALID 1\nINC 5", 4, ErrOpcodeInvalid},
		{"no_args", "INC", 1, ErrOpcodeValueMissing},
		{"extra_args", "LOAD 1, 2", 1, ErrOpcodeExtraArgs},
		{"missing_arg", "SWAP 1", 1, ErrOpcodeValueMissing},
		{"arg_syntax", "SWAP 1 2", 1, ErrArgSyntax},
		{"arg_empty", "XOR 1,,2", 1, ErrArgSyntax},
		{"equ_syntax", ".equ X", 1, ErrEquateSyntax},
		{"equ_duplicate", ".equ X 1\n.equ X 2", 2, ErrEquateDuplicate},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.text))
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var syn *ErrSyntax
		if assert.ErrorAs(err, &syn, entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
		}
	}
}

func TestAssemblerNumbers(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("LOAD -1"))
	var num ErrParseNumber
	assert.ErrorAs(err, &num)
	assert.Equal(ErrParseNumber("-1"), num)

	_, err = asm.Parse(strings.NewReader("INC cell"))
	assert.ErrorAs(err, &num)

	_, err = asm.Parse(strings.NewReader("LOAD $(1 +)"))
	assert.Error(err)

	_, err = asm.Parse(strings.NewReader("LOAD $(\"x\")"))
	var expr ErrParseExpression
	assert.ErrorAs(err, &expr)
}

func TestAssemblerBounds(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Bounds: &Bounds{Cells: 2, Values: 2}}

	prog, err := asm.Parse(strings.NewReader("LOAD 1\nSWAP 0, 1"))
	assert.NoError(err)
	assert.Equal(Program{Load(1), Swap(0, 1)}, prog)

	for _, text := range []string{"LOAD 2", "SWAP 0, 2", "INC 3"} {
		_, err = asm.Parse(strings.NewReader(text))
		var rng *ErrArgRange
		assert.ErrorAs(err, &rng, text)
	}
}
