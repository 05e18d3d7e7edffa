package cpu

import (
	"errors"

	"github.com/ezrec/superopt/translate"
)

var f = translate.From

var (
	// Instruction errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrArgSyntax       = errors.New(f("argument list syntax"))
)

type ErrArgRange struct {
	Ins   Instruction
	Index int
	Kind  ArgKind
	Limit int
}

func (err *ErrArgRange) Error() string {
	return f("%v argument %d (%v) %d out of range [0, %d)",
		err.Ins.Op, err.Index+1, err.Kind, err.Ins.Arg[err.Index], err.Limit)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
