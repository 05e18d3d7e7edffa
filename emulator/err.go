package emulator

import (
	"errors"
	"fmt"

	"github.com/ezrec/superopt/cpu"
	"github.com/ezrec/superopt/translate"
)

var f = translate.From

var (
	ErrTargetLength = errors.New(f("target longer than memory"))
	ErrTargetValue  = errors.New(f("target value negative"))
)

// ErrRuntime indicates the program that faulted the emulator.
type ErrRuntime struct {
	Program cpu.Program
	Err     error
}

// NewErrRuntime converts a recovered panic into a runtime error.
func NewErrRuntime(prog cpu.Program, recovered any) *ErrRuntime {
	err, ok := recovered.(error)
	if !ok {
		err = errors.New(fmt.Sprint(recovered))
	}

	return &ErrRuntime{Program: prog.Clone(), Err: err}
}

func (err *ErrRuntime) Error() string {
	return f("program [%v] %v", err.Program, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
