package search

import (
	"errors"

	"github.com/ezrec/superopt/translate"
)

var f = translate.From

var (
	ErrConfig      = errors.New(f("configuration invalid"))
	ErrTarget      = errors.New(f("target invalid"))
	ErrStrategy    = errors.New(f("strategy unknown"))
	ErrWorkerFault = errors.New(f("worker fault"))
)

// ErrWorker is an unrecoverable fault in the worker for a program length.
type ErrWorker struct {
	Length int
	Err    error
}

func (err *ErrWorker) Error() string {
	return f("worker length %d: %v", err.Length, err.Err)
}

func (err *ErrWorker) Unwrap() []error {
	return []error{ErrWorkerFault, err.Err}
}
