// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"
	"slices"

	"github.com/ezrec/superopt/cpu"
)

// Emulator decides whether a program reaches the target state.
//
// It owns a private CPU, so it must not be shared between goroutines;
// give each worker its own Emulator.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	Target []int // Target state, compared against the leading cells.
	Trials int   // Programs tested since creation.
}

// NewEmulator creates a new emulator for a memory size and target state.
func NewEmulator(cells uint, target []int) (emu *Emulator, err error) {
	if len(target) > int(cells) {
		err = ErrTargetLength
		return
	}
	for _, val := range target {
		if val < 0 {
			err = ErrTargetValue
			return
		}
	}

	emu = &Emulator{
		Cpu:    cpu.NewCpu(cells),
		Target: slices.Clone(target),
	}

	return
}

// Match returns true if the leading cells of state equal the target.
func (emu *Emulator) Match(state []int) bool {
	if len(state) < len(emu.Target) {
		return false
	}

	return slices.Equal(state[:len(emu.Target)], emu.Target)
}

// Test runs the program on a zeroed CPU, and compares against the target.
//
// Invalid instructions panic; see NewErrRuntime.
func (emu *Emulator) Test(prog cpu.Program) (ok bool) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Trials++

	emu.Cpu.Reset()
	emu.Cpu.Run(prog)

	ok = emu.Match(emu.Cpu.State)
	if emu.Verbose && ok {
		log.Printf("emulator: match %v => %v", prog, emu.Cpu)
	}

	return
}

// Tester returns the emulator's test as a predicate.
func (emu *Emulator) Tester() func(prog cpu.Program) bool {
	return emu.Test
}

// State returns a copy of the state after the last test.
func (emu *Emulator) State() []int {
	return slices.Clone(emu.Cpu.State)
}
