package cpu

import (
	"fmt"
	"log"
	"strings"
)

// Cpu is the virtual machine: a fixed-size vector of memory cells.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	State []int // Memory cells.

	Ticks int // Instructions executed since the last reset.
}

// NewCpu creates a new CPU with a specific number of memory cells.
func NewCpu(cells uint) (cpu *Cpu) {
	cpu = &Cpu{
		State: make([]int, cells),
	}

	return
}

// Cells returns the number of memory cells.
func (cpu *Cpu) Cells() int {
	return len(cpu.State)
}

// Bounds returns the instruction bounds of this CPU for a maximum load value.
func (cpu *Cpu) Bounds(values int) Bounds {
	return Bounds{Cells: len(cpu.State), Values: values}
}

// Reset zeros the memory cells in place.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.State)
	cpu.Ticks = 0
}

// Execute executes a single instruction.
//
// Arguments are not checked against the memory size; an out of range cell
// is a defect in whatever built the instruction, and panics.
func (cpu *Cpu) Execute(ins Instruction) {
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Ticks, ins)
	}

	opInfo[ins.Op].exec(cpu.State, ins.Arg)

	cpu.Ticks++
}

// Run executes every instruction of the program, in order.
func (cpu *Cpu) Run(prog Program) {
	if cpu.Verbose {
		for _, ins := range prog {
			cpu.Execute(ins)
		}
		return
	}

	// Hot path; no logging.
	state := cpu.State
	for _, ins := range prog {
		opInfo[ins.Op].exec(state, ins.Arg)
	}
	cpu.Ticks += len(prog)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	cells := make([]string, len(cpu.State))
	for n, val := range cpu.State {
		cells[n] = fmt.Sprintf("%d", val)
	}

	return "[" + strings.Join(cells, ", ") + "]"
}
