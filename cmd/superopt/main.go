// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/ezrec/superopt/cpu"
	"github.com/ezrec/superopt/translate"
)

var f = translate.From

var (
	ErrCells    = errors.New(f("cells must be at least 1"))
	ErrNoTarget = errors.New(f("no target given"))
)

func newRootCmd() (root *cobra.Command) {
	var lang string

	root = &cobra.Command{
		Use:           "superopt",
		Short:         "Find a short program that reaches a machine state",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if len(lang) == 0 {
				return nil
			}
			return translate.SetLanguage(lang)
		},
	}

	root.PersistentFlags().StringVar(&lang, "lang", "", "Message language, as a BCP 47 tag; default is the system locale")

	root.AddCommand(newSearchCmd(), newRunCmd())

	return
}

// assemble reads a program for a machine, with every cell index bounded by
// the machine size.
func assemble(path string, vm *cpu.Cpu, verbose bool) (prog cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	bounds := vm.Bounds(math.MaxInt)
	asm := &cpu.Assembler{Verbose: verbose, Bounds: &bounds}
	asm.Predefine("CELLS", strconv.Itoa(vm.Cells()))

	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	return
}

// parseTarget parses a comma separated list of cell values.
func parseTarget(text string) (target []int, err error) {
	target = []int{}
	if len(strings.TrimSpace(text)) == 0 {
		return
	}

	for _, word := range strings.Split(text, ",") {
		var value int
		value, err = strconv.Atoi(strings.TrimSpace(word))
		if err != nil {
			target = nil
			return
		}
		target = append(target, value)
	}

	return
}

// dumpMetrics writes the default registry in the text exposition format.
func dumpMetrics(output io.Writer) (err error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return
	}

	enc := expfmt.NewEncoder(output, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		err = enc.Encode(family)
		if err != nil {
			return
		}
	}

	return
}

func main() {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, f("%v: %v", root.Name(), err))
		os.Exit(1)
	}
}
