package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/superopt/cpu"
)

func newRunCmd() (cmd *cobra.Command) {
	var cells int
	var verbose bool

	cmd = &cobra.Command{
		Use:   "run file.asm",
		Short: "Assemble and execute a program, then print the final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if cells < 1 {
				return ErrCells
			}

			vm := cpu.NewCpu(uint(cells))
			prog, err := assemble(args[0], vm, verbose)
			if err != nil {
				return
			}

			vm.Verbose = verbose
			vm.Run(prog)

			fmt.Fprintln(cmd.OutOrStdout(), vm.String())
			return
		},
	}

	cmd.Flags().IntVarP(&cells, "cells", "m", 6, "Memory cells")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Verbose mode")

	return
}
