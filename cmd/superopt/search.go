package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezrec/superopt/cpu"
	"github.com/ezrec/superopt/search"
)

type searchOptions struct {
	cfg      search.Config
	target   string
	from     string
	config   string
	timeout  time.Duration
	strategy string
	workers  int
	poll     int
	verbose  bool
	metrics  bool
}

func newSearchCmd() (cmd *cobra.Command) {
	opts := &searchOptions{}

	cmd = &cobra.Command{
		Use:   "search",
		Short: "Search for a short program that reaches a target state",
		Long: `Search enumerates every program up to a maximum length, and reports
one that drives the machine from all-zero memory to the target state.
The default race strategy reports the first program found, which may not
be the shortest; --strategy shortest guarantees a minimal length.

The target is given directly with --target, or as the final state of an
assembly program with --from. A YAML request file given with --config sets
defaults for every other flag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.cfg.MaxInstructionsLength, "length", "l", 4, "Maximum program length")
	flags.IntVarP(&opts.cfg.MaxMemoryCells, "cells", "m", 6, "Memory cells")
	flags.IntVarP(&opts.cfg.MaxValue, "values", "v", 5, "Number of LOAD values")
	flags.StringVarP(&opts.target, "target", "t", "", "Target state, as comma separated cell values")
	flags.StringVarP(&opts.from, "from", "f", "", "Assembly program whose final state is the target")
	flags.StringVarP(&opts.config, "config", "c", "", "YAML search request")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Search deadline; 0 is none")
	flags.StringVar(&opts.strategy, "strategy", search.STRATEGY_RACE.String(), "Length scheduling: race or shortest")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "Concurrent workers; 0 is one per CPU")
	flags.IntVar(&opts.poll, "poll", 0, "Candidates between cancellation checks; 0 is the default")
	flags.BoolVarP(&opts.verbose, "verbose", "V", false, "Verbose mode")
	flags.BoolVar(&opts.metrics, "metrics", false, "Dump metrics to stderr when done")

	return
}

// request merges the request file, if any, with the flags that were set.
func (opts *searchOptions) request(cmd *cobra.Command) (req *search.Request, err error) {
	req = &search.Request{Config: opts.cfg}

	if len(opts.config) != 0 {
		var inf *os.File
		inf, err = os.Open(opts.config)
		if err != nil {
			return
		}
		defer inf.Close()

		req, err = search.LoadRequest(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.config, err)
			return
		}
	}

	flags := cmd.Flags()
	if flags.Changed("length") {
		req.MaxInstructionsLength = opts.cfg.MaxInstructionsLength
	}
	if flags.Changed("cells") {
		req.MaxMemoryCells = opts.cfg.MaxMemoryCells
	}
	if flags.Changed("values") {
		req.MaxValue = opts.cfg.MaxValue
	}
	if flags.Changed("target") {
		req.Target, err = parseTarget(opts.target)
		if err != nil {
			return
		}
	}
	if flags.Changed("timeout") {
		req.Timeout = opts.timeout
	}
	if flags.Changed("strategy") || len(req.Strategy) == 0 {
		req.Strategy = opts.strategy
	}
	if flags.Changed("workers") {
		req.Workers = opts.workers
	}
	if flags.Changed("poll") {
		req.Poll = opts.poll
	}

	return
}

func runSearch(cmd *cobra.Command, opts *searchOptions) (err error) {
	out := cmd.OutOrStdout()

	req, err := opts.request(cmd)
	if err != nil {
		return
	}

	if len(opts.from) != 0 {
		if req.MaxMemoryCells < 1 {
			return ErrCells
		}

		vm := cpu.NewCpu(uint(req.MaxMemoryCells))

		var prog cpu.Program
		prog, err = assemble(opts.from, vm, opts.verbose)
		if err != nil {
			return
		}

		fmt.Fprintln(out, f("Assembly program:"))
		fmt.Fprintln(out, prog.String())

		vm.Run(prog)
		req.Target = vm.State
	}

	if req.Target == nil {
		return ErrNoTarget
	}

	err = req.Validate()
	if err != nil {
		return
	}

	searcher := &search.Searcher{Verbose: opts.verbose}
	err = req.Apply(searcher)
	if err != nil {
		return
	}

	if opts.metrics {
		defer func() {
			metricsErr := dumpMetrics(cmd.ErrOrStderr())
			if err == nil {
				err = metricsErr
			}
		}()
	}

	fmt.Fprintln(out, f("Target state: %v", req.Target))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	res, err := searcher.Search(ctx, req.Config, req.Target)
	if err != nil {
		return
	}

	fmt.Fprintln(out, f("Execution duration: %v", res.Elapsed))
	fmt.Fprintln(out, f("Candidates tested: %d", res.Candidates))

	switch res.Outcome {
	case search.OUTCOME_FOUND:
		fmt.Fprintln(out, f("Superoptimized program:"))
		fmt.Fprintln(out, res.Program.String())
	case search.OUTCOME_TIMEOUT:
		fmt.Fprintln(out, f("Search timed out"))
	case search.OUTCOME_CANCELED:
		fmt.Fprintln(out, f("Search canceled"))
	default:
		fmt.Fprintln(out, f("No superoptimized program found"))
	}

	return
}
