// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package search

import (
	"context"
	"errors"
	"log"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/superopt/cpu"
	"github.com/ezrec/superopt/emulator"
	"github.com/ezrec/superopt/space"
)

const (
	POLL_INTERVAL   = 4096   // Default candidates between stop flag checks.
	PROGRESS_REPORT = 100000 // Candidates between verbose progress reports.
)

// Result of a search that did not fail.
type Result struct {
	Program    cpu.Program   // Matching program, if Outcome is OUTCOME_FOUND.
	Outcome    Outcome       // How the search ended.
	Candidates int64         // Candidate programs tested.
	Elapsed    time.Duration // Wall-clock time of the search.
}

// Found returns true if a program was found.
func (res Result) Found() bool {
	return res.Outcome == OUTCOME_FOUND
}

// Searcher searches the program space for a program that reaches a target.
//
// The zero value is ready to use.
type Searcher struct {
	Verbose      bool          // If set, enables verbose logging.
	Workers      int           // Concurrent workers; 0 is GOMAXPROCS.
	PollInterval int           // Candidates between stop checks; 0 is POLL_INTERVAL.
	Timeout      time.Duration // Overall deadline; 0 is none.
	Strategy     Strategy      // Length scheduling.

	OnCandidate func(length int)        // If set, called before each candidate is tested.
	OnPublish   func(prog cpu.Program) // If set, called once the result is published.

	universe func(b cpu.Bounds) []cpu.Instruction
}

// task is a slice of one program length's space, run by a single worker.
type task struct {
	length int
	lo, hi uint64
	whole  bool
}

// race is the state shared by the workers of one dispatch.
type race struct {
	stop   atomic.Bool      // Cooperative cancellation flag.
	result chan cpu.Program // Single slot; first writer wins.
	count  atomic.Int64     // Candidates tested.
	done   atomic.Int64     // Tasks that tested every candidate.
}

// Search finds a program with a default Searcher.
func Search(ctx context.Context, cfg Config, target []int) (Result, error) {
	return (&Searcher{}).Search(ctx, cfg, target)
}

func (s *Searcher) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (s *Searcher) pollInterval() int {
	if s.PollInterval > 0 {
		return s.PollInterval
	}
	return POLL_INTERVAL
}

// Search finds a program of at most cfg.MaxInstructionsLength instructions
// that, run from an all-zero state, leaves the leading cells equal to target.
//
// Exhausting the space, reaching the Timeout and cancellation of ctx are
// reported in the Result outcome. An error is returned only for an invalid
// configuration or target, which is detected before any worker starts, or
// for a worker fault, which aborts the whole search.
//
// With STRATEGY_RACE the returned program is the first found by any length,
// and is not guaranteed to be the shortest.
func (s *Searcher) Search(ctx context.Context, cfg Config, target []int) (res Result, err error) {
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		label := res.Outcome.String()
		if err != nil {
			label = OUTCOME_FAILED_LABEL
		}
		searchesTotal.WithLabelValues(label).Inc()
		searchDuration.Observe(res.Elapsed.Seconds())
	}()

	err = cfg.Validate()
	if err != nil {
		return
	}

	_, err = emulator.NewEmulator(uint(cfg.MaxMemoryCells), target)
	if err != nil {
		err = errors.Join(ErrConfig, ErrTarget, err)
		return
	}

	bounds := cfg.Bounds()
	universe := space.Universe
	if s.universe != nil {
		universe = s.universe
	}
	instructions := universe(bounds)

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	if s.Verbose {
		log.Printf("search: %v, %d instructions, lengths 1..%d, target %v",
			s.Strategy, len(instructions), cfg.MaxInstructionsLength, target)
	}

	var prog cpu.Program
	var count int64
	var complete bool

	switch s.Strategy {
	case STRATEGY_SHORTEST:
		for length := 1; length <= cfg.MaxInstructionsLength; length++ {
			sp := &space.Space{Universe: instructions, Length: length}
			var tasks []task
			ranges, splitErr := sp.Split(s.workers())
			if splitErr != nil {
				tasks = []task{{length: length, whole: true}}
			} else {
				for _, r := range ranges {
					tasks = append(tasks, task{length: length, lo: r[0], hi: r[1]})
				}
			}

			var n int64
			prog, n, complete, err = s.dispatch(ctx, cfg, target, instructions, tasks)
			count += n
			if err != nil || prog != nil || !complete {
				break
			}
		}
	default:
		tasks := make([]task, cfg.MaxInstructionsLength)
		for n := range tasks {
			tasks[n] = task{length: n + 1, whole: true}
		}
		prog, count, complete, err = s.dispatch(ctx, cfg, target, instructions, tasks)
	}

	res.Candidates = count
	if err != nil {
		return
	}

	// A deadline or cancel that arrives after every task ran to the end
	// does not change an exhausted search.
	switch {
	case prog != nil:
		res.Outcome = OUTCOME_FOUND
		res.Program = prog
	case complete:
		res.Outcome = OUTCOME_EXHAUSTED
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Outcome = OUTCOME_TIMEOUT
	case ctx.Err() != nil:
		res.Outcome = OUTCOME_CANCELED
	default:
		res.Outcome = OUTCOME_EXHAUSTED
	}

	if s.Verbose {
		log.Printf("search: %v after %d candidates", res.Outcome, res.Candidates)
	}

	return
}

// dispatch runs the tasks on a bounded pool of workers, and returns the
// first published program, if any. complete is set when every task tested
// all of its candidates.
func (s *Searcher) dispatch(ctx context.Context, cfg Config, target []int, instructions []cpu.Instruction, tasks []task) (prog cpu.Program, count int64, complete bool, err error) {
	r := &race{
		result: make(chan cpu.Program, 1),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())

	// Deadline, caller cancellation or a worker fault stop every worker.
	// gctx is always cancelled once Wait returns.
	go func() {
		<-gctx.Done()
		r.stop.Store(true)
	}()

	for _, t := range tasks {
		if r.stop.Load() {
			break
		}
		g.Go(func() (err error) {
			emu, err := emulator.NewEmulator(uint(cfg.MaxMemoryCells), target)
			if err != nil {
				return
			}

			sp := &space.Space{Universe: instructions, Length: t.length}

			workersActive.Inc()
			defer workersActive.Dec()

			return s.work(r, emu, sp, t)
		})
	}

	err = g.Wait()

	select {
	case prog = <-r.result:
	default:
	}

	count = r.count.Load()
	complete = prog == nil && r.done.Load() == int64(len(tasks))

	return
}

// work tests every candidate of the task, until a match is found or the
// stop flag is seen.
func (s *Searcher) work(r *race, emu *emulator.Emulator, sp *space.Space, t task) (err error) {
	var prog cpu.Program
	var pending int

	counter := candidatesTotal.WithLabelValues(strconv.Itoa(t.length))
	flush := func() {
		r.count.Add(int64(pending))
		counter.Add(float64(pending))
		pending = 0
	}

	defer func() {
		flush()
		if rec := recover(); rec != nil {
			r.stop.Store(true)
			err = &ErrWorker{Length: t.length, Err: emulator.NewErrRuntime(prog, rec)}
		}
	}()

	if r.stop.Load() {
		return
	}

	seq := sp.All()
	if !t.whole {
		seq = sp.Range(t.lo, t.hi)
	}

	poll := s.pollInterval()
	var tested int

	for prog = range seq {
		if pending == poll {
			flush()
			if r.stop.Load() {
				if s.Verbose {
					log.Printf("search: length %d stopped after %d candidates", t.length, tested)
				}
				return
			}
		}

		if s.OnCandidate != nil {
			s.OnCandidate(t.length)
		}

		pending++
		tested++

		if emu.Test(prog) {
			if s.Verbose {
				log.Printf("search: length %d found after %d candidates", t.length, tested)
			}
			s.publish(r, prog)
			return
		}

		if s.Verbose && tested%PROGRESS_REPORT == 0 {
			log.Printf("search: length %d: programs generated: %d", t.length, tested)
		}
	}

	r.done.Add(1)

	if s.Verbose {
		log.Printf("search: length %d exhausted after %d candidates", t.length, tested)
	}

	return
}

// publish offers a matching program to the result slot. Only the first
// offer of a dispatch is accepted; it stops every other worker.
func (s *Searcher) publish(r *race, prog cpu.Program) (ok bool) {
	if r.stop.Load() {
		return
	}

	select {
	case r.result <- prog.Clone():
		ok = true
	default:
		return
	}

	r.stop.Store(true)

	if s.OnPublish != nil {
		s.OnPublish(prog.Clone())
	}

	return
}
