// Package search finds a program that drives the machine from an all-zero
// state to a target state.
//
// A Searcher enumerates every program length from one to the configured
// maximum, and tests each candidate against the target with a private
// emulator.Emulator per worker.
//
// With STRATEGY_RACE every length is searched concurrently, and the first
// match in wall-clock time wins. That program is a valid solution, but a
// longer length may finish first, so it is not necessarily the shortest.
// STRATEGY_SHORTEST searches one length at a time, splitting each length
// across the workers, and returns a program of minimal length.
//
// A search moves from dispatch to racing, and ends as found, exhausted,
// timed out, canceled or failed. Only a failure is returned as an error.
package search
