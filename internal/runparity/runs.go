// Package runparity hides a bit sequence in the parity of the maximal runs of
// equal bits of a carrier and reads it back.
//
// A run is qualifying when its length is at least m. The i-th qualifying run
// carries message bit i: an odd length reads as 1, an even length as 0.
// Runs shorter than m are padding and carry nothing.
package runparity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrCapacity        = errors.New("insufficient carrier capacity")
)

// CapacityError reports how much of a resource a carrier lacks.
// Unit is either "bits" (carrier length) or "runs" (qualifying runs).
type CapacityError struct {
	Unit       string
	Need, Have int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: need %d %s, have %d", ErrCapacity, e.Need, e.Unit, e.Have)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }

func validMinRun(m int) error {
	if m <= 0 {
		return fmt.Errorf("%w: minimum run length must be greater than 0, got %d", ErrInvalidArgument, m)
	}
	return nil
}

// Run is a maximal stretch of equal bits. End is inclusive.
type Run struct {
	Start, End int
	Value      bool
}

func (r Run) Len() int { return r.End - r.Start + 1 }

// Parity returns true for an odd length.
func (r Run) Parity() bool { return r.Len()%2 == 1 }

// runAt returns the maximal run that starts at i. i must be a run boundary.
func runAt(bits []bool, i int) Run {
	j := i
	for j+1 < len(bits) && bits[j+1] == bits[i] {
		j++
	}
	return Run{Start: i, End: j, Value: bits[i]}
}

// Scanner walks the qualifying runs of a carrier from left to right.
// It reads the carrier on every step, so edits made behind the scan position
// are never seen and edits ahead of it always are.
type Scanner struct {
	bits []bool
	m    int
	pos  int
	run  Run
}

func NewScanner(bits []bool, m int) (*Scanner, error) {
	if err := validMinRun(m); err != nil {
		return nil, err
	}
	return &Scanner{bits: bits, m: m}, nil
}

// Scan advances to the next qualifying run and reports whether there was one.
func (s *Scanner) Scan() bool {
	for s.pos < len(s.bits) {
		r := runAt(s.bits, s.pos)
		s.pos = r.End + 1
		if r.Len() >= s.m {
			s.run = r
			return true
		}
	}
	return false
}

// Run returns the run found by the last successful Scan.
func (s *Scanner) Run() Run { return s.run }

// Reset restarts the scan at position pos, which must be a run boundary.
func (s *Scanner) Reset(pos int) {
	s.pos = pos
	s.run = Run{}
}

// Runs returns every qualifying run in scan order.
func Runs(bits []bool, m int) ([]Run, error) {
	s, err := NewScanner(bits, m)
	if err != nil {
		return nil, err
	}
	var runs []Run
	for s.Scan() {
		runs = append(runs, s.Run())
	}
	return runs, nil
}

// CountRuns returns the number of qualifying runs without collecting them.
func CountRuns(bits []bool, m int) (int, error) {
	if err := validMinRun(m); err != nil {
		return 0, err
	}
	var count int
	for i := 0; i < len(bits); {
		r := runAt(bits, i)
		if r.Len() >= m {
			count++
		}
		i = r.End + 1
	}
	return count, nil
}

type seekState int

const (
	seekScanning seekState = iota
	seekFoundTarget
	seekDone
)

// seek returns the target-th qualifying run (0-indexed) at or after from.
// The seen counter starts at zero on every call.
func seek(bits []bool, m, from, target int) (Run, bool) {
	var (
		state = seekScanning
		seen  int
		i     = from
		r     Run
	)
	for state == seekScanning {
		if i >= len(bits) {
			state = seekDone
			continue
		}
		r = runAt(bits, i)
		i = r.End + 1
		if r.Len() < m {
			continue
		}
		if seen == target {
			state = seekFoundTarget
			continue
		}
		seen++
	}
	return r, state == seekFoundTarget
}
