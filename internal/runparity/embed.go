package runparity

import (
	"fmt"
	"slices"
)

// maxEditsPerBit bounds the edits spent on one run. An extension that merges
// into a neighbouring run is followed by at most one shortening.
const maxEditsPerBit = 3

// Embed writes msg into carrier in place so that Decode(carrier, m) equals msg.
//
// Each message bit is encoded into the next qualifying run, changing at most
// a couple of bits next to it when its parity is wrong. Qualifying runs after
// the message are broken with Obfuscate. When the carrier's runs cannot be
// reused the remainder of the message is laid out as fresh minimal runs.
//
// The carrier is left untouched when an error is returned.
func Embed(carrier, msg []bool, m int, strict bool) error {
	if err := CheckCapacity(carrier, msg, m, strict); err != nil {
		return err
	}
	work := slices.Clone(carrier)
	if len(msg) == 0 {
		if err := Obfuscate(work, 0, m); err != nil {
			return err
		}
		copy(carrier, work)
		return nil
	}
	e := &embedder{bits: work, msg: msg, m: m}
	if err := e.embed(); err != nil {
		return err
	}
	copy(carrier, work)
	return nil
}

type embedder struct {
	bits []bool
	msg  []bool
	m    int
	// floors[i] is the first index after the run that encodes bit i-1.
	// Nothing before floors[i] is edited while encoding bit i or later.
	floors []int
}

func (e *embedder) embed() error {
	e.floors = make([]int, 0, len(e.msg)+1)
	floor := 0
	for i, bit := range e.msg {
		e.floors = append(e.floors, floor)
		end, ok := e.encodeBit(floor, i > 0, bit)
		if !ok {
			return e.relayout(i)
		}
		floor = end + 1
	}
	e.floors = append(e.floors, floor)
	if err := Obfuscate(e.bits, len(e.msg), e.m); err != nil || !e.verify() {
		return e.relayout(len(e.msg))
	}
	return nil
}

// encodeBit fixes the parity of the first qualifying run at or after floor
// and returns its end. The carrier is re-scanned after every edit.
func (e *embedder) encodeBit(floor int, hasPrev bool, bit bool) (int, bool) {
	// Flipping floor itself would glue the target onto the previous run.
	lo := 0
	if hasPrev {
		lo = floor + 1
	}
	n := len(e.bits)
	for range maxEditsPerBit + 1 {
		r, found := seek(e.bits, e.m, floor, 0)
		if !found {
			return 0, false
		}
		if r.Parity() == bit {
			return r.End, true
		}
		switch {
		case r.Len() > e.m:
			e.bits[r.End] = !e.bits[r.End]
		case r.End+1 < n:
			e.bits[r.End+1] = r.Value
		case r.Start-1 >= lo:
			e.bits[r.Start-1] = r.Value
		default:
			// No slack and no room on either side.
			return 0, false
		}
	}
	return 0, false
}

// relayout rewrites the carrier from the latest floor that still has room
// for the rest of the message at minimal run lengths. floors[0] is 0, and
// CheckCapacity guarantees the whole message fits there.
func (e *embedder) relayout(from int) error {
	n := len(e.bits)
	for j := from; j >= 0; j-- {
		f := e.floors[j]
		rest := e.msg[j:]
		if n-f < minimumLength(rest, e.m) {
			continue
		}
		e.layout(f, rest)
		if err := Obfuscate(e.bits, len(e.msg), e.m); err != nil {
			continue
		}
		if e.verify() {
			return nil
		}
	}
	need := minimumLength(e.msg, e.m)
	return fmt.Errorf("%w: no layout of %d runs fits", &CapacityError{Unit: "bits", Need: need, Have: n}, len(e.msg))
}

// layout writes rest as alternating minimal runs starting at f and marks the
// end of the last run with an opposite bit.
func (e *embedder) layout(f int, rest []bool) {
	v := e.bits[min(f, len(e.bits)-1)]
	if f > 0 {
		v = !e.bits[f-1]
	}
	pos := f
	for _, bit := range rest {
		l := minRunLen(bit, e.m)
		for k := range l {
			e.bits[pos+k] = v
		}
		pos += l
		v = !v
	}
	if pos < len(e.bits) {
		e.bits[pos] = v
	}
}

func (e *embedder) verify() bool {
	got, err := Decode(e.bits, e.m)
	return err == nil && slices.Equal(got, e.msg)
}
