package runparity

import "fmt"

// Obfuscate breaks every qualifying run after the first afterCount ones so
// that a decoder stops right after them.
//
// A run is broken by flipping the bit at start+len/2. The scan then restarts
// at the start of that run: the flip may leave a piece that still qualifies.
// Bits up to and including the start of the first broken run never change.
func Obfuscate(bits []bool, afterCount, m int) error {
	if err := validMinRun(m); err != nil {
		return err
	}
	if afterCount < 0 {
		return fmt.Errorf("%w: negative run count %d", ErrInvalidArgument, afterCount)
	}
	if m == 1 {
		return absorbTail(bits, afterCount)
	}
	var seen int
	for i := 0; i < len(bits); {
		r := runAt(bits, i)
		if r.Len() < m {
			i = r.End + 1
			continue
		}
		if seen < afterCount {
			seen++
			i = r.End + 1
			continue
		}
		mid := r.Start + r.Len()/2
		bits[mid] = !bits[mid]
		i = r.Start
	}
	return nil
}

// BreakAll breaks every qualifying run of bits. It sanitizes a carrier that
// should decode to nothing.
func BreakAll(bits []bool, m int) error {
	return Obfuscate(bits, 0, m)
}

// absorbTail handles m == 1, where every run qualifies and none can be broken.
// The bits after the last kept run are merged into it, which keeps its parity
// only for an even number of bits.
func absorbTail(bits []bool, afterCount int) error {
	if afterCount == 0 {
		if len(bits) == 0 {
			return nil
		}
		return fmt.Errorf("%w: every run qualifies with minimum run length 1", ErrInvalidArgument)
	}
	last, ok := seek(bits, 1, 0, afterCount-1)
	if !ok || last.End == len(bits)-1 {
		return nil
	}
	tail := bits[last.End+1:]
	if len(tail)%2 == 1 {
		return &CapacityError{Unit: "bits", Need: len(bits) + 1, Have: len(bits)}
	}
	for i := range tail {
		tail[i] = last.Value
	}
	return nil
}
