package runparity

import "iter"

// Decode reads one bit per qualifying run: true for an odd length, false for
// an even one. The result has as many bits as the carrier has qualifying runs.
func Decode(bits []bool, m int) ([]bool, error) {
	seq, err := Parities(bits, m)
	if err != nil {
		return nil, err
	}
	out := make([]bool, 0)
	for p := range seq {
		out = append(out, p)
	}
	return out, nil
}

// Parities is the lazy form of Decode. Each range over the returned sequence
// starts a fresh scan of bits.
func Parities(bits []bool, m int) (iter.Seq[bool], error) {
	if err := validMinRun(m); err != nil {
		return nil, err
	}
	return func(yield func(bool) bool) {
		s := &Scanner{bits: bits, m: m}
		for s.Scan() {
			if !yield(s.Run().Parity()) {
				return
			}
		}
	}, nil
}
