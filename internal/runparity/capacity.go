package runparity

// minRunLen is the shortest qualifying run whose parity reads as bit.
func minRunLen(bit bool, m int) int {
	if (m%2 == 1) == bit {
		return m
	}
	return m + 1
}

func minimumLength(msg []bool, m int) int {
	var total int
	for _, bit := range msg {
		total += minRunLen(bit, m)
	}
	return total
}

// MinimumLength returns the shortest carrier that can hold msg: the sum of
// the shortest qualifying run of the right parity for every message bit.
// It is a lower bound; padding between runs forced by the carrier's content
// is not counted.
func MinimumLength(msg []bool, m int) (int, error) {
	if err := validMinRun(m); err != nil {
		return 0, err
	}
	return minimumLength(msg, m), nil
}

// CheckCapacity reports whether carrier can hold msg before anything is
// mutated. In strict mode the carrier must also already contain at least
// len(msg) qualifying runs.
func CheckCapacity(carrier, msg []bool, m int, strict bool) error {
	if err := validMinRun(m); err != nil {
		return err
	}
	n := len(carrier)
	if need := minimumLength(msg, m); n < need {
		return &CapacityError{Unit: "bits", Need: need, Have: n}
	}
	if strict {
		have, err := CountRuns(carrier, m)
		if err != nil {
			return err
		}
		if have < len(msg) {
			return &CapacityError{Unit: "runs", Need: len(msg), Have: have}
		}
	}
	if m == 1 && len(msg) > 0 {
		// Every run qualifies, so the carrier is exactly len(msg) runs and its
		// length parity is fixed by the number of odd runs.
		var ones int
		for _, bit := range msg {
			if bit {
				ones++
			}
		}
		if n%2 != ones%2 {
			return &CapacityError{Unit: "bits", Need: n + 1, Have: n}
		}
	}
	return nil
}
