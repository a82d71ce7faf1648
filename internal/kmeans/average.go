package kmeans

type AverageStore struct {
	sum   float64
	count int
}

func (s *AverageStore) Add(value float64) {
	s.sum += value
	s.count += 1
}

// Average returns the mean of the added values, or fallback when nothing
// was added.
func (s *AverageStore) Average(fallback float64) float64 {
	if s.count == 0 {
		return fallback
	}
	return s.sum / float64(s.count)
}

func (s *AverageStore) Count() int { return s.count }
