package kmeans

import "math"

// Threshold splits one-dimensional data into a low and a high cluster with
// two-class k-means and returns the midpoint between the cluster centers.
// Values at or above the returned threshold belong to the high cluster.
//
// The centers start at the minimum and maximum and move to the mean of
// their members until the midpoint stabilises.
func Threshold(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	low, high := values[0], values[0]
	for _, v := range values {
		low = math.Min(low, v)
		high = math.Max(high, v)
	}
	threshold := (low + high) / 2.
	etol := math.Pow10(-6)
	for range 300 {
		var highs, lows AverageStore
		for _, v := range values {
			if threshold <= v {
				highs.Add(v)
			} else {
				lows.Add(v)
			}
		}
		low, high = lows.Average(low), highs.Average(high)
		next := (low + high) / 2.
		if diff := math.Abs(next - threshold); diff < etol {
			break
		}
		threshold = next
	}
	return threshold
}
