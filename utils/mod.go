package utils

// LegalIndices returns the indices of all non-zero entries in mask.
func LegalIndices(mask []int8) []int {
	var indices []int
	for i, v := range mask {
		if v != 0 {
			indices = append(indices, i)
		}
	}
	return indices
}

// ArgMax returns the index of the largest value, breaking ties toward
// the lowest index. Returns -1 for an empty slice.
func ArgMax(values []float64) int {
	best := -1
	for i, v := range values {
		if best == -1 || v > values[best] {
			best = i
		}
	}
	return best
}
