package services

// ReduceWaypoints downsamples path to at most maxCount entries for display,
// always keeping the first and last entry.
//
// Paths that already fit are returned unchanged. Otherwise every step-th entry
// is taken, starting with the first, and the last entry is appended when the
// stride does not land on it. The stride starts at len(path)/(maxCount-1) and
// is widened when that would still pick more than maxCount entries, so the
// result never exceeds maxCount and reducing twice equals reducing once.
// A maxCount below 2 is treated as 2.
func ReduceWaypoints[T any](path []T, maxCount int) []T {
	if maxCount < 2 {
		maxCount = 2
	}
	n := len(path)
	if n <= maxCount {
		return path
	}

	step := n / (maxCount - 1)
	if minStep := (n - 2 + maxCount - 1) / (maxCount - 1); step < minStep { // ceil((n-1)/(maxCount-1))
		step = minStep
	}

	out := make([]T, 0, maxCount)
	last := 0
	for i := 0; i < n; i += step {
		out = append(out, path[i])
		last = i
	}
	if last != n-1 {
		out = append(out, path[n-1])
	}

	return out
}
