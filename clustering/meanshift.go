package clustering

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// bandwidthQuantile is the neighbour quantile used when no bandwidth is
// given.
const bandwidthQuantile = 0.3

type meanShiftClusterer struct {
	bandwidth float64
	maxIter   int
}

type mode struct {
	center []float64
	count  int
}

// FitPredict shifts a flat-kernel window from every row to its local
// density peak, merges peaks closer than the bandwidth and labels each row
// with its nearest surviving peak.
func (c *meanShiftClusterer) FitPredict(ctx context.Context, X *mat.Dense) ([]int, error) {
	if _, err := checkInput(X); err != nil {
		return nil, err
	}
	data := rows(X)
	bw := c.bandwidth
	if bw == 0 {
		bw = EstimateBandwidth(data, bandwidthQuantile)
	}

	var modes []mode
	for _, seed := range data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, ok := c.climb(data, seed, bw)
		if !ok || containsCenter(modes, m.center) {
			continue
		}
		modes = append(modes, m)
	}

	sort.SliceStable(modes, func(i, j int) bool {
		if modes[i].count != modes[j].count {
			return modes[i].count > modes[j].count
		}
		return lexGreater(modes[i].center, modes[j].center)
	})

	var centers [][]float64
	suppressed := make([]bool, len(modes))
	for i, m := range modes {
		if suppressed[i] {
			continue
		}
		centers = append(centers, m.center)
		for j := i + 1; j < len(modes); j++ {
			if floats.Distance(m.center, modes[j].center, 2) <= bw {
				suppressed[j] = true
			}
		}
	}

	labels := make([]int, len(data))
	for i, row := range data {
		labels[i] = nearest(centers, row)
	}
	return labels, nil
}

func (c *meanShiftClusterer) climb(data [][]float64, seed []float64, bw float64) (mode, bool) {
	stop := 1e-3 * bw
	mean := append([]float64(nil), seed...)
	for it := 0; ; it++ {
		next := make([]float64, len(mean))
		count := 0
		for _, row := range data {
			if floats.Distance(row, mean, 2) <= bw {
				floats.Add(next, row)
				count++
			}
		}
		if count == 0 {
			return mode{}, false
		}
		floats.Scale(1/float64(count), next)
		shift := floats.Distance(next, mean, 2)
		mean = next
		if shift <= stop || it >= c.maxIter {
			return mode{center: mean, count: count}, true
		}
	}
}

// EstimateBandwidth averages, over all rows, the distance to the
// int(quantile*n)-th nearest row (the row itself counts as the first).
func EstimateBandwidth(data [][]float64, quantile float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	k := int(float64(n) * quantile)
	if k < 1 {
		k = 1
	}
	dists := make([]float64, n)
	total := 0.0
	for _, a := range data {
		for j, b := range data {
			dists[j] = floats.Distance(a, b, 2)
		}
		sort.Float64s(dists)
		total += dists[k-1]
	}
	return total / float64(n)
}

func nearest(centers [][]float64, row []float64) int {
	best, bestD := 0, -1.0
	for i, c := range centers {
		if d := floats.Distance(c, row, 2); bestD < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func containsCenter(modes []mode, c []float64) bool {
	for _, m := range modes {
		if floats.Equal(m.center, c) {
			return true
		}
	}
	return false
}

func lexGreater(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}
