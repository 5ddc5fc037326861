package clustering

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/mpraski/clusters"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// kmeansClusterer restarts the library's k-means++ seeded Lloyd iterations
// nInit times and keeps the partition with the lowest inertia.
type kmeansClusterer struct {
	k       int
	maxIter int
	nInit   int
}

func (c *kmeansClusterer) FitPredict(ctx context.Context, X *mat.Dense) ([]int, error) {
	n, err := checkInput(X)
	if err != nil {
		return nil, err
	}
	if err := checkClusterCount(c.k, n); err != nil {
		return nil, err
	}
	// seeding picks from n-1 candidates, so tiny inputs are resolved here
	if c.k == 1 || n < 2 {
		return make([]int, n), nil
	}
	if c.k == n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	// the library seeds centroids as aliases of its input rows and moves
	// them in place, so every restart learns on a fresh copy
	data := rows(X)
	var (
		best        []int
		bestInertia = math.Inf(1)
	)
	for run := 0; run < c.nInit; run++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		km, err := clusters.KMeans(c.maxIter, c.k, clusters.EuclideanDistance)
		if err != nil {
			return nil, errors.Wrap(err, "kmeans init")
		}
		if err := km.Learn(rows(X)); err != nil {
			return nil, errors.Wrap(err, "kmeans learn")
		}
		labels := relabel(km.Guesses(), 0, nil)
		if in := inertia(data, labels); in < bestInertia {
			bestInertia = in
			best = labels
		}
	}
	return best, nil
}

// inertia is the sum of squared distances of each row to its cluster mean.
func inertia(data [][]float64, labels []int) float64 {
	cents := centroids(data, labels)
	total := 0.0
	for i, row := range data {
		d := floats.Distance(row, cents[labels[i]], 2)
		total += d * d
	}
	return total
}

func centroids(data [][]float64, labels []int) map[int][]float64 {
	sums := make(map[int][]float64)
	counts := make(map[int]float64)
	for i, row := range data {
		l := labels[i]
		if _, ok := sums[l]; !ok {
			sums[l] = make([]float64, len(row))
		}
		floats.Add(sums[l], row)
		counts[l]++
	}
	for l, s := range sums {
		floats.Scale(1/counts[l], s)
	}
	return sums
}
