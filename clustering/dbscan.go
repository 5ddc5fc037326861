package clustering

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type dbscanClusterer struct {
	eps        float64
	minSamples int
	workers    int
}

// FitPredict labels dense regions 0..m-1 and everything else Noise. A row
// is core when at least minSamples rows, itself included, lie within eps.
// Rows first seen as noise are claimed as border rows by any core row that
// reaches them later.
func (c *dbscanClusterer) FitPredict(ctx context.Context, X *mat.Dense) ([]int, error) {
	n, err := checkInput(X)
	if err != nil {
		return nil, err
	}
	neighbors, err := c.regionQueries(ctx, X)
	if err != nil {
		return nil, err
	}

	const undefined = -2
	labels := make([]int, n)
	for i := range labels {
		labels[i] = undefined
	}

	cluster := 0
	for i := 0; i < n; i++ {
		if labels[i] != undefined {
			continue
		}
		if len(neighbors[i]) < c.minSamples {
			labels[i] = Noise
			continue
		}

		labels[i] = cluster
		seed := append([]int(nil), neighbors[i]...)
		for len(seed) > 0 {
			q := seed[0]
			seed = seed[1:]

			if labels[q] == Noise {
				labels[q] = cluster
			}
			if labels[q] != undefined {
				continue
			}
			labels[q] = cluster
			if len(neighbors[q]) >= c.minSamples {
				seed = append(seed, neighbors[q]...)
			}
		}
		cluster++
	}
	return relabel(labels, 0, func(l int) bool { return l == Noise }), nil
}

// regionQueries returns, for every row, the rows within eps of it. Rows are
// split into contiguous chunks, one per worker.
func (c *dbscanClusterer) regionQueries(ctx context.Context, X *mat.Dense) ([][]int, error) {
	n, _ := X.Dims()
	out := make([][]int, n)

	workers := c.workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				a := X.RawRowView(i)
				for j := 0; j < n; j++ {
					if floats.Distance(a, X.RawRowView(j), 2) <= c.eps {
						out[i] = append(out[i], j)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
