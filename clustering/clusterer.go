// Package clustering runs one of five clustering methods over a feature
// matrix and returns one integer label per row.
package clustering

import (
	"context"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// Noise is the label given to rows that belong to no cluster.
const Noise = -1

// Clusterer fits a model to X and returns the label of each row. Long
// running fits return ctx.Err() once ctx is done.
type Clusterer interface {
	FitPredict(ctx context.Context, X *mat.Dense) ([]int, error)
}

// New returns the Clusterer for m configured with p.
func New(m Method, p Params) (Clusterer, error) {
	p = p.withDefaults()
	switch m {
	case KMeans:
		return &kmeansClusterer{k: p.NClusters, maxIter: p.MaxIter, nInit: p.NInit}, nil
	case DBSCAN:
		if p.Eps <= 0 {
			return nil, invalidParams("eps must be positive, got %g", p.Eps)
		}
		if p.MinSamples < 1 {
			return nil, invalidParams("min_samples must be at least 1, got %d", p.MinSamples)
		}
		return &dbscanClusterer{eps: p.Eps, minSamples: p.MinSamples, workers: p.Workers}, nil
	case Hierarchical:
		lm, err := ParseLinkage(p.Linkage)
		if err != nil {
			return nil, err
		}
		if p.Criterion != CriterionDistance && p.Criterion != CriterionMaxClust {
			return nil, invalidParams("criterion must be %q or %q, got %q",
				CriterionDistance, CriterionMaxClust, p.Criterion)
		}
		if p.Threshold < 0 {
			return nil, invalidParams("threshold must not be negative, got %g", p.Threshold)
		}
		return &hierarchicalClusterer{
			linkage:   lm,
			criterion: p.Criterion,
			threshold: p.Threshold,
			maxClust:  p.NClusters,
		}, nil
	case MeanShift:
		if p.Bandwidth < 0 {
			return nil, invalidParams("bandwidth must not be negative, got %g", p.Bandwidth)
		}
		return &meanShiftClusterer{bandwidth: p.Bandwidth, maxIter: p.MaxIter}, nil
	case Agglomerative:
		lm, err := ParseLinkage(p.Linkage)
		if err != nil {
			return nil, err
		}
		return &agglomerativeClusterer{k: p.NClusters, linkage: lm}, nil
	}
	_, err := ParseMethod(string(m))
	return nil, err
}

// Run is New followed by FitPredict.
func Run(ctx context.Context, m Method, X *mat.Dense, p Params) ([]int, error) {
	c, err := New(m, p)
	if err != nil {
		return nil, err
	}
	labels, err := c.FitPredict(ctx, X)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", m)
	}
	return labels, nil
}

// rows copies X into the row-slice layout used by the clusters package.
func rows(X *mat.Dense) [][]float64 {
	r, c := X.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		copy(row, X.RawRowView(i))
		out[i] = row
	}
	return out
}

func checkInput(X *mat.Dense) (int, error) {
	if X == nil || X.IsEmpty() {
		return 0, invalidParams("no rows to cluster")
	}
	r, _ := X.Dims()
	return r, nil
}

// Count returns the number of distinct non-noise labels and the number of
// noise rows.
func Count(labels []int) (clusters, noise int) {
	seen := make(map[int]struct{})
	for _, l := range labels {
		if l == Noise {
			noise++
			continue
		}
		seen[l] = struct{}{}
	}
	return len(seen), noise
}

// relabel maps raw labels to 0..k-1 (plus base offset) in order of first
// appearance. Labels for which isNoise returns true become Noise.
func relabel(raw []int, base int, isNoise func(int) bool) []int {
	next := base
	ids := make(map[int]int)
	out := make([]int, len(raw))
	for i, l := range raw {
		if isNoise != nil && isNoise(l) {
			out[i] = Noise
			continue
		}
		id, ok := ids[l]
		if !ok {
			id = next
			ids[l] = id
			next++
		}
		out[i] = id
	}
	return out
}
