package clustering

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// hierarchicalClusterer builds a dendrogram and cuts it into flat clusters.
// Labels start at 1.
type hierarchicalClusterer struct {
	linkage   LinkageMethod
	criterion string
	threshold float64
	maxClust  int
}

func (c *hierarchicalClusterer) FitPredict(ctx context.Context, X *mat.Dense) ([]int, error) {
	n, err := checkInput(X)
	if err != nil {
		return nil, err
	}
	dg, err := Linkage(ctx, X, c.linkage)
	if err != nil {
		return nil, err
	}
	if c.criterion == CriterionMaxClust {
		k := c.maxClust
		if k > n {
			k = n
		}
		if err := checkClusterCount(k, n); err != nil {
			return nil, err
		}
		return dg.CutClusters(k, 1), nil
	}
	return dg.CutDistance(c.threshold), nil
}

// agglomerativeClusterer merges bottom-up until exactly k clusters remain.
// Labels start at 0.
type agglomerativeClusterer struct {
	k       int
	linkage LinkageMethod
}

func (c *agglomerativeClusterer) FitPredict(ctx context.Context, X *mat.Dense) ([]int, error) {
	n, err := checkInput(X)
	if err != nil {
		return nil, err
	}
	if err := checkClusterCount(c.k, n); err != nil {
		return nil, err
	}
	dg, err := Linkage(ctx, X, c.linkage)
	if err != nil {
		return nil, err
	}
	return dg.CutClusters(c.k, 0), nil
}
