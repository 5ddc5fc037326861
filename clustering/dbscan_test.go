package clustering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func column(xs ...float64) *mat.Dense {
	return mat.NewDense(len(xs), 1, xs)
}

func TestDBSCANLastRowJoinsItsCluster(t *testing.T) {
	X, _ := blobs([]float64{0, 0})
	labels, err := Run(ctx, DBSCAN, X, Params{Eps: 0.5, MinSamples: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, labels)
}

func TestDBSCANOutlierFirst(t *testing.T) {
	labels, err := Run(ctx, DBSCAN, column(100, 0, 0.1, 0.2, 0.3), Params{Eps: 0.5, MinSamples: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{Noise, 0, 0, 0, 0}, labels)
}

func TestDBSCANBorderRowVisitedFirst(t *testing.T) {
	// row 0 has only two rows within eps, so it is seen as noise before the
	// core row at 0.5 reaches it
	labels, err := Run(ctx, DBSCAN, column(0, 0.5, 0.6, 0.7, 0.8, 100), Params{Eps: 0.5, MinSamples: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, Noise}, labels)
}

func TestDBSCANManyRowsManyWorkers(t *testing.T) {
	const n = 1001
	xs := make([]float64, n)
	truth := make([]int, n)
	for i := range xs {
		if i < 600 {
			xs[i] = float64(i) * 0.01
			continue
		}
		xs[i] = 100 + float64(i-600)*0.01
		truth[i] = 1
	}
	X := column(xs...)

	parallel, err := Run(ctx, DBSCAN, X, Params{Eps: 0.1, MinSamples: 5, Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, truth, parallel)

	serial, err := Run(ctx, DBSCAN, X, Params{Eps: 0.1, MinSamples: 5, Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)

	clusters, noise := Count(parallel)
	assert.Equal(t, 2, clusters)
	assert.Zero(t, noise)
}

func TestDBSCANCanceled(t *testing.T) {
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	X, _ := blobs([]float64{0, 0}, []float64{10, 10})
	_, err := Run(cctx, DBSCAN, X, Params{Eps: 1, MinSamples: 3})
	require.ErrorIs(t, err, context.Canceled)
}
