package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/maastricht-university/clusterd/clustering"
	cfg "github.com/maastricht-university/clusterd/config"
	"github.com/maastricht-university/clusterd/dataset"
)

// blobCSV writes six rows around each center; row names encode the blob.
func blobCSV(centers ...[2]float64) string {
	offsets := [][2]float64{{0, 0}, {0.1, 0}, {0, 0.1}, {-0.1, 0}, {0, -0.1}, {0.05, 0.05}}
	var b strings.Builder
	b.WriteString("Name,x,y\n")
	for ci, c := range centers {
		for oi, o := range offsets {
			fmt.Fprintf(&b, "b%d-%d,%g,%g\n", ci, oi, c[0]+o[0], c[1]+o[1])
		}
	}
	return b.String()
}

func testPipeline(t *testing.T, outputs string) *Pipeline {
	t.Helper()
	c := cfg.Default()
	c.Paths.Outputs = outputs
	return NewPipeline(c, nil)
}

func TestRunKMeansRecoversBlobs(t *testing.T) {
	p := testPipeline(t, "")
	req := p.DefaultRequest()
	req.Params.NClusters = 3

	src := blobCSV([2]float64{0, 0}, [2]float64{20, 0}, [2]float64{0, 20})
	res, err := p.Run(context.Background(), strings.NewReader(src), "blobs.csv", req)
	require.NoError(t, err)

	require.Len(t, res.Assignments.IDs, 18)
	require.Len(t, res.Assignments.Labels, 18)
	assert.Equal(t, 3, res.Clusters)
	assert.Zero(t, res.Noise)
	assert.Equal(t, clustering.KMeans, res.Method)
	assert.Equal(t, "clusters_output.xlsx", res.Filename)
	assert.NotEmpty(t, res.Output)
	assert.Empty(t, res.OutputPath)

	// identifiers keep input order; same blob prefix means same label
	byBlob := map[string]int{}
	for i, id := range res.Assignments.IDs {
		assert.Equal(t, fmt.Sprintf("b%d-%d", i/6, i%6), id)
		blob := strings.SplitN(id, "-", 2)[0]
		if l, ok := byBlob[blob]; ok {
			assert.Equal(t, l, res.Assignments.Labels[i], id)
		}
		byBlob[blob] = res.Assignments.Labels[i]
	}
	assert.Len(t, byBlob, 3)
}

func TestRunEveryMethodKeepsRowCount(t *testing.T) {
	p := testPipeline(t, "")
	src := blobCSV([2]float64{0, 0}, [2]float64{20, 0})

	for _, m := range clustering.Methods() {
		t.Run(string(m), func(t *testing.T) {
			req := p.DefaultRequest()
			req.Method = string(m)
			req.Params.NClusters = 2
			req.Params.Eps = 1
			req.Params.MinSamples = 3
			req.Format = dataset.CSV

			res, err := p.Run(context.Background(), strings.NewReader(src), "in.csv", req)
			require.NoError(t, err)
			assert.Len(t, res.Assignments.Labels, 12)
			assert.Equal(t, 2, res.Clusters)
			assert.Equal(t, 13, strings.Count(string(res.Output), "\n"))
		})
	}
}

func TestRunDBSCANOutlierFirst(t *testing.T) {
	p := testPipeline(t, "")
	req := p.DefaultRequest()
	req.Method = "dbscan"
	req.Params.Eps = 1
	req.Params.MinSamples = 3
	req.Format = dataset.CSV

	src := strings.Replace(blobCSV([2]float64{0, 0}, [2]float64{20, 0}),
		"Name,x,y\n", "Name,x,y\nlonely,500,500\n", 1)
	res, err := p.Run(context.Background(), strings.NewReader(src), "in.csv", req)
	require.NoError(t, err)

	labels := res.Assignments.Labels
	require.Len(t, labels, 13)
	assert.Equal(t, clustering.Noise, labels[0])
	assert.Equal(t, 2, res.Clusters)
	assert.Equal(t, 1, res.Noise)
	for i := 7; i < 13; i++ {
		assert.Equal(t, labels[7], labels[i], res.Assignments.IDs[i])
	}
	assert.NotEqual(t, labels[1], labels[12])
}

func TestRunInvalidMethod(t *testing.T) {
	p := testPipeline(t, "")
	req := p.DefaultRequest()
	req.Method = "invalid"

	_, err := p.Run(context.Background(), strings.NewReader("garbage"), "x.csv", req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, clustering.ErrInvalidMethod))
	assert.Contains(t, err.Error(), "'agglomerative'")
}

func TestRunPropagatesDatasetErrors(t *testing.T) {
	p := testPipeline(t, "")
	req := p.DefaultRequest()
	req.IDColumn = "Student"

	_, err := p.Run(context.Background(), strings.NewReader(blobCSV([2]float64{0, 0})), "x.csv", req)
	assert.True(t, errors.Is(err, dataset.ErrMissingColumn))
}

func TestRunHonoursCancelledContext(t *testing.T) {
	p := testPipeline(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, strings.NewReader(blobCSV([2]float64{0, 0})), "x.csv", p.DefaultRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPersistsPerRequest(t *testing.T) {
	dir := t.TempDir()
	p := testPipeline(t, dir)
	req := p.DefaultRequest()
	req.Params.NClusters = 2

	src := blobCSV([2]float64{0, 0}, [2]float64{20, 0})
	first, err := p.Run(context.Background(), strings.NewReader(src), "a.csv", req)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), strings.NewReader(src), "a.csv", req)
	require.NoError(t, err)

	require.NotEqual(t, first.OutputPath, second.OutputPath)
	for _, res := range []*Result{first, second} {
		written, err := os.ReadFile(res.OutputPath)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(res.Output, written))

		raw, err := os.ReadFile(filepath.Join(filepath.Dir(res.OutputPath), "run.json"))
		require.NoError(t, err)
		var bundle PersistBundle
		require.NoError(t, json.Unmarshal(raw, &bundle))
		assert.Equal(t, 12, bundle.Rows)
		assert.Equal(t, 2, bundle.Clusters)
		assert.Equal(t, "a.csv", bundle.Source)
		assert.Equal(t, clustering.KMeans, bundle.Method)
	}
}

func TestStandardize(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 5,
		2, 5,
		3, 5,
		4, 5,
	})
	Z := standardize(X)

	col := mat.Col(nil, 0, Z)
	assert.InDelta(t, 0, col[0]+col[1]+col[2]+col[3], 1e-12)
	assert.InDelta(t, -1.3416407865, col[0], 1e-9)
	assert.Equal(t, []float64{0, 0, 0, 0}, mat.Col(nil, 1, Z))
	// input untouched
	assert.Equal(t, 1.0, X.At(0, 0))
}
