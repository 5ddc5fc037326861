package clients

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/maastricht-university/clusterd/config"
	"github.com/maastricht-university/clusterd/guide"
	"github.com/maastricht-university/clusterd/server"
)

func startServer(t *testing.T) (*HTTP, string) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	ts := httptest.NewServer(server.New(cfg.Default(), log).Handler())
	t.Cleanup(ts.Close)
	return WithClient(ts.Client()), ts.URL
}

func TestClusterUpload(t *testing.T) {
	h, url := startServer(t)

	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,x,y\na,0,0\nb,0.1,0\nc,9,9\nd,9.1,9\n"), 0o644))

	resp, err := h.Cluster(context.Background(), url, path, ClusterForm{
		Method:    "agglomerative",
		NClusters: Int(2),
		Format:    "csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "clusters_output.csv", resp.Filename)
	assert.Equal(t, "text/csv", resp.ContentType)
	assert.Equal(t, 2, resp.Clusters)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "Name,Cluster\na,0\nb,0\nc,1\nd,1\n", string(resp.Body))
}

func TestClusterInvalidMethod(t *testing.T) {
	h, url := startServer(t)

	_, err := h.ClusterReader(context.Background(), url, "in.csv",
		strings.NewReader("Name,x\na,1\n"), ClusterForm{Method: "invalid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "'agglomerative'")
}

func TestClusterMissingFile(t *testing.T) {
	h, url := startServer(t)
	_, err := h.Cluster(context.Background(), url, filepath.Join(t.TempDir(), "nope.xlsx"), ClusterForm{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGuide(t *testing.T) {
	h, url := startServer(t)

	got, err := h.Guide(context.Background(), url, "french")
	require.NoError(t, err)
	assert.Equal(t, GuideResp(guide.Lookup("french")), got)

	got, err = h.Guide(context.Background(), url, "")
	require.NoError(t, err)
	assert.Equal(t, GuideResp(guide.Lookup("english")), got)
}

func TestHealth(t *testing.T) {
	h, url := startServer(t)
	got, err := h.Health(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Status)
}

func TestFormFieldsOmitUnsetValues(t *testing.T) {
	assert.Empty(t, ClusterForm{}.fields())
	assert.Equal(t, map[string]string{
		"method":      "dbscan",
		"eps":         "0.25",
		"min_samples": "4",
		"standardize": "true",
	}, ClusterForm{Method: "dbscan", Eps: Float(0.25), MinSamples: Int(4), Standardize: true}.fields())
}

func TestFormFieldsSendExplicitZero(t *testing.T) {
	assert.Equal(t, map[string]string{
		"threshold": "0",
		"bandwidth": "0",
	}, ClusterForm{Threshold: Float(0), Bandwidth: Float(0)}.fields())
}

func TestClusterZeroThreshold(t *testing.T) {
	h, url := startServer(t)
	src := "Name,x\na,0\nb,0\nc,1\nd,5\n"

	form := ClusterForm{Method: "hierarchical", Linkage: "single", Format: "csv"}
	resp, err := h.ClusterReader(context.Background(), url, "in.csv", strings.NewReader(src), form)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Clusters)

	form.Threshold = Float(0)
	resp, err = h.ClusterReader(context.Background(), url, "in.csv", strings.NewReader(src), form)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Clusters)
	assert.Equal(t, "Name,Cluster\na,1\nb,1\nc,2\nd,3\n", string(resp.Body))
}
