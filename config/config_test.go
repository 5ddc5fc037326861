package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("CLUSTERD_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("CLUSTERD_CONFIG", writeConfig(t, `
server:
  addr: ":7000"
  rate_limit: 2.5
clustering:
  method: dbscan
  eps: 0.75
  min_samples: 4
paths:
  outputs: /tmp/out
`))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 2.5, cfg.Server.RateLimit)
	assert.Equal(t, "dbscan", cfg.Clustering.Method)
	assert.Equal(t, 0.75, cfg.Clustering.Eps)
	assert.Equal(t, 4, cfg.Clustering.MinSamples)
	assert.Equal(t, "/tmp/out", cfg.Paths.Outputs)

	// untouched keys keep their defaults
	assert.Equal(t, 3, cfg.Clustering.NClusters)
	assert.Equal(t, "Name", cfg.Dataset.IDColumn)
	assert.Equal(t, 32, cfg.Server.MaxUploadMB)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	t.Setenv("CLUSTERD_CONFIG", writeConfig(t, "server: [unclosed"))
	_, err := Load(nil)
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("CLUSTERD_CONFIG", writeConfig(t, "server:\n  addr: \":7000\"\n"))
	t.Setenv("CLUSTERD_SERVER_ADDR", ":9000")
	t.Setenv("CLUSTERD_CLUSTERING_N_CLUSTERS", "5")
	t.Setenv("CLUSTERD_CLUSTERING_THRESHOLD", "2.25")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Clustering.NClusters)
	assert.Equal(t, 2.25, cfg.Clustering.Threshold)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(Service{LogLevel: "debug", LogFormat: "json"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	_, err = NewLogger(Service{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestDurSeconds(t *testing.T) {
	assert.Equal(t, 3*time.Second, DurSeconds(3))
}
