package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/clusterd/clustering"
)

type Service struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}
type Server struct {
	Addr            string  `yaml:"addr"`
	ReadTimeout     int     `yaml:"read_timeout"`
	WriteTimeout    int     `yaml:"write_timeout"`
	ShutdownTimeout int     `yaml:"shutdown_timeout"`
	MaxUploadMB     int     `yaml:"max_upload_mb"`
	RateLimit       float64 `yaml:"rate_limit"` // requests per second, 0 disables
	Burst           int     `yaml:"burst"`
}
type Clustering struct {
	Method            string `yaml:"method"`
	clustering.Params `yaml:",inline"`
}
type Dataset struct {
	IDColumn string `yaml:"id_column"`
}
type Root struct {
	Service    Service    `yaml:"service"`
	Server     Server     `yaml:"server"`
	Clustering Clustering `yaml:"clustering"`
	Dataset    Dataset    `yaml:"dataset"`
	Paths      struct {
		Outputs string `yaml:"outputs"`
	} `yaml:"paths"`
}

func Default() *Root {
	var c Root
	c.Service = Service{Name: "clusterd", Version: "0.1.0", LogLevel: "info", LogFormat: "text"}
	c.Server = Server{
		Addr:            ":5000",
		ReadTimeout:     30,
		WriteTimeout:    120,
		ShutdownTimeout: 10,
		MaxUploadMB:     32,
		Burst:           10,
	}
	c.Clustering = Clustering{Method: string(clustering.KMeans), Params: clustering.DefaultParams()}
	c.Dataset.IDColumn = "Name"
	return &c
}

// Load decodes the first config file found over the defaults, then applies
// CLUSTERD_* environment variables and any flags bound to v. A missing file
// is not an error.
func Load(v *viper.Viper) (*Root, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		"config.yaml",
	}
	if p := os.Getenv("CLUSTERD_CONFIG"); p != "" {
		guess = []string{p}
	}

	cfg := Default()
	for _, p := range guess {
		f, err := os.Open(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		err = yaml.NewDecoder(f).Decode(cfg)
		f.Close()
		if err != nil {
			return nil, err
		}
		break
	}

	if v == nil {
		v = viper.New()
	}
	Override(cfg, v)
	return cfg, nil
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
