package config

import (
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "CLUSTERD"

// NewViper returns a viper instance reading CLUSTERD_SECTION_KEY variables,
// e.g. CLUSTERD_SERVER_ADDR for server.addr.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Override copies every key set in v (environment or changed flag) onto c.
func Override(c *Root, v *viper.Viper) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	flt := func(key string, dst *float64) {
		if v.IsSet(key) {
			*dst = v.GetFloat64(key)
		}
	}

	str("service.log_level", &c.Service.LogLevel)
	str("service.log_format", &c.Service.LogFormat)

	str("server.addr", &c.Server.Addr)
	num("server.read_timeout", &c.Server.ReadTimeout)
	num("server.write_timeout", &c.Server.WriteTimeout)
	num("server.shutdown_timeout", &c.Server.ShutdownTimeout)
	num("server.max_upload_mb", &c.Server.MaxUploadMB)
	flt("server.rate_limit", &c.Server.RateLimit)
	num("server.burst", &c.Server.Burst)

	str("clustering.method", &c.Clustering.Method)
	num("clustering.n_clusters", &c.Clustering.NClusters)
	flt("clustering.eps", &c.Clustering.Eps)
	num("clustering.min_samples", &c.Clustering.MinSamples)
	flt("clustering.threshold", &c.Clustering.Threshold)
	str("clustering.linkage", &c.Clustering.Linkage)
	str("clustering.criterion", &c.Clustering.Criterion)
	flt("clustering.bandwidth", &c.Clustering.Bandwidth)
	num("clustering.max_iter", &c.Clustering.MaxIter)
	num("clustering.n_init", &c.Clustering.NInit)
	num("clustering.workers", &c.Clustering.Workers)

	str("dataset.id_column", &c.Dataset.IDColumn)
	str("paths.outputs", &c.Paths.Outputs)
}
