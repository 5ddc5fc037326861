// Package cli wires the cobra commands of the clusterd binary.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/maastricht-university/clusterd/config"
)

// flagKeys maps command-line flags onto config keys. Only the flags of the
// command being executed are bound, so run and remote can share names.
var flagKeys = map[string]string{
	"log-level":   "service.log_level",
	"log-format":  "service.log_format",
	"addr":        "server.addr",
	"rate-limit":  "server.rate_limit",
	"outputs":     "paths.outputs",
	"method":      "clustering.method",
	"n-clusters":  "clustering.n_clusters",
	"eps":         "clustering.eps",
	"min-samples": "clustering.min_samples",
	"threshold":   "clustering.threshold",
	"linkage":     "clustering.linkage",
	"criterion":   "clustering.criterion",
	"bandwidth":   "clustering.bandwidth",
	"id-column":   "dataset.id_column",
}

// app is the state shared by every subcommand once config is loaded.
type app struct {
	v   *viper.Viper
	cfg *cfg.Root
	log *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{v: cfg.NewViper()}

	root := &cobra.Command{
		Use:           "clusterd",
		Short:         "Cluster tabular datasets with kmeans, dbscan, hierarchical, meanshift or agglomerative",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if p, _ := cmd.Flags().GetString("config"); p != "" {
				os.Setenv("CLUSTERD_CONFIG", p)
			}
			for flag, key := range flagKeys {
				if f := cmd.Flags().Lookup(flag); f != nil {
					if err := a.v.BindPFlag(key, f); err != nil {
						return err
					}
				}
			}
			conf, err := cfg.Load(a.v)
			if err != nil {
				return err
			}
			log, err := cfg.NewLogger(conf.Service)
			if err != nil {
				return err
			}
			a.cfg, a.log = conf, log
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "path to config.yaml (default config/$CONFIG_ENV/config.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")

	root.AddCommand(
		newServeCmd(a),
		newRunCmd(a),
		newRemoteCmd(a),
		newGuideCmd(a),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("clusterd failed")
		return 1
	}
	return 0
}
