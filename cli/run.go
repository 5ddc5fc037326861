package cli

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/maastricht-university/clusterd/dataset"
	"github.com/maastricht-university/clusterd/orchestrator"
)

// clusterFlags registers the clustering knobs shared by run and remote.
// Zero values leave the configured defaults in place.
func clusterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("method", "", "kmeans, dbscan, hierarchical, meanshift or agglomerative")
	f.Int("n-clusters", 0, "number of clusters (kmeans, agglomerative, hierarchical maxclust)")
	f.Float64("eps", 0, "dbscan neighbourhood radius")
	f.Int("min-samples", 0, "dbscan minimum neighbours of a core row")
	f.Float64("threshold", 0, "hierarchical distance threshold")
	f.String("linkage", "", "ward, single, complete or average")
	f.String("criterion", "", "hierarchical flat cut: distance or maxclust")
	f.Float64("bandwidth", 0, "meanshift bandwidth, 0 estimates it")
	f.String("id-column", "", "identifier column (default Name)")
	f.String("file", "", "input spreadsheet (.xlsx or .csv)")
	f.String("format", "xlsx", "output format: xlsx or csv")
	f.Bool("standardize", false, "z-score feature columns before clustering")
	_ = cmd.MarkFlagRequired("file")
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Cluster a local spreadsheet without starting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, _ := cmd.Flags().GetString("file")
			out, _ := cmd.Flags().GetString("out")
			fmtName, _ := cmd.Flags().GetString("format")
			std, _ := cmd.Flags().GetBool("standardize")

			format, err := dataset.ParseFormat(fmtName)
			if err != nil {
				return err
			}
			p := orchestrator.NewPipeline(a.cfg, a.log)
			req := p.DefaultRequest()
			req.Format = format
			req.Standardize = std

			src, err := os.Open(in)
			if err != nil {
				return err
			}
			defer src.Close()

			res, err := p.Run(cmd.Context(), src, filepath.Base(in), req)
			if err != nil {
				return err
			}
			if out == "" {
				out = res.Filename
			}
			if err := os.WriteFile(out, res.Output, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", out)
			}
			cmd.Printf("%d rows, %d clusters, %d noise -> %s\n",
				len(res.Assignments.Labels), res.Clusters, res.Noise, out)
			return nil
		},
	}
	clusterFlags(cmd)
	cmd.Flags().String("out", "", "output path (default clusters_output.<format>)")
	return cmd
}
