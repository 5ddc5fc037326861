package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/clusterd/clients"
)

func newRemoteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Upload a spreadsheet to a running clusterd and save the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, _ := cmd.Flags().GetString("url")
			in, _ := cmd.Flags().GetString("file")
			out, _ := cmd.Flags().GetString("out")
			format, _ := cmd.Flags().GetString("format")
			std, _ := cmd.Flags().GetBool("standardize")

			c := a.cfg.Clustering
			form := clients.ClusterForm{
				Method:      c.Method,
				Linkage:     c.Linkage,
				Criterion:   c.Criterion,
				Standardize: std,
				Format:      format,
				IDColumn:    a.cfg.Dataset.IDColumn,
			}
			// numbers are sent only when given on the command line
			f := cmd.Flags()
			if f.Changed("n-clusters") {
				form.NClusters = clients.Int(c.NClusters)
			}
			if f.Changed("min-samples") {
				form.MinSamples = clients.Int(c.MinSamples)
			}
			if f.Changed("eps") {
				form.Eps = clients.Float(c.Eps)
			}
			if f.Changed("threshold") {
				form.Threshold = clients.Float(c.Threshold)
			}
			if f.Changed("bandwidth") {
				form.Bandwidth = clients.Float(c.Bandwidth)
			}
			resp, err := clients.NewHTTP().Cluster(cmd.Context(), url, in, form)
			if err != nil {
				return err
			}
			if out == "" {
				out = resp.Filename
			}
			if err := os.WriteFile(out, resp.Body, 0o644); err != nil {
				return err
			}
			a.log.WithField("request_id", resp.RequestID).Debug("remote clustering done")
			cmd.Printf("%d clusters, %d noise -> %s\n", resp.Clusters, resp.Noise, out)
			return nil
		},
	}
	clusterFlags(cmd)
	cmd.Flags().String("url", "http://localhost:5000", "base URL of the clusterd server")
	cmd.Flags().String("out", "", "output path (default: name sent by the server)")
	return cmd
}
