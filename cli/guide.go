package cli

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/clusterd/clustering"
	"github.com/maastricht-university/clusterd/guide"
)

func newGuideCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Print when to use each clustering method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lang, _ := cmd.Flags().GetString("language")
			if !guide.Supported(lang) {
				a.log.WithField("language", lang).Debug("no guide for language, using english")
			}
			g := guide.Lookup(lang)
			for _, m := range clustering.Methods() {
				cmd.Printf("%-14s %s\n", m, g[string(m)])
			}
			return nil
		},
	}
	cmd.Flags().String("language", guide.DefaultLanguage, "english, farsi, arabic or french")
	return cmd
}
