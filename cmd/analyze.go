package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/social-planner/internal/bootstrap"
)

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a business website and print its profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			a := bootstrap.NewAnalyzer(cfg, opts.quietLogger(), nil)
			profile, err := a.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderProfile(cmd.OutOrStdout(), profile)
			return nil
		},
	}
}
