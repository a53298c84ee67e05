// Package cmd implements the social-planner command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	infralogger "github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
}

// loadConfig reads the configuration named by the persistent flags.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := bootstrap.LoadConfig(o.configPath, o.debug)
	if err != nil {
		return nil, err
	}
	if cfg.Service.Version == "dev" {
		cfg.Service.Version = Version
	}
	return cfg, nil
}

// quietLogger logs nothing unless --debug is set; table output stays clean.
func (o *rootOptions) quietLogger() infralogger.Logger {
	if !o.debug {
		return infralogger.NewNop()
	}
	return infralogger.Must(infralogger.Config{Level: "debug", Development: true})
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "social-planner",
		Short:         "Plan, generate and publish social media posts for small businesses",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default is $CONFIG_PATH or ./"+bootstrap.DefaultConfigPath+")")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newAnalyzeCommand(opts),
		newGenerateCommand(opts),
		newScheduleCommand(opts),
		newTokenCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "social-planner version %s\n", Version)
		},
	}
}
