// Package cli implements the airbnb-pricing command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"airbnb-pricing/config"
	"airbnb-pricing/utils"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *utils.Logger

	newSource func(*config.Config, *utils.Logger) comparableSource
}

func Execute() {
	cmd := newRootCmd(config.Load)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(load func() *config.Config) *cobra.Command {
	return newRootCmdFor(&app{newSource: airbnbSource}, load)
}

func newRootCmdFor(a *app, load func() *config.Config) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "airbnb-pricing",
		Short:        "Mock nightly price estimates for Airbnb listings",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.cfg = load()
			if debug {
				a.cfg.LogLevel = "debug"
			}
			a.logger = utils.NewLoggerTo(cmd.ErrOrStderr(), cmd.ErrOrStderr(), a.cfg.LogLevel)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(
		estimateCmd(a),
		batchCmd(a),
		serveCmd(a),
		benchmarkCmd(a),
	)
	return cmd
}
