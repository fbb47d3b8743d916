package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/logger"
)

var (
	envFile string

	// cfg is loaded once in PersistentPreRunE for every subcommand.
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fyyur",
	Short: "Fyyur - venue and artist booking directory",
	Long: `Fyyur is a booking directory for venues and artists.

It serves a JSON and form API to list, search and edit venues and artists,
and to book shows inside an artist's availability window.

Configuration comes from environment variables, optionally loaded from a
.env file (see --env-file).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		return logger.InitLogger(&logger.LogConfig{
			Level:       cfg.Log.Level,
			Environment: cfg.Env,
			ServiceName: cfg.ServiceName,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: ./.env when present)")
}
