package cmd

import (
	"fmt"
	"os"

	"hotel-booking/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cliState struct {
	envFile string
	config  *utils.Config
	logger  *zap.Logger
}

var rt cliState

var rootCmd = &cobra.Command{
	Use:           "hotel-booking",
	Short:         "Hotel booking API with wallet payments",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := utils.LoadConfig(rt.envFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init logger: %v, falling back to production logger\n", err)
			logger, _ = zap.NewProduction()
		}

		rt.config = config
		rt.logger = logger
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rt.logger != nil {
			_ = rt.logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rt.envFile, "env-file", ".env", "path to an env file with configuration")

	rootCmd.AddCommand(serveCmd, migrateCmd, reconcileCmd, hotelCmd)
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hotel-booking: %v\n", err)
		os.Exit(1)
	}
}
