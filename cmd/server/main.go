package main

import (
	"centre-scheduler-service/internal/config"
	"centre-scheduler-service/internal/logging"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "centre-scheduler",
	Short: "Meeting slot recommendation and route planning for field officers",
	Long: "centre-scheduler recommends meeting slots for borrower group centres and " +
		"sequences a field officer's day around them.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads .env, the environment and the tuning file, then sets up
// logging. Called by every subcommand.
func loadConfig() error {
	envErr := godotenv.Load()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment)
	if envErr != nil {
		logger.Debug().Msg("no .env file found, using environment variables")
	}
	return nil
}
