package main

import (
	"centre-scheduler-service/internal/adapters/repositories"
	"context"

	"github.com/spf13/cobra"
)

var seedPath string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load the centre directory",
	Long: `Create the database schema and upsert centres from a JSON seed file.

Examples:
  # Seed from SCHED_SEED_PATH
  centre-scheduler seed

  # Seed a Postgres database from another file
  SCHED_DB_BACKEND=postgres SCHED_DB_DSN=postgres://... centre-scheduler seed --file centres.json
`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedPath, "file", "f", "", "Seed file (defaults to SCHED_SEED_PATH)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	path := seedPath
	if path == "" {
		path = cfg.SeedPath
	}

	store, dialect, err := openStore(context.Background())
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info().Str("backend", string(dialect)).Msg("schema ready")

	n, err := repositories.SeedFromJSON(store, dialect, path)
	if err != nil {
		return err
	}

	logger.Info().Int("centres", n).Str("path", path).Msg("seeding complete")
	return nil
}
