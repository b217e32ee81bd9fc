package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkrogh/reelmatch/internal/config"
	infra_pg_init "github.com/mkrogh/reelmatch/internal/infra/postgres/init"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrateUp,
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := infra_pg_init.MigrateUp(cfg.Postgres); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
