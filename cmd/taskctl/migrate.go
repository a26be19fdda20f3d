package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskboard/internal/bootstrap"
	"github.com/fastygo/taskboard/internal/config"
	pgInfra "github.com/fastygo/taskboard/internal/infrastructure/postgres"
)

func newMigrateCommand(e *env) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
		Long: `Apply schema migrations from MIGRATIONS_PATH.

With --steps 0 every pending migration is applied. A negative value rolls
back that many migrations. The SQLite store applies its schema on open, so
for it the command only verifies the database can be opened.

Examples:
  taskctl migrate
  taskctl migrate --steps -1
  taskctl migrate --driver sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.cfg.Store.Driver == config.DriverPostgres {
				if err := pgInfra.Migrate(e.cfg, steps, e.logger); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "postgres schema up to date")
				return nil
			}

			store, err := bootstrap.OpenStore(cmd.Context(), e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer store.Close()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s schema up to date\n", store.Driver)
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "Number of migrations to apply (negative rolls back)")
	return cmd
}
