package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskboard/internal/bootstrap"
	"github.com/fastygo/taskboard/internal/seed"
	taskUC "github.com/fastygo/taskboard/usecase/task"
)

func newSeedCommand(e *env) *cobra.Command {
	var opts struct {
		file  string
		users []string
		orgs  []string
	}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo tasks",
		Long: `Create tasks from a YAML fixture, or generate a demo set.

Without --file, every --user gets five personal tasks and every --org gets
five tasks shared among the users, cycling through the priorities.

Examples:
  taskctl seed --file fixtures/tasks.yaml
  taskctl seed --user jane --user john --org 2f1c1c1e-6f7a-4d0e-9b8a-3c1d5e7f9a01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				fx  *seed.Fixture
				err error
			)
			switch {
			case opts.file != "":
				fx, err = seed.LoadFile(opts.file)
				if err != nil {
					return err
				}
			case len(opts.users) > 0:
				fx = seed.Demo(opts.users, opts.orgs)
			default:
				return errors.New("either --file or at least one --user is required")
			}

			store, err := bootstrap.OpenStore(cmd.Context(), e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			seeder := seed.NewSeeder(taskUC.New(store.Tasks, nil, e.logger), e.logger)
			n, err := seeder.Seed(cmd.Context(), fx)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %d of %d tasks\n", n, len(fx.Tasks))
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML fixture file")
	cmd.Flags().StringArrayVar(&opts.users, "user", nil, "User id for generated tasks (repeatable)")
	cmd.Flags().StringArrayVar(&opts.orgs, "org", nil, "Organization id for generated tasks (repeatable)")
	return cmd
}
