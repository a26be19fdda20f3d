package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/config"
	"github.com/fastygo/taskboard/pkg/logger"
)

type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:           "taskctl",
		Short:         "Task store maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if driver, _ := cmd.Flags().GetString("driver"); driver != "" {
				cfg.Store.Driver = driver
			}
			log, err := logger.New(logger.Config{Level: cfg.Logger.Level, Encoding: "console"})
			if err != nil {
				return err
			}
			e.cfg, e.logger = cfg, log
			return nil
		},
	}

	cmd.PersistentFlags().String("driver", "", "Store driver override (postgres or sqlite)")

	cmd.AddCommand(newMigrateCommand(e))
	cmd.AddCommand(newSeedCommand(e))
	return cmd
}
