package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"example.com/exam-crud/internal/config"
	"example.com/exam-crud/internal/infra/migrations"
)

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the SQL schema",
		Long:  "Runs the embedded migrations against the mysql or postgres database from the config. The sqlite store migrates itself on open.",
	}
	cmd.AddCommand(
		a.migrateStepCmd("up", "Apply all pending migrations", migrations.Up),
		a.migrateStepCmd("down", "Roll back every migration", migrations.Down),
	)
	return cmd
}

func (a *app) migrateStepCmd(use, short string, step func(driver, dsn string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid config")
			}
			switch a.cfg.StorageDriver {
			case config.DriverMySQL, config.DriverPostgres:
			default:
				return errors.Errorf("migrate needs the mysql or postgres driver, not %q", a.cfg.StorageDriver)
			}
			if err := step(a.cfg.StorageDriver, a.cfg.DSN()); err != nil {
				return err
			}
			a.log.WithField("driver", a.cfg.StorageDriver).Infof("migrate %s done", use)
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", use)
			return nil
		},
	}
}
