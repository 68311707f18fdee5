// Package migrations applies the embedded schema to MySQL or Postgres.
package migrations

import (
	"embed"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed mysql/*.sql postgres/*.sql
var files embed.FS

// Up applies every pending migration. An up-to-date schema is not an error.
func Up(driver, dsn string) error {
	return run(driver, dsn, (*migrate.Migrate).Up)
}

// Down reverts every applied migration.
func Down(driver, dsn string) error {
	return run(driver, dsn, (*migrate.Migrate).Down)
}

func run(driver, dsn string, step func(*migrate.Migrate) error) error {
	url, err := databaseURL(driver, dsn)
	if err != nil {
		return err
	}
	src, err := iofs.New(files, driver)
	if err != nil {
		return errors.Wrapf(err, "open %s migrations", driver)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return errors.Wrap(err, "init migrate")
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migrate")
	}
	return nil
}

// databaseURL turns a driver DSN into the URL form golang-migrate expects.
func databaseURL(driver, dsn string) (string, error) {
	switch driver {
	case "mysql":
		return "mysql://" + dsn, nil
	case "postgres":
		for _, scheme := range []string{"postgres://", "postgresql://"} {
			if strings.HasPrefix(dsn, scheme) {
				return "pgx5://" + strings.TrimPrefix(dsn, scheme), nil
			}
		}
		return "", errors.Errorf("postgres dsn must start with postgres://: %q", dsn)
	}
	return "", errors.Errorf("migrations not supported for driver %q", driver)
}
