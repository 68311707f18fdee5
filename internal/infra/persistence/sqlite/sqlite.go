// Package sqlite keeps products and users in a local SQLite file through
// gorm. It is the default store for running the exercises without a server.
package sqlite

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates the file if needed and migrates both tables. ":memory:" is
// accepted; the pool is capped at one connection so it stays one database.
func Open(path string, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "sqlite handle")
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&productModel{}, &userModel{}); err != nil {
		return nil, errors.Wrap(err, "migrate sqlite")
	}
	return db, nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
