package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is flat so envconfig reads the unprefixed variable names below.
type Config struct {
	Port          string        `yaml:"app_port" envconfig:"APP_PORT"`
	StorageDriver string        `yaml:"storage_driver" envconfig:"STORAGE_DRIVER"`
	MySQLDSN      string        `yaml:"mysql_dsn" envconfig:"MYSQL_DSN"`
	PostgresDSN   string        `yaml:"pg_dsn" envconfig:"PG_DSN"`
	SQLitePath    string        `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	AutoMigrate   bool          `yaml:"auto_migrate" envconfig:"AUTO_MIGRATE"`
	LogLevel      string        `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat     string        `yaml:"log_format" envconfig:"LOG_FORMAT"`
	SMTPAddr      string        `yaml:"smtp_addr" envconfig:"SMTP_ADDR"`
	SMTPFrom      string        `yaml:"smtp_from" envconfig:"SMTP_FROM"`
	APIURL        string        `yaml:"api_url" envconfig:"API_URL"`
	ClientTimeout time.Duration `yaml:"client_timeout" envconfig:"CLIENT_TIMEOUT"`
}

func Default() Config {
	return Config{
		Port:          "8080",
		StorageDriver: DriverSQLite,
		SQLitePath:    "examcrud.db",
		AutoMigrate:   true,
		LogLevel:      "info",
		LogFormat:     "json",
		SMTPFrom:      "no-reply@examcrud.local",
		APIURL:        "http://localhost:8080",
		ClientTimeout: 10 * time.Second,
	}
}

// Load layers defaults, the YAML file at path (skipped when path is empty),
// a .env file in the working directory and finally the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(err, "parse config file")
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, errors.Wrap(err, "load .env")
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, errors.Wrap(err, "read environment")
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("app_port is required")
	}
	switch c.StorageDriver {
	case DriverMySQL:
		if c.MySQLDSN == "" {
			return errors.New("mysql_dsn is required for the mysql driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("pg_dsn is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite_path is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return errors.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	return nil
}

// DSN returns the connection string of the selected SQL driver, or "" for
// drivers that have none.
func (c Config) DSN() string {
	switch c.StorageDriver {
	case DriverMySQL:
		return c.MySQLDSN
	case DriverPostgres:
		return c.PostgresDSN
	}
	return ""
}

func (c Config) Addr() string {
	return ":" + c.Port
}
