package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_LayersOverrideInOrder(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "examcrud.yml", `
app_port: "9000"
storage_driver: postgres
pg_dsn: postgres://yaml
log_level: debug
client_timeout: 3s
`)
	writeFile(t, dir, ".env", "LOG_LEVEL=warn\nSMTP_ADDR=localhost:1025\n")
	t.Setenv("APP_PORT", "9100")
	// godotenv writes to the process environment.
	t.Cleanup(func() {
		_ = os.Unsetenv("LOG_LEVEL")
		_ = os.Unsetenv("SMTP_ADDR")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9100", cfg.Port)
	require.Equal(t, DriverPostgres, cfg.StorageDriver)
	require.Equal(t, "postgres://yaml", cfg.PostgresDSN)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "localhost:1025", cfg.SMTPAddr)
	require.Equal(t, 3*time.Second, cfg.ClientTimeout)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"memory", func(c *Config) { c.StorageDriver = DriverMemory }, true},
		{"mysql without dsn", func(c *Config) { c.StorageDriver = DriverMySQL }, false},
		{"mysql with dsn", func(c *Config) { c.StorageDriver = DriverMySQL; c.MySQLDSN = "u:p@tcp(db)/crud" }, true},
		{"postgres without dsn", func(c *Config) { c.StorageDriver = DriverPostgres }, false},
		{"unknown driver", func(c *Config) { c.StorageDriver = "oracle" }, false},
		{"empty port", func(c *Config) { c.Port = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if tc.ok {
				require.NoError(t, cfg.Validate())
			} else {
				require.Error(t, cfg.Validate())
			}
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := Default()
	cfg.MySQLDSN = "u:p@tcp(db)/crud"
	cfg.PostgresDSN = "postgres://u:p@db/crud"
	require.Empty(t, cfg.DSN())

	cfg.StorageDriver = DriverMySQL
	require.Equal(t, "u:p@tcp(db)/crud", cfg.DSN())
	cfg.StorageDriver = DriverPostgres
	require.Equal(t, "postgres://u:p@db/crud", cfg.DSN())
	require.Equal(t, ":8080", cfg.Addr())
}
