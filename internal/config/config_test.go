package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "/etc/usertables")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, "api", cfg.App.GeneratorSource)
	assert.Equal(t, "./resources", cfg.App.ResourceDir)
	assert.Equal(t, "http://randomuser.ru/api.json", cfg.App.APIURL)
	assert.Equal(t, 10, cfg.App.APITimeoutSeconds)
	assert.Equal(t, DriverNone, cfg.DB.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "usertables-generator", cfg.Logger.ServiceName)
	assert.Equal(t, "development", cfg.Logger.Environment)
	assert.Equal(t, "console", cfg.Logger.Format)

	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "GENERATOR_SOURCE=local\nDB_DRIVER=sqlite\nDB_SQLITE_PATH=/tmp/users.db\nAPP_ENV=production\nHTTP_PORT=9000\n"
	require.NoError(t, afero.WriteFile(fs, "/etc/usertables/app.env", []byte(content), 0o644))

	t.Setenv("HTTP_PORT", "9100")

	cfg, err := Load(fs, "/etc/usertables")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.App.GeneratorSource)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/users.db", cfg.DB.SQLitePath)
	assert.Equal(t, "9100", cfg.App.HTTPPort, "env overrides file")
	// production defaults follow APP_ENV from the file
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.App.GeneratorSource = "file" },
			wantErr: "GeneratorSource",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DB.Driver = "mysql" },
			wantErr: "Driver",
		},
		{
			name:    "bad api url",
			mutate:  func(c *Config) { c.App.APIURL = "not a url" },
			wantErr: "APIURL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.App.APITimeoutSeconds = 0 },
			wantErr: "APITimeoutSeconds",
		},
		{
			name:    "rate limit without redis",
			mutate:  func(c *Config) { c.RateLimit.Enabled = true },
			wantErr: "requires REDIS_ENABLED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(afero.NewMemMapFs(), "/")
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", db.DSN())
}

func TestValidate_IncompleteDatabaseAllowed(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "/")
	require.NoError(t, err)

	cfg.DB.Driver = DriverPostgres
	cfg.DB.Host = ""
	assert.NoError(t, cfg.Validate())

	cfg.DB.Driver = DriverSQLite
	cfg.DB.SQLitePath = ""
	assert.NoError(t, cfg.Validate())
}
