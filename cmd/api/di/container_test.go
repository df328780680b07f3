package di

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"usertables-generator/internal/config"
	"usertables-generator/internal/usecase/generator"
	"usertables-generator/internal/usecase/user"
	pkgerrors "usertables-generator/pkg/errors"
	"usertables-generator/pkg/inn"
)

var testResources = map[string]string{
	generator.CountriesResource:         "Россия\nБеларусь\n",
	generator.MaleNamesResource:         "Иван\n",
	generator.FemaleNamesResource:       "Мария\n",
	generator.MaleSurnamesResource:      "Петров\n",
	generator.FemaleSurnamesResource:    "Петрова\n",
	generator.MalePatronymicsResource:   "Сергеевич\n",
	generator.FemalePatronymicsResource: "Сергеевна\n",
	generator.RegionsResource:           "Московская область\n",
	generator.CitiesResource:            "Химки\n",
	generator.StreetsResource:           "Ленина\n",
}

func writeResources(t *testing.T) string {
	dir := t.TempDir()
	for name, content := range testResources {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.Load(afero.NewMemMapFs(), "/")
	require.NoError(t, err)
	cfg.App.ResourceDir = writeResources(t)
	return cfg
}

func TestNewContainer_LocalWithSQLite(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.GeneratorSource = generator.SourceLocal
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.SQLitePath = filepath.Join(t.TempDir(), "users.db")

	c, err := NewContainer(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NotNil(t, c.Store)
	assert.Nil(t, c.RedisClient)

	ctx := context.Background()
	resp, err := c.UserUC.GenerateUsers(ctx, user.GenerateUsersRequest{Count: 2})
	require.NoError(t, err)
	assert.True(t, resp.Persisted)
	for _, u := range resp.Users {
		assert.NotZero(t, u.ID)
		assert.True(t, inn.Validate(u.TaxID))
	}

	list, err := c.UserUC.ListUsers(ctx, user.ListUsersRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Pagination.Total)
}

func TestNewContainer_PersistenceDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.GeneratorSource = generator.SourceLocal

	c, err := NewContainer(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Nil(t, c.Store)
	assert.Nil(t, c.sink())

	resp, err := c.UserUC.GenerateUsers(context.Background(), user.GenerateUsersRequest{Count: 1})
	require.NoError(t, err)
	assert.False(t, resp.Persisted)
	assert.Zero(t, resp.Users[0].ID)

	_, err = c.UserUC.ListUsers(context.Background(), user.ListUsersRequest{})
	assert.ErrorIs(t, err, pkgerrors.ErrPersistenceDisabled)
}

func testAPIServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"fname":"Иван","lname":"Петров","gender":"male","date":479001600}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewContainer_UnusableDatabaseDowngrades(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{
			name: "sqlite directory missing",
			mutate: func(c *config.Config) {
				c.DB.Driver = config.DriverSQLite
				c.DB.SQLitePath = filepath.Join(t.TempDir(), "missing", "users.db")
			},
		},
		{
			name: "postgres without host",
			mutate: func(c *config.Config) {
				c.DB.Driver = config.DriverPostgres
				c.DB.Host = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.App.GeneratorSource = generator.SourceAPI
			cfg.App.APIURL = testAPIServer(t).URL
			tt.mutate(cfg)

			c, err := NewGeneratorContainer(cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			t.Cleanup(func() { _ = c.Close() })
			assert.Nil(t, c.Store)

			u, err := c.Generator.GenerateUser(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Иван", u.Name)
			assert.Zero(t, u.ID)
			assert.True(t, inn.Validate(u.TaxID))
		})
	}
}

func TestNewContainer_APISource(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.APIURL = testAPIServer(t).URL

	c, err := NewGeneratorContainer(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	u, err := c.Generator.GenerateUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Иван", u.Name)
	assert.Equal(t, "07-03-1985", u.DateOfBirth.String())
}

func TestNewContainer_MissingResources(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.ResourceDir = t.TempDir()

	_, err := NewGeneratorContainer(cfg, zaptest.NewLogger(t))
	require.Error(t, err)

	var constructionErr *pkgerrors.ConstructionError
	assert.True(t, errors.As(err, &constructionErr))
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.GeneratorSource = "file"

	_, err := NewContainer(cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "config validation failed"))
}
