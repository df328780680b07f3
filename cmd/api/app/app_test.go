package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"usertables-generator/cmd/api/di"
	"usertables-generator/cmd/api/server"
	"usertables-generator/internal/config"
	"usertables-generator/internal/usecase/generator"
)

func newTestApp(t *testing.T) *App {
	dir := t.TempDir()
	for _, name := range []string{
		generator.CountriesResource,
		generator.MaleNamesResource, generator.FemaleNamesResource,
		generator.MaleSurnamesResource, generator.FemaleSurnamesResource,
		generator.MalePatronymicsResource, generator.FemalePatronymicsResource,
		generator.RegionsResource, generator.CitiesResource, generator.StreetsResource,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644))
	}

	cfg, err := config.Load(afero.NewMemMapFs(), "/")
	require.NoError(t, err)
	cfg.App.HTTPPort = "0"
	cfg.App.ResourceDir = dir
	cfg.App.GeneratorSource = generator.SourceLocal
	cfg.App.ShutdownTimeoutSeconds = 5

	l := zaptest.NewLogger(t)
	c, err := di.NewContainer(cfg, l)
	require.NoError(t, err)

	return &App{
		Config:    cfg,
		Logger:    l,
		Server:    server.New(cfg, l, c.GinHandler, c.RateLimiter),
		Container: c,
	}
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestInitLogger(t *testing.T) {
	cfg, err := config.Load(afero.NewMemMapFs(), "/")
	require.NoError(t, err)
	cfg.Logger.OutputPath = "stderr"

	l, err := InitLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, l)
}
