package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/repository/local"
	"github.com/cinelog/cinelog/internal/repository/remote"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "cinelog.db")
	cfg.API.BaseURL = "http://localhost:9999"
	cfg.API.Timeout = time.Second
	return cfg
}

func TestPolicyDevModeNoAPIURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.DevMode = true
	cfg.API.BaseURL = ""

	f := NewFactory(cfg, discardLogger())
	defer f.Reset()

	repo, err := f.Get("")
	require.NoError(t, err)
	assert.IsType(t, &local.Repository{}, repo)
}

func TestPolicyDevModeForceLocal(t *testing.T) {
	cfg := testConfig(t)
	cfg.DevMode = true
	cfg.Repository.ForceLocal = true

	f := NewFactory(cfg, discardLogger())
	defer f.Reset()

	repo, err := f.Get("")
	require.NoError(t, err)
	assert.IsType(t, &local.Repository{}, repo)
}

func TestPolicyDefaultsToAPI(t *testing.T) {
	f := NewFactory(testConfig(t), discardLogger())
	defer f.Reset()

	repo, err := f.Get("")
	require.NoError(t, err)
	assert.IsType(t, &remote.Repository{}, repo)
}

func TestExplicitKindOverridesPolicy(t *testing.T) {
	// Policy would say api; explicit local wins.
	f := NewFactory(testConfig(t), discardLogger())
	defer f.Reset()

	repo, err := f.Get(config.KindLocal)
	require.NoError(t, err)
	assert.IsType(t, &local.Repository{}, repo)
}

func TestUnknownKindFallsBackToAPI(t *testing.T) {
	f := NewFactory(testConfig(t), discardLogger())
	defer f.Reset()

	repo, err := f.Get("mongo")
	require.NoError(t, err)
	assert.IsType(t, &remote.Repository{}, repo)
}

func TestSingletonPerKind(t *testing.T) {
	f := NewFactory(testConfig(t), discardLogger())
	defer f.Reset()

	first, err := f.Get(config.KindLocal)
	require.NoError(t, err)
	second, err := f.Get(config.KindLocal)
	require.NoError(t, err)
	assert.Same(t, first, second)

	api1, err := f.Get(config.KindAPI)
	require.NoError(t, err)
	api2, err := f.Get(config.KindAPI)
	require.NoError(t, err)
	assert.Same(t, api1, api2)
}

func TestSetReplacesCachedInstance(t *testing.T) {
	f := NewFactory(testConfig(t), discardLogger())
	defer f.Reset()

	fake := local.NewInMemory(discardLogger())
	f.Set(config.KindLocal, fake)

	repo, err := f.Get(config.KindLocal)
	require.NoError(t, err)
	assert.Same(t, domain.MovieRepository(fake), repo)
}

func TestResetForcesRecreation(t *testing.T) {
	f := NewFactory(testConfig(t), discardLogger())

	first, err := f.Get(config.KindLocal)
	require.NoError(t, err)

	// Mutate so we can tell the recreated instance loaded from the store
	_, err = first.Create(context.Background(), domain.Movie{
		Title: "X", Director: "Y", Genre: "Drama", ReleaseYear: 2020, Rating: 7.5,
	})
	require.NoError(t, err)

	f.Reset()

	second, err := f.Get(config.KindLocal)
	require.NoError(t, err)
	defer f.Reset()
	assert.NotSame(t, first, second)

	all, err := second.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, all)
}
