// Package repository selects and caches the movie repository backend.
package repository

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/httpx"
	"github.com/cinelog/cinelog/internal/repository/local"
	"github.com/cinelog/cinelog/internal/repository/remote"
)

// Factory hands out one repository instance per backend kind and caches it
// until Reset. The HTTP client is shared by every api-backed instance.
type Factory struct {
	cfg    *config.Config
	logger *slog.Logger

	mu     sync.Mutex
	local  domain.MovieRepository
	api    domain.MovieRepository
	client *httpx.Client
}

// NewFactory creates a factory over the given configuration.
func NewFactory(cfg *config.Config, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{cfg: cfg, logger: logger}
}

// Get returns the repository for the given kind, creating it on first use.
// An empty kind defers to the environment policy; unknown explicit kinds
// fall back to the api backend.
func (f *Factory) Get(kind config.RepositoryKind) (domain.MovieRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if kind == "" {
		kind = f.resolve()
	}

	if kind == config.KindLocal {
		if f.local == nil {
			repo, err := local.New(f.cfg.Storage.Path, f.logger)
			if err != nil {
				return nil, fmt.Errorf("failed to create local repository: %w", err)
			}
			f.local = repo
		}
		return f.local, nil
	}

	if f.api == nil {
		if f.client == nil {
			f.client = httpx.NewClient(httpx.Config{
				BaseURL:       f.cfg.API.BaseURL,
				Timeout:       f.cfg.API.Timeout,
				RetryAttempts: f.cfg.API.RetryAttempts,
			}, f.logger)
		}
		f.api = remote.NewRepository(f.client)
	}
	return f.api, nil
}

// resolve applies the environment policy when no explicit kind is requested.
func (f *Factory) resolve() config.RepositoryKind {
	if f.cfg.DevMode && f.cfg.API.BaseURL == "" {
		return config.KindLocal
	}
	if f.cfg.DevMode && f.cfg.Repository.ForceLocal {
		return config.KindLocal
	}
	return config.KindAPI
}

// Set replaces a cached instance, for tests and alternate wiring.
func (f *Factory) Set(kind config.RepositoryKind, repo domain.MovieRepository) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if kind == config.KindLocal {
		f.local = repo
		return
	}
	f.api = repo
}

// Reset drops both cached instances and the shared HTTP client, forcing
// lazy recreation on next access. A closeable local backend is closed.
func (f *Factory) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.local.(io.Closer); ok {
		if err := c.Close(); err != nil {
			f.logger.Warn("failed to close local repository", "error", err)
		}
	}
	f.local = nil
	f.api = nil
	f.client = nil
}
