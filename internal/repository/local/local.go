// Package local implements the movie repository on top of a durable bbolt
// store. The collection lives in memory and is mirrored into the store after
// every mutation; store failures never fail the calling operation.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/cinelog/cinelog/internal/domain"
)

var bucketMovies = []byte("movies")

// collectionKey is the fixed slot the serialized movie array lives under.
const collectionKey = "collection"

// Repository is the local, durable movie repository. A nil db means
// memory-only mode: the collection starts empty and persistence is a no-op.
type Repository struct {
	db     *bolt.DB
	logger *slog.Logger

	mu     sync.RWMutex // Protects movies
	movies []domain.Movie
}

// New opens (or creates) the bbolt database at path and loads the stored
// collection. An absent, unparsable or empty collection falls back to the
// built-in sample set; parse failures are logged, never returned.
func New(path string, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketMovies)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	r := &Repository{db: db, logger: logger}
	r.movies = r.load()
	return r, nil
}

// NewInMemory creates a repository with no backing store. Unlike the durable
// variant it starts empty rather than seeded with the sample set.
func NewInMemory(logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{logger: logger}
}

// Close releases the underlying database.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// load reads the stored collection, falling back to the sample set.
func (r *Repository) load() []domain.Movie {
	var data []byte
	r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketMovies).Get([]byte(collectionKey)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		r.logger.Debug("no stored collection, using sample movies")
		return SampleMovies()
	}

	var movies []domain.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		r.logger.Warn("failed to parse stored collection, using sample movies", "error", err)
		return SampleMovies()
	}
	if len(movies) == 0 {
		return SampleMovies()
	}
	return movies
}

// persistLocked mirrors the in-memory collection into the store. Write
// failures are logged and swallowed; the in-memory mutation stands either
// way. Callers must hold mu.
func (r *Repository) persistLocked() {
	if r.db == nil {
		return
	}
	data, err := json.Marshal(r.movies)
	if err != nil {
		r.logger.Warn("failed to serialize collection", "error", err)
		return
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMovies).Put([]byte(collectionKey), data)
	})
	if err != nil {
		r.logger.Warn("failed to persist collection", "error", err, "count", len(r.movies))
	}
}

// FindAll returns a copy of the collection in storage order.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Movie, len(r.movies))
	copy(out, r.movies)
	return out, nil
}

// FindByID returns the movie with the given ID, or nil if absent.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.movies {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

// Create appends the movie with a freshly generated local ID and persists.
func (r *Repository) Create(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	movie.ID = newID()
	r.movies = append(r.movies, movie)
	r.persistLocked()
	return movie, nil
}

// Update replaces the stored movie in place, preserving its ID regardless of
// any ID carried in the payload. Returns nil if the ID does not exist.
func (r *Repository) Update(ctx context.Context, id string, movie domain.Movie) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.movies {
		if r.movies[i].ID == id {
			movie.ID = id
			r.movies[i] = movie
			r.persistLocked()
			updated := movie
			return &updated, nil
		}
	}
	return nil, nil
}

// Delete removes the movie and persists. Returns false if the ID is unknown.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.movies {
		if r.movies[i].ID == id {
			r.movies = append(r.movies[:i], r.movies[i+1:]...)
			r.persistLocked()
			return true, nil
		}
	}
	return false, nil
}

// Clear empties the collection and persists.
func (r *Repository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies = nil
	r.persistLocked()
	return nil
}

// Seed replaces the collection with the given list and persists.
func (r *Repository) Seed(ctx context.Context, movies []domain.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies = make([]domain.Movie, len(movies))
	copy(r.movies, movies)
	r.persistLocked()
	return nil
}

// SeedWithSample replaces the collection with the built-in sample set.
func (r *Repository) SeedWithSample(ctx context.Context) error {
	return r.Seed(ctx, SampleMovies())
}

// newID generates a locally assigned ID, visually distinct from
// server-assigned ones: local-<unix millis>-<short random suffix>.
func newID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("local-%d-%s", time.Now().UnixMilli(), suffix)
}
