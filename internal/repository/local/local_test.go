package local

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/cinelog/cinelog/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "cinelog.db"), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Clear(context.Background()))
	return repo
}

func testMovie() domain.Movie {
	return domain.Movie{
		Title:       "X",
		Director:    "Y",
		Genre:       "Drama",
		ReleaseYear: 2020,
		Rating:      7.5,
	}
}

var localIDPattern = regexp.MustCompile(`^local-\d+-[0-9a-f]{8}$`)

func TestCreateThenList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testMovie())
	require.NoError(t, err)
	assert.Regexp(t, localIDPattern, created.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created, all[0])
}

func TestRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testMovie())
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created, *found)

	removed, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	found, err = repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindByIDAbsent(t *testing.T) {
	repo := newTestRepo(t)

	found, err := repo.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testMovie())
	require.NoError(t, err)

	payload := created
	payload.ID = "different"
	payload.Title = "Renamed"

	updated, err := repo.Update(ctx, created.ID, payload)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Title)

	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, created.ID, stored.ID)
}

func TestUpdateAbsent(t *testing.T) {
	repo := newTestRepo(t)

	updated, err := repo.Update(context.Background(), "nope", testMovie())
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteAbsent(t *testing.T) {
	repo := newTestRepo(t)

	removed, err := repo.Delete(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinelog.db")
	ctx := context.Background()

	repo, err := New(path, discardLogger())
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctx))

	created, err := repo.Create(ctx, testMovie())
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := New(path, discardLogger())
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created, *found)
}

func TestFreshStoreFallsBackToSample(t *testing.T) {
	repo, err := New(filepath.Join(t.TempDir(), "cinelog.db"), discardLogger())
	require.NoError(t, err)
	defer repo.Close()

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SampleMovies(), all)
}

func TestCorruptStoreFallsBackToSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinelog.db")

	db, err := bolt.Open(path, 0600, nil)
	require.NoError(t, err)
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketMovies)
		if err != nil {
			return err
		}
		return b.Put([]byte(collectionKey), []byte("{not json"))
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo, err := New(path, discardLogger())
	require.NoError(t, err)
	defer repo.Close()

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SampleMovies(), all)
}

func TestStoredExtraFieldsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinelog.db")

	stored := `[{"id":"abc","title":"X","director":"Y","releaseYear":2020,"genre":"Drama","rating":7.5,"createdAt":"2024-01-01T00:00:00Z"}]`
	db, err := bolt.Open(path, 0600, nil)
	require.NoError(t, err)
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketMovies)
		if err != nil {
			return err
		}
		return b.Put([]byte(collectionKey), []byte(stored))
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo, err := New(path, discardLogger())
	require.NoError(t, err)
	defer repo.Close()

	found, err := repo.FindByID(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "X", found.Title)
	assert.False(t, found.Favorite)
}

func TestInMemoryStartsEmpty(t *testing.T) {
	repo := NewInMemory(discardLogger())
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	created, err := repo.Create(ctx, testMovie())
	require.NoError(t, err)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created, all[0])
}

func TestSeedAndClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []domain.Movie{
		{ID: "a", Title: "A", Director: "D", Genre: "Drama", ReleaseYear: 2000, Rating: 5},
		{ID: "b", Title: "B", Director: "D", Genre: "Drama", ReleaseYear: 2001, Rating: 6},
	}
	require.NoError(t, repo.Seed(ctx, seed))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, all)

	require.NoError(t, repo.SeedWithSample(ctx))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, SampleMovies(), all)

	require.NoError(t, repo.Clear(ctx))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSampleMoviesReturnsCopy(t *testing.T) {
	first := SampleMovies()
	first[0].Title = "mutated"
	assert.NotEqual(t, first[0].Title, SampleMovies()[0].Title)
}
