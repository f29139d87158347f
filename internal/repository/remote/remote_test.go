package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/httpx"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRepo(t *testing.T, handler http.Handler) *Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := httpx.NewClient(httpx.Config{
		BaseURL:       srv.URL,
		Timeout:       5 * time.Second,
		RetryAttempts: 1,
	}, discardLogger())
	return NewRepository(client)
}

func TestFindAll(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/movies", r.URL.Path)
		w.Write([]byte(`[
			{"id":"1","title":"Heat","director":"Michael Mann","releaseYear":1995,"genre":"Thriller","rating":8.3,"favorite":true},
			{"id":"2","title":"Ran","director":"Akira Kurosawa","releaseYear":1985,"genre":"Drama","rating":8.2}
		]`))
	}))

	movies, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Heat", movies[0].Title)
	assert.True(t, movies[0].Favorite)
	// Missing favorite on the wire defaults to false
	assert.False(t, movies[1].Favorite)
}

func TestFindAllServerError(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := repo.FindAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch movies")
}

func TestFindByID(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies/42", r.URL.Path)
		w.Write([]byte(`{"id":"42","title":"Heat","director":"Michael Mann","releaseYear":1995,"genre":"Thriller","rating":8.3}`))
	}))

	movie, err := repo.FindByID(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.Equal(t, "42", movie.ID)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	movie, err := repo.FindByID(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, movie)
}

func TestCreateDropsID(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasID := body["id"]
		assert.False(t, hasID)
		assert.Equal(t, "Heat", body["title"])
		assert.Equal(t, false, body["favorite"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"srv-1","title":"Heat","director":"Michael Mann","releaseYear":1995,"genre":"Thriller","rating":8.3,"favorite":false}`))
	}))

	created, err := repo.Create(context.Background(), domain.Movie{
		ID:          "ignored",
		Title:       "Heat",
		Director:    "Michael Mann",
		ReleaseYear: 1995,
		Genre:       "Thriller",
		Rating:      8.3,
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/movies/42", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasID := body["id"]
		assert.False(t, hasID)

		// Server echoing a different ID must not leak through
		w.Write([]byte(`{"id":"other","title":"Heat","director":"Michael Mann","releaseYear":1995,"genre":"Thriller","rating":8.3}`))
	}))

	updated, err := repo.Update(context.Background(), "42", domain.Movie{
		Title: "Heat", Director: "Michael Mann", ReleaseYear: 1995, Genre: "Thriller", Rating: 8.3,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "42", updated.ID)
}

func TestUpdateNotFound(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	updated, err := repo.Update(context.Background(), "x", domain.Movie{Title: "X"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	removed, err := repo.Delete(context.Background(), "42")
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestDeleteNotFound(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	removed, err := repo.Delete(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeleteServerError(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	removed, err := repo.Delete(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, removed)
	assert.Contains(t, err.Error(), "delete movie x")
}

func TestServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := httpx.NewClient(httpx.Config{
		BaseURL:       url,
		Timeout:       time.Second,
		RetryAttempts: 1,
	}, discardLogger())
	repo := NewRepository(client)

	_, err := repo.FindAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}
