package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientSendsAuthAndAcceptHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Token: "secret"}, zap.NewNop())
	_, err := client.User(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/vnd.github+json", gotAccept)
}

func TestClientNoTokenOmitsAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, zap.NewNop())
	_, err := client.User(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientReposQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, zap.NewNop())
	_, err := client.Repos(context.Background(), "octocat", 100)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "per_page=100")
	assert.Contains(t, gotQuery, "sort=updated")
	assert.Contains(t, gotQuery, "type=all")
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, zap.NewNop())
	_, err := client.User(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "rate limit")
}

func TestReplayCacheServesSecondRequest(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"login":"octocat","name":"Octo Cat"}`))
	}))
	defer srv.Close()

	cfg := ClientConfig{BaseURL: srv.URL, CacheDir: t.TempDir()}

	client := NewClient(cfg, zap.NewNop())
	first, err := client.User(context.Background(), "octocat")
	require.NoError(t, err)

	// A fresh client pointed at the same cache dir never hits the network.
	replay := NewClient(cfg, zap.NewNop())
	second, err := replay.User(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first, second)
}

func TestReplayCacheKeysIncludeParams(t *testing.T) {
	cache := NewReplayCache(t.TempDir())

	require.NoError(t, cache.Put("/users/octocat/repos", url.Values{"per_page": {"100"}}, []byte(`[1]`)))
	require.NoError(t, cache.Put("/users/octocat/repos", url.Values{"per_page": {"50"}}, []byte(`[2]`)))

	body, ok := cache.Get("/users/octocat/repos", url.Values{"per_page": {"100"}})
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(body))

	_, ok = cache.Get("/users/octocat/repos", url.Values{"per_page": {"25"}})
	assert.False(t, ok)
}
