package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hitkalariya/portfolio-api/internal/config"
	"github.com/hitkalariya/portfolio-api/internal/service"
)

const reposPayload = `[
	{"name":"self","full_name":"hitkalariya/hitkalariya","description":"Profile readme","stargazers_count":50,"fork":false,"updated_at":"2026-08-01T00:00:00Z"},
	{"name":"forked","full_name":"hitkalariya/forked","description":"A fork","stargazers_count":40,"fork":true,"updated_at":"2026-08-01T00:00:00Z"},
	{"name":"no-desc","full_name":"hitkalariya/no-desc","description":"","stargazers_count":30,"fork":false,"updated_at":"2026-08-01T00:00:00Z"},
	{"name":"older","full_name":"hitkalariya/older","description":"Older project","stargazers_count":5,"fork":false,"updated_at":"2026-01-01T00:00:00Z"},
	{"name":"newer","full_name":"hitkalariya/newer","description":"Newer project","stargazers_count":5,"fork":false,"updated_at":"2026-07-01T00:00:00Z"},
	{"name":"popular","full_name":"hitkalariya/popular","description":"Popular project","stargazers_count":100,"fork":false,"updated_at":"2025-01-01T00:00:00Z"}
]`

func TestGitHubServiceFiltersAndSortsRepos(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.Equal(t, "/users/hitkalariya/repos", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reposPayload))
	}))
	defer server.Close()

	svc := service.NewGitHubService(config.GitHubConfig{
		Token:         "token-123",
		Username:      "hitkalariya",
		CacheTTLHours: 1,
	}, server.Client(), server.URL)

	repos, err := svc.ListRepos(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.Name)
	}
	// Forks, empty descriptions and the profile readme repo are dropped;
	// stars sort first, recency breaks ties.
	require.Equal(t, []string{"popular", "newer", "older"}, names)

	// Second call is served from cache.
	_, err = svc.ListRepos(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, hits)
}

func TestGitHubServiceMissingCredentialsReturnsEmptyList(t *testing.T) {
	svc := service.NewGitHubService(config.GitHubConfig{CacheTTLHours: 1}, nil, "")

	repos, err := svc.ListRepos(context.Background())
	require.NoError(t, err)
	require.Empty(t, repos)
}

func TestGitHubServiceUpstreamErrorIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer server.Close()

	svc := service.NewGitHubService(config.GitHubConfig{
		Token:         "token-123",
		Username:      "hitkalariya",
		CacheTTLHours: 1,
	}, server.Client(), server.URL)

	_, err := svc.ListRepos(context.Background())
	require.Error(t, err)
}
