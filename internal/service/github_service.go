package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hitkalariya/portfolio-api/internal/config"
	"github.com/hitkalariya/portfolio-api/internal/model"
)

const (
	defaultGitHubAPIBase = "https://api.github.com"
	maxReposReturned     = 12
	reposCacheKey        = "repos"
)

// GitHubService lists the owner's public repositories for the projects
// page. Results are cached for the configured TTL to stay well inside the
// API quota.
type GitHubService struct {
	cfg     config.GitHubConfig
	client  *http.Client
	baseURL string
	cache   *expirable.LRU[string, []*model.GitHubRepo]
}

func NewGitHubService(cfg config.GitHubConfig, client *http.Client, baseURL string) *GitHubService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultGitHubAPIBase
	}
	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour
	return &GitHubService{
		cfg:     cfg,
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   expirable.NewLRU[string, []*model.GitHubRepo](4, nil, ttl),
	}
}

// ListRepos returns the top repositories sorted by stars, then recency.
// Missing credentials yield an empty list rather than an error so the
// projects page renders without the GitHub section.
func (s *GitHubService) ListRepos(ctx context.Context) ([]*model.GitHubRepo, error) {
	if s.cfg.Username == "" || s.cfg.Token == "" {
		logutil.GetLogger(ctx).Warn("github credentials not configured")
		return []*model.GitHubRepo{}, nil
	}
	if cached, ok := s.cache.Get(reposCacheKey); ok {
		return cached, nil
	}

	repos, err := s.fetch(ctx)
	if err != nil {
		logutil.GetLogger(ctx).Error("github fetch failed", zap.Error(err))
		return nil, err
	}

	repos = filterRepos(repos, s.cfg.Username)
	sort.SliceStable(repos, func(i, j int) bool {
		if repos[i].StargazersCount != repos[j].StargazersCount {
			return repos[i].StargazersCount > repos[j].StargazersCount
		}
		return repos[i].UpdatedAt > repos[j].UpdatedAt
	})
	if len(repos) > maxReposReturned {
		repos = repos[:maxReposReturned]
	}

	s.cache.Add(reposCacheKey, repos)
	return repos, nil
}

func (s *GitHubService) fetch(ctx context.Context) ([]*model.GitHubRepo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=100", s.baseURL, s.cfg.Username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	req.Header.Set("User-Agent", "Portfolio-App")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("github request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	var repos []*model.GitHubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// filterRepos drops forks, repositories without a description, and the
// profile readme repository (username/username).
func filterRepos(repos []*model.GitHubRepo, username string) []*model.GitHubRepo {
	selfRepo := username + "/" + username
	kept := make([]*model.GitHubRepo, 0, len(repos))
	for _, repo := range repos {
		if repo.Fork || repo.Description == "" || repo.FullName == selfRepo {
			continue
		}
		kept = append(kept, repo)
	}
	return kept
}
