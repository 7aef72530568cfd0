package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hitkalariya/portfolio-api/internal/pkg/response"
	"github.com/hitkalariya/portfolio-api/internal/service"
)

type GitHubHandler struct {
	github *service.GitHubService
}

func NewGitHubHandler(github *service.GitHubService) *GitHubHandler {
	return &GitHubHandler{github: github}
}

func (h *GitHubHandler) ListRepos(c *gin.Context) {
	repos, err := h.github.ListRepos(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to fetch repositories")
		return
	}
	// Repos change rarely; let CDNs hold the response for six hours.
	c.Header("Cache-Control", "public, s-maxage=21600, stale-while-revalidate=3600")
	response.Success(c, gin.H{"repos": repos})
}
