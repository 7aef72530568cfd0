package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hitkalariya/portfolio-api/internal/model"
	"github.com/hitkalariya/portfolio-api/internal/pkg/response"
	"github.com/hitkalariya/portfolio-api/internal/service"
)

type ContentHandler struct {
	content *service.ContentService
}

func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

func (h *ContentHandler) GetProfile(c *gin.Context) {
	profile, err := h.content.GetProfile(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *ContentHandler) ListProjects(c *gin.Context) {
	featuredOnly := c.Query("featured") == "1"
	projects, err := h.content.ListPublicProjects(c.Request.Context(), featuredOnly)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"projects": projects})
}

func (h *ContentHandler) ListPosts(c *gin.Context) {
	posts, err := h.content.ListPublicPosts(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

func (h *ContentHandler) GetPost(c *gin.Context) {
	post, html, err := h.content.GetPublishedPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"post": post, "html": html})
}

// Admin surface.

func (h *ContentHandler) ListAllProjects(c *gin.Context) {
	projects, err := h.content.ListAllProjects(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"projects": projects})
}

func (h *ContentHandler) GetProjectByID(c *gin.Context) {
	project, err := h.content.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ContentHandler) ListAllPosts(c *gin.Context) {
	posts, err := h.content.ListAllPosts(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

func (h *ContentHandler) GetPostByID(c *gin.Context) {
	post, err := h.content.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *ContentHandler) SaveProfile(c *gin.Context) {
	var profile model.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request data")
		return
	}
	if err := h.content.SaveProfile(c.Request.Context(), &profile); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *ContentHandler) CreateProject(c *gin.Context) {
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request data")
		return
	}
	if err := h.content.CreateProject(c.Request.Context(), &project); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ContentHandler) UpdateProject(c *gin.Context) {
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request data")
		return
	}
	project.ID = c.Param("id")
	if err := h.content.UpdateProject(c.Request.Context(), &project); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ContentHandler) DeleteProject(c *gin.Context) {
	if err := h.content.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *ContentHandler) CreatePost(c *gin.Context) {
	var post model.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request data")
		return
	}
	if err := h.content.CreatePost(c.Request.Context(), &post); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *ContentHandler) UpdatePost(c *gin.Context) {
	var post model.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request data")
		return
	}
	post.ID = c.Param("id")
	if err := h.content.UpdatePost(c.Request.Context(), &post); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *ContentHandler) DeletePost(c *gin.Context) {
	if err := h.content.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
