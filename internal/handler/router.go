package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hitkalariya/portfolio-api/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Chat      *ChatHandler
	Contact   *ContactHandler
	Content   *ContentHandler
	GitHub    *GitHubHandler
	Uploads   *UploadHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/login", deps.Auth.Login)

	api.POST("/ai/chat", deps.Chat.Chat)
	api.POST("/contact", deps.Contact.Submit)
	api.GET("/github/repos", deps.GitHub.ListRepos)

	api.GET("/profile", deps.Content.GetProfile)
	api.GET("/projects", deps.Content.ListProjects)
	api.GET("/posts", deps.Content.ListPosts)
	api.GET("/posts/:slug", deps.Content.GetPost)

	uploads := api.Group("/uploads")
	uploads.Use(middleware.JWTAuth(deps.JWTSecret), middleware.AdminOnly())
	uploads.POST("/sign", deps.Uploads.Sign)

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(deps.JWTSecret), middleware.AdminOnly())
	admin.PUT("/profile", deps.Content.SaveProfile)
	admin.GET("/projects", deps.Content.ListAllProjects)
	admin.GET("/projects/:id", deps.Content.GetProjectByID)
	admin.GET("/posts", deps.Content.ListAllPosts)
	admin.GET("/posts/:id", deps.Content.GetPostByID)
	admin.POST("/projects", deps.Content.CreateProject)
	admin.PUT("/projects/:id", deps.Content.UpdateProject)
	admin.DELETE("/projects/:id", deps.Content.DeleteProject)
	admin.POST("/posts", deps.Content.CreatePost)
	admin.PUT("/posts/:id", deps.Content.UpdatePost)
	admin.DELETE("/posts/:id", deps.Content.DeletePost)
}
