package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hitkalariya/portfolio-api/internal/pkg/response"
	"github.com/hitkalariya/portfolio-api/internal/uploads"
)

type UploadHandler struct {
	signer *uploads.Signer
}

func NewUploadHandler(signer *uploads.Signer) *UploadHandler {
	return &UploadHandler{signer: signer}
}

type signRequest struct {
	Folder      string `json:"folder"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// Sign issues a presigned upload URL for the admin frontend. Requires an
// admin token; the signer is nil when uploads are not configured.
func (h *UploadHandler) Sign(c *gin.Context) {
	if h.signer == nil {
		response.Error(c, http.StatusInternalServerError, "uploads not configured")
		return
	}
	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Filename == "" {
		response.Error(c, http.StatusBadRequest, "invalid request data")
		return
	}
	signed, err := h.signer.SignUpload(c.Request.Context(), req.Folder, req.Filename, req.ContentType)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, signed)
}
