package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hitkalariya/portfolio-api/internal/pkg/response"
	"github.com/hitkalariya/portfolio-api/internal/service"
)

type ContactHandler struct {
	contacts *service.ContactService
	limiter  RateChecker
}

func NewContactHandler(contacts *service.ContactService, limiter RateChecker) *ContactHandler {
	return &ContactHandler{contacts: contacts, limiter: limiter}
}

// Submit handles POST /api/contact. Same ordering as the chat endpoint:
// validation (including the honeypot) runs before the rate check so bots
// never consume the visitor's budget.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid form data")
		return
	}
	if err := h.contacts.Validate(&req); err != nil {
		handleError(c, err)
		return
	}

	limit := h.limiter.Check(c.ClientIP())
	if !limit.Allowed {
		response.Error(c, http.StatusTooManyRequests, "too many requests, please try again later")
		return
	}

	if err := h.contacts.Submit(c.Request.Context(), &req); err != nil {
		handleError(c, err)
		return
	}
	c.Header("X-RateLimit-Remaining", strconv.Itoa(limit.Remaining))
	response.Success(c, gin.H{"message": "Message sent successfully!"})
}
