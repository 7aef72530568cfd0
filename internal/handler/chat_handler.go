package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hitkalariya/portfolio-api/internal/ai"
	"github.com/hitkalariya/portfolio-api/internal/pkg/response"
	"github.com/hitkalariya/portfolio-api/internal/ratelimit"
)

const maxChatMessageChars = 1000

// ChatResponder produces the reply stream for one user message.
type ChatResponder interface {
	Respond(ctx context.Context, message string) (ai.Stream, error)
}

// RateChecker accounts one request for an identifier.
type RateChecker interface {
	Check(identifier string) ratelimit.Result
}

type ChatHandler struct {
	responder ChatResponder
	limiter   RateChecker
}

func NewChatHandler(responder ChatResponder, limiter RateChecker) *ChatHandler {
	return &ChatHandler{responder: responder, limiter: limiter}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/ai/chat. Per request: parse and validate, then
// rate-check by client IP, then dispatch and stream. Invalid input never
// touches the limiter or the responder. The first chunk is pulled before
// the response is committed: upstream SDKs defer credential and quota
// errors to the first read, and those must surface as a 500, not as an
// empty 200. Once the first byte has been written the response is
// committed; a mid-stream upstream failure just ends the body early and
// the client is responsible for treating an unterminated stream as an
// error.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request data")
		return
	}
	if length := len([]rune(req.Message)); length == 0 || length > maxChatMessageChars {
		response.Error(c, http.StatusBadRequest, "invalid request data")
		return
	}

	limit := h.limiter.Check(c.ClientIP())
	if !limit.Allowed {
		response.Error(c, http.StatusTooManyRequests, "too many requests, please try again later")
		return
	}

	ctx := c.Request.Context()
	stream, err := h.responder.Respond(ctx, req.Message)
	if err != nil {
		logutil.GetLogger(ctx).Error("chat dispatch failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}
	defer stream.Close()

	first, err := stream.Recv()
	if err != nil && !errors.Is(err, io.EOF) {
		logutil.GetLogger(ctx).Error("chat stream failed before first chunk", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("X-RateLimit-Remaining", strconv.Itoa(limit.Remaining))
	c.Status(http.StatusOK)

	if errors.Is(err, io.EOF) {
		return
	}
	if _, err := c.Writer.WriteString(first); err != nil {
		logutil.GetLogger(ctx).Warn("chat client went away", zap.Error(err))
		return
	}
	c.Writer.Flush()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			logutil.GetLogger(ctx).Error("chat stream terminated", zap.Error(err))
			return
		}
		if _, err := c.Writer.WriteString(chunk); err != nil {
			logutil.GetLogger(ctx).Warn("chat client went away", zap.Error(err))
			return
		}
		c.Writer.Flush()
	}
}
