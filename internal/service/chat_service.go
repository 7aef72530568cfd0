package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hitkalariya/portfolio-api/internal/ai"
)

// ChatService assembles the prompt for one user message and dispatches it
// to either the real generative responder or the canned mock. The server
// keeps no conversation history; every request stands alone.
type ChatService struct {
	builder  *ContextBuilder
	real     ai.Responder
	mock     ai.Responder
	mockMode bool
	timeout  time.Duration
}

func NewChatService(builder *ContextBuilder, real, mock ai.Responder, mockMode bool, timeout time.Duration) *ChatService {
	return &ChatService{
		builder:  builder,
		real:     real,
		mock:     mock,
		mockMode: mockMode,
		timeout:  timeout,
	}
}

// Respond returns the reply stream for one message. The caller owns the
// stream and must Close it; Close also releases the upstream deadline.
func (s *ChatService) Respond(ctx context.Context, message string) (ai.Stream, error) {
	responder := s.real
	usingMock := s.mockMode || s.real == nil
	if usingMock {
		responder = s.mock
	}

	systemContext := s.builder.Build(ctx)
	prompt := fmt.Sprintf("%s\n\nUser question: %s\n\nProvide a helpful and informative response:", systemContext, message)

	// The deadline covers the whole drain, not just the initial call. A
	// stalled upstream with no terminal signal would otherwise hold the
	// request open forever.
	streamCtx := ctx
	cancel := context.CancelFunc(func() {})
	if s.timeout > 0 {
		streamCtx, cancel = context.WithTimeout(ctx, s.timeout)
	}

	stream, err := responder.Respond(streamCtx, prompt)
	if err != nil {
		cancel()
		logutil.GetLogger(ctx).Error("responder dispatch failed", zap.Bool("mock", usingMock), zap.Error(err))
		return nil, err
	}
	return &cancelStream{Stream: stream, cancel: cancel}, nil
}

type cancelStream struct {
	ai.Stream
	cancel context.CancelFunc
}

func (s *cancelStream) Close() {
	s.Stream.Close()
	s.cancel()
}
