package service_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hitkalariya/portfolio-api/internal/ai"
	"github.com/hitkalariya/portfolio-api/internal/service"
)

type captureResponder struct {
	calls  int
	prompt string
	ctx    context.Context
}

func (r *captureResponder) Respond(ctx context.Context, prompt string) (ai.Stream, error) {
	r.calls++
	r.prompt = prompt
	r.ctx = ctx
	return &emptyStream{}, nil
}

type emptyStream struct{}

func (s *emptyStream) Recv() (string, error) { return "", io.EOF }
func (s *emptyStream) Close()                {}

func newChatService(real, mock ai.Responder, mockMode bool, timeout time.Duration) *service.ChatService {
	builder := service.NewContextBuilder(&fakeContentStore{profile: testProfile()}, "Hit Kalariya")
	return service.NewChatService(builder, real, mock, mockMode, timeout)
}

func TestChatServicePromptLayout(t *testing.T) {
	mock := &captureResponder{}
	svc := newChatService(nil, mock, false, 0)

	stream, err := svc.Respond(context.Background(), "what do you build?")
	require.NoError(t, err)
	stream.Close()

	require.True(t, strings.HasPrefix(mock.prompt, "You are an AI assistant for Hit Kalariya's portfolio website."))
	require.True(t, strings.HasSuffix(mock.prompt, "\n\nUser question: what do you build?\n\nProvide a helpful and informative response:"))
}

func TestChatServiceFallsBackToMockWithoutRealResponder(t *testing.T) {
	mock := &captureResponder{}
	svc := newChatService(nil, mock, false, 0)

	stream, err := svc.Respond(context.Background(), "hi")
	require.NoError(t, err)
	stream.Close()
	require.Equal(t, 1, mock.calls)
}

func TestChatServiceMockModeBypassesRealResponder(t *testing.T) {
	real := &captureResponder{}
	mock := &captureResponder{}
	svc := newChatService(real, mock, true, 0)

	stream, err := svc.Respond(context.Background(), "hi")
	require.NoError(t, err)
	stream.Close()

	require.Zero(t, real.calls)
	require.Equal(t, 1, mock.calls)
}

func TestChatServiceAppliesUpstreamDeadline(t *testing.T) {
	mock := &captureResponder{}
	svc := newChatService(nil, mock, false, 30*time.Second)

	stream, err := svc.Respond(context.Background(), "hi")
	require.NoError(t, err)
	defer stream.Close()

	deadline, ok := mock.ctx.Deadline()
	require.True(t, ok, "stream context must carry the upstream deadline")
	require.WithinDuration(t, time.Now().Add(30*time.Second), deadline, 5*time.Second)
}
