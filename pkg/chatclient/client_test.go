package chatclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hitkalariya/portfolio-api/pkg/chatclient"
)

func streamingServer(t *testing.T, chunks []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		flusher := w.(http.Flusher)
		for _, chunk := range chunks {
			_, _ = w.Write([]byte(chunk))
			flusher.Flush()
		}
	}))
}

func TestSendAppendsStreamedReply(t *testing.T) {
	server := streamingServer(t, []string{"Hello", " there", "!"})
	defer server.Close()

	var received []string
	client := chatclient.New(server.URL, chatclient.WithChunkHandler(func(chunk string) {
		received = append(received, chunk)
	}))

	require.NoError(t, client.Send(context.Background(), "hi"))
	require.Equal(t, chatclient.StateIdle, client.State())

	messages := client.Messages()
	require.Len(t, messages, 2)
	require.Equal(t, chatclient.RoleUser, messages[0].Role)
	require.Equal(t, "hi", messages[0].Content)
	require.Equal(t, chatclient.RoleAssistant, messages[1].Role)
	require.Equal(t, "Hello there!", messages[1].Content)
	require.NotEmpty(t, messages[0].ID)
	require.NotEqual(t, messages[0].ID, messages[1].ID)
	require.Equal(t, "Hello there!", joinChunks(received))
}

func joinChunks(chunks []string) string {
	var out string
	for _, chunk := range chunks {
		out += chunk
	}
	return out
}

func TestSendRejectsConcurrentRequests(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-release
		_, _ = w.Write([]byte("done"))
	}))
	defer server.Close()

	client := chatclient.New(server.URL)

	done := make(chan error, 1)
	go func() { done <- client.Send(context.Background(), "first") }()

	require.Eventually(t, func() bool {
		return client.State() == chatclient.StateStreaming
	}, 2*time.Second, 10*time.Millisecond)

	require.ErrorIs(t, client.Send(context.Background(), "second"), chatclient.ErrBusy)
	require.Len(t, client.Messages(), 2, "rejected send must not touch the conversation")

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, chatclient.StateIdle, client.State())
}

func TestSendErrorStatePreservesHistoryAndAllowsResend(t *testing.T) {
	failing := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"too many requests, please try again later"}`))
			return
		}
		_, _ = w.Write([]byte("welcome back"))
	}))
	defer server.Close()

	client := chatclient.New(server.URL)

	err := client.Send(context.Background(), "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "too many requests")
	require.Equal(t, chatclient.StateError, client.State())
	require.Len(t, client.Messages(), 1, "failed send keeps the user message")

	// Manual resend from the error state.
	failing = false
	require.NoError(t, client.Send(context.Background(), "hi again"))
	require.Equal(t, chatclient.StateIdle, client.State())
	require.Nil(t, client.LastError())

	messages := client.Messages()
	require.Len(t, messages, 3)
	require.Equal(t, "welcome back", messages[2].Content)
}

func TestSendTreatsTruncatedStreamAsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than are sent; the client sees the
		// connection end without a clean terminal signal.
		w.Header().Set("Content-Length", "100")
		_, _ = w.Write([]byte("partial reply"))
	}))
	defer server.Close()

	client := chatclient.New(server.URL)

	err := client.Send(context.Background(), "hi")
	require.ErrorIs(t, err, chatclient.ErrIncomplete)
	require.Equal(t, chatclient.StateError, client.State())

	messages := client.Messages()
	require.Len(t, messages, 2)
	require.Equal(t, "partial reply", messages[1].Content, "partial content stays visible, flagged as failed")
}

func TestSendNetworkFailureEntersErrorState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := chatclient.New(server.URL)

	require.Error(t, client.Send(context.Background(), "hi"))
	require.Equal(t, chatclient.StateError, client.State())
	require.Error(t, client.LastError())
	require.Len(t, client.Messages(), 1)
}
