// Package chatclient holds the conversation state for one chat session
// against the portfolio AI endpoint. It mirrors what the browser widget
// does: submit one message at a time, render the streamed reply
// incrementally, and keep history in memory only.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateSending
	StateStreaming
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateStreaming:
		return "streaming"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrBusy is returned when Send is called while a request is in flight.
// Only one outstanding request is permitted per client.
var ErrBusy = errors.New("chatclient: request already in flight")

// ErrIncomplete marks a stream that ended without a clean terminal signal.
// A truncated reply is never presented as complete.
var ErrIncomplete = errors.New("chatclient: stream ended before completion")

type Client struct {
	httpClient *http.Client
	baseURL    string

	// onChunk, when set, is invoked for every received chunk. It runs on
	// the Send goroutine without the lock held.
	onChunk func(chunk string)

	mu       sync.Mutex
	state    State
	messages []Message
	lastErr  error
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithChunkHandler(fn func(chunk string)) Option {
	return func(c *Client) { c.onChunk = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    baseURL,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError reports the failure that put the client into the error state,
// or nil when the last request completed cleanly.
func (c *Client) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Messages returns a snapshot of the conversation, oldest first. History
// survives failed requests; only a page reload clears it.
func (c *Client) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Send submits one user message and blocks until the streamed reply
// finishes or fails. The user message is recorded before the request goes
// out; the assistant message grows chunk by chunk as the stream arrives.
// A second Send while one is in flight returns ErrBusy without touching
// the conversation. After a failure the client is immediately usable
// again: the next Send resends from the error state.
func (c *Client) Send(ctx context.Context, text string) error {
	c.mu.Lock()
	if c.state == StateSending || c.state == StateStreaming {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateSending
	c.lastErr = nil
	c.messages = append(c.messages, Message{
		ID:        uuid.NewString(),
		Content:   text,
		Role:      RoleUser,
		Timestamp: time.Now(),
	})
	c.mu.Unlock()

	body, err := json.Marshal(map[string]string{"message": text})
	if err != nil {
		return c.fail(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ai/chat", bytes.NewReader(body))
	if err != nil {
		return c.fail(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fail(decodeError(resp))
	}

	c.mu.Lock()
	c.state = StateStreaming
	c.messages = append(c.messages, Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
	})
	c.mu.Unlock()

	buf := make([]byte, 512)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			c.appendChunk(chunk)
			if c.onChunk != nil {
				c.onChunk(chunk)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			// The reply stalled or the connection dropped mid-reply.
			// Whatever arrived stays visible, but flagged as failed.
			return c.fail(fmt.Errorf("%w: %v", ErrIncomplete, err))
		}
	}

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
	return nil
}

func (c *Client) appendChunk(chunk string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[len(c.messages)-1].Content += chunk
}

func (c *Client) fail(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateError
	c.lastErr = err
	return err
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("chatclient: server returned %d: %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("chatclient: server returned %d", resp.StatusCode)
}
