package ai

import (
	"context"
	"errors"
)

// ErrUnavailable means no usable credential is configured.
var ErrUnavailable = errors.New("ai provider unavailable")

// Stream is the pull side of an incremental text reply. Recv returns the
// next chunk in arrival order, io.EOF after the final chunk, or the
// upstream error. A stream that errors mid-way never returns io.EOF, so
// callers can always tell truncation apart from completion. Close releases
// the producer; it is safe to call more than once.
type Stream interface {
	Recv() (string, error)
	Close()
}

// Responder turns one fully assembled prompt into a chunk stream. The real
// Gemini-backed implementation and the canned mock are interchangeable
// behind this interface.
type Responder interface {
	Respond(ctx context.Context, prompt string) (Stream, error)
}

// GenerationParams are fixed per deployment, not computed per request.
type GenerationParams struct {
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
}

// DefaultGenerationParams match the tuning the assistant shipped with.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
	}
}
