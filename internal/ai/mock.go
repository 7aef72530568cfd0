package ai

import (
	"context"
	"hash/fnv"
	"io"
	"strings"
	"time"
)

var mockReplies = []string{
	"Thanks for your question! Hit Kalariya is an experienced AI/ML Developer specializing in building intelligent systems and modern web applications.",
	"That's a great question about Hit's work! He focuses on machine learning, deep learning, and creating production-ready AI solutions.",
	"I'd be happy to help you learn more about Hit's expertise in AI/ML development and his various projects.",
	"Hit has extensive experience in Python, TensorFlow, React, and modern web technologies. Would you like to know more about any specific area?",
}

// MockResponder streams a canned reply word by word with an artificial
// typing delay. The reply is picked by hashing the prompt, so the same
// input always produces the same output. It satisfies the same Stream
// contract as the real responder and substitutes for it whenever mock mode
// is on or no credential is configured.
type MockResponder struct {
	delay time.Duration
}

func NewMockResponder(delay time.Duration) *MockResponder {
	return &MockResponder{delay: delay}
}

func (r *MockResponder) Respond(ctx context.Context, prompt string) (Stream, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	reply := mockReplies[h.Sum32()%uint32(len(mockReplies))]
	return &mockStream{
		ctx:   ctx,
		words: strings.Fields(reply),
		delay: r.delay,
	}, nil
}

type mockStream struct {
	ctx    context.Context
	words  []string
	pos    int
	delay  time.Duration
	closed bool
}

// Recv emits one word per chunk; every chunk after the first carries a
// leading space so concatenation reconstructs the reply exactly.
func (s *mockStream) Recv() (string, error) {
	if s.closed || s.pos >= len(s.words) {
		return "", io.EOF
	}
	if s.delay > 0 {
		select {
		case <-s.ctx.Done():
			return "", s.ctx.Err()
		case <-time.After(s.delay):
		}
	}
	chunk := s.words[s.pos]
	if s.pos > 0 {
		chunk = " " + chunk
	}
	s.pos++
	return chunk, nil
}

func (s *mockStream) Close() {
	s.closed = true
}
