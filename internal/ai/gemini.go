package ai

import (
	"context"
	"io"
	"iter"
	"strings"

	"google.golang.org/genai"
)

type GeminiResponder struct {
	apiKey string
	model  string
	params GenerationParams
}

func NewGeminiResponder(apiKey, model string, params GenerationParams) *GeminiResponder {
	return &GeminiResponder{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
		params: params,
	}
}

func (r *GeminiResponder) Respond(ctx context.Context, prompt string) (Stream, error) {
	if r.apiKey == "" {
		return nil, ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  r.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(r.params.Temperature),
		TopK:            genai.Ptr(r.params.TopK),
		TopP:            genai.Ptr(r.params.TopP),
		MaxOutputTokens: r.params.MaxOutputTokens,
	}
	seq := client.Models.GenerateContentStream(
		ctx,
		r.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		config,
	)
	next, stop := iter.Pull2(seq)
	return &geminiStream{next: next, stop: stop}, nil
}

// geminiStream adapts the SDK's push-style sequence to the pull-based
// Stream contract.
type geminiStream struct {
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()
}

func (s *geminiStream) Recv() (string, error) {
	for {
		resp, err, ok := s.next()
		if !ok {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		text := resp.Text()
		if text == "" {
			// Some responses carry only metadata; skip to the next chunk.
			continue
		}
		return text, nil
	}
}

func (s *geminiStream) Close() {
	s.stop()
}
