package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/IdiotCoffee/jobforge/internal/model"
	"github.com/IdiotCoffee/jobforge/pkg/ai/prompts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Completer sends one prompt to a text model and returns its answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client turns resume fields and cover letter requests into prompts for a
// Completer. Each call is a single request; nothing is retried.
type Client struct {
	completer Completer
	timeout   time.Duration
}

func NewClient(c Completer, timeout time.Duration) *Client {
	return &Client{completer: c, timeout: timeout}
}

func (c *Client) complete(ctx context.Context, op, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	started := time.Now()
	out, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, op)
	}
	out = prompts.Clean(out)
	if out == "" {
		return "", errors.Errorf("%s: empty completion", op)
	}
	log.Debug().
		Str("component", "ai").
		Str("op", op).
		Int("prompt_len", len(prompt)).
		Int("output_len", len(out)).
		Dur("took", time.Since(started)).
		Msg("completion")
	return out, nil
}

// Improve rewrites one resume field for the user's industry.
func (c *Client) Improve(ctx context.Context, current, fieldKind, industry string) (string, error) {
	return c.complete(ctx, "improve "+fieldKind, prompts.Improve(fieldKind, current, industry))
}

func (c *Client) WriteCoverLetter(ctx context.Context, u domain.User, in model.CoverLetterInput) (string, error) {
	return c.complete(ctx, "cover letter", prompts.CoverLetter(u, in))
}

// ServiceCompleter talks to the chat endpoint of a self-hosted ai-service.
type ServiceCompleter struct {
	BaseURL string
	HTTP    *http.Client
}

func NewServiceCompleter(baseURL string) *ServiceCompleter {
	if baseURL == "" {
		baseURL = "http://ai-service:8000"
	}
	return &ServiceCompleter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

func (s *ServiceCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	b, err := json.Marshal(chatRequest{Agent: "auto", Input: prompt})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/v1/chat", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("ai-service returned status %d", resp.StatusCode)
	}
	var out chatResponse
	if err := json.Unmarshal(rb, &out); err != nil {
		return "", errors.Wrap(err, "decode ai-service response")
	}
	return out.Output, nil
}

// NewCompleter builds the completer for provider ("gemini" or "service").
// The returned func releases its resources.
func NewCompleter(ctx context.Context, provider, apiKey, modelName, serviceURL string) (Completer, func() error, error) {
	switch provider {
	case "", "gemini":
		g, err := NewGeminiCompleter(ctx, apiKey, modelName)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	case "service":
		return NewServiceCompleter(serviceURL), func() error { return nil }, nil
	}
	return nil, nil, errors.Errorf("unknown ai provider %q", provider)
}
