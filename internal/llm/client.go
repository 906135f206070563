package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model server is reachable.
	Available(ctx context.Context) bool
}

// completion is one backend round trip.
type completion struct {
	model       string
	system      string
	user        string
	temperature float64
	maxTokens   int
}

type backend interface {
	complete(ctx context.Context, c completion) (text, model string, err error)
	available(ctx context.Context) bool
}

// client adds per-attempt timeouts, retries and observation on top of a
// backend.
type client struct {
	cfg      LLMConfig
	backend  backend
	observer Observer
}

// NewClient returns the client for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) LLMClient {
	if cfg.Provider == ProviderOpenAI {
		return NewOpenAIClient(cfg, observer)
	}
	return NewOllamaClient(cfg, observer)
}

func newClient(cfg LLMConfig, b backend, observer Observer) *client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{cfg: cfg, backend: b, observer: observer}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	call := completion{
		model:       c.cfg.Model,
		system:      req.SystemPrompt,
		user:        req.UserPrompt,
		temperature: taskCfg.Temperature,
		maxTokens:   taskCfg.MaxTokens,
	}
	if req.Temperature != nil {
		call.temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		call.maxTokens = *req.MaxTokens
	}
	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	var lastErr error
	attempts := 0
	for attempts < 1+c.cfg.MaxRetries {
		attempts++
		text, model, err := c.attempt(ctx, timeout, call)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observe(req.Task, attempts, latency, nil)
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}
		lastErr = err

		// The caller gave up; a retry cannot succeed.
		if ctx.Err() != nil {
			break
		}
	}

	err := classifyError(lastErr)
	c.observe(req.Task, attempts, time.Since(start).Milliseconds(), err)
	return nil, err
}

func (c *client) attempt(ctx context.Context, timeout time.Duration, call completion) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, model, err := c.backend.complete(ctx, call)
	if err != nil {
		return "", "", err
	}
	if text == "" {
		return "", "", fmt.Errorf("%w: empty response", ErrInvalidOutput)
	}
	return text, model, nil
}

func (c *client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.backend.available(ctx)
}

func (c *client) observe(task TaskType, attempts int, latencyMs int64, err error) {
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Provider:  c.cfg.Provider,
		Model:     c.cfg.Model,
		LatencyMs: latencyMs,
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

func classifyError(err error) error {
	switch {
	case isTimeout(err):
		return ErrTimeout
	case isConnectionError(err):
		return ErrProviderUnavailable
	case errors.Is(err, ErrInvalidOutput):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrProviderUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
