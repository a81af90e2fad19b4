package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"
	"readiness-service/internal/common/metrics"
)

// Completer produces raw model output for a system/user prompt pair. The
// production implementation is PerplexityClient; tests substitute stubs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// PerplexityClient talks to the Perplexity chat-completions API, which is
// OpenAI wire compatible. Models are tried strictly in order; the first
// successful completion wins.
type PerplexityClient struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	models         []string
	attemptTimeout time.Duration
	maxTokens      int
	temperature    float64
	log            logger.Logger
}

// PerplexityOptions configures a PerplexityClient.
type PerplexityOptions struct {
	BaseURL        string
	APIKey         string
	Models         []string
	AttemptTimeout time.Duration
	MaxTokens      int
	Temperature    float64
}

// NewPerplexityClient builds a client with sane defaults for any unset option.
func NewPerplexityClient(opts PerplexityOptions, log logger.Logger) *PerplexityClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.perplexity.ai"
	}
	if len(opts.Models) == 0 {
		opts.Models = []string{"sonar-pro", "sonar"}
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 45 * time.Second
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 2048
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.3
	}
	return &PerplexityClient{
		httpClient:     &http.Client{},
		baseURL:        opts.BaseURL,
		apiKey:         opts.APIKey,
		models:         opts.Models,
		attemptTimeout: opts.AttemptTimeout,
		maxTokens:      opts.MaxTokens,
		temperature:    opts.Temperature,
		log:            log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete tries each configured model in order under a per-attempt deadline.
// It returns the raw completion text of the first model that answers, or an
// upstream error once every model has failed.
func (c *PerplexityClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.NewUpstreamUnavailableError(errors.New("remote model API key not configured"))
	}

	var lastErr error
	for _, model := range c.models {
		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		attemptCtx, span := otel.Tracer("analysis").Start(attemptCtx, "llm.complete")
		span.SetAttributes(attribute.String("llm.model", model))
		text, err := c.completeOnce(attemptCtx, model, system, user)
		span.End()
		cancel()

		if err == nil {
			metrics.LLMAttempts.WithLabelValues(model, "success").Inc()
			c.log.Info("remote model completion succeeded", map[string]interface{}{
				"model":  model,
				"length": len(text),
			})
			return text, nil
		}

		outcome := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
			err = apperrors.NewLLMTimeoutError(model)
		}
		metrics.LLMAttempts.WithLabelValues(model, outcome).Inc()
		c.log.Warn("remote model attempt failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		lastErr = err

		// The whole chain is bounded by the caller's context.
		if ctx.Err() != nil {
			break
		}
	}

	if apperrors.IsCode(lastErr, apperrors.ErrCodeLLMTimeout) {
		return "", lastErr
	}
	return "", apperrors.NewUpstreamUnavailableError(fmt.Errorf("all models failed: %w", lastErr))
}

func (c *PerplexityClient) completeOnce(ctx context.Context, model, system, user string) (string, error) {
	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", context.DeadlineExceeded
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request returned status %d: %s", resp.StatusCode, truncate(string(raw), 300))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("completion response was not JSON: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("completion response had no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
