// Package gemini is a client for the hosted generative-language API.
//
// Every call sends a synthetic system persona turn followed by a
// bounded window of recent conversation history, with web-search
// grounding enabled. Transient failures (429, 5xx, network errors)
// are retried with exponential backoff; other failures surface
// immediately as typed errors.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/basilio254/market-bot/pkg/conversation"
	"github.com/basilio254/market-bot/pkg/credentials"
	"github.com/basilio254/market-bot/pkg/logger"
)

const (
	defaultMaxAttempts   = 5
	defaultInitialDelay  = 1 * time.Second
	defaultHistoryWindow = 10
	defaultTimeout       = 60 * time.Second
)

// KeyStore supplies API keys by provider name at call time. The key is
// resolved per request so a rotated credentials file takes effect
// without restarting the session.
type KeyStore interface {
	GetKey(provider string) (string, error)
}

// History supplies the recent conversation window for a request.
// *conversation.Store satisfies it.
type History interface {
	RecentWindow(n int) []conversation.Turn
}

// Config holds client configuration.
type Config struct {
	// Endpoint is the API base URL without a trailing slash.
	Endpoint string

	// Model is the model name used in the request path.
	Model string

	// HistoryWindow caps how many non-system turns are sent per call.
	HistoryWindow uint

	// MaxAttempts is the total attempt cap per call, retries included.
	MaxAttempts uint

	// InitialDelay is the first backoff delay. It doubles per retry.
	InitialDelay time.Duration

	// HTTPClient overrides the default HTTP client when set.
	HTTPClient *http.Client
}

// Reply is the usable portion of a successful generateContent response.
type Reply struct {
	Text    string
	Sources []conversation.Source
}

// Client calls the generateContent endpoint.
type Client struct {
	endpoint      string
	model         string
	historyWindow uint
	maxAttempts   uint
	initialDelay  time.Duration

	keys       KeyStore
	httpClient *http.Client
	log        *slog.Logger

	// sleep is swappable in tests so backoff specs run instantly.
	sleep func(time.Duration)
}

// NewClient creates a client. Zero-value Config fields fall back to
// service defaults; keys must be non-nil.
func NewClient(cfg Config, keys KeyStore, log *slog.Logger) (*Client, error) {
	if keys == nil {
		return nil, fmt.Errorf("key store is required")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if log == nil {
		log = logger.Nop()
	}

	c := &Client{
		endpoint:      cfg.Endpoint,
		model:         cfg.Model,
		historyWindow: cfg.HistoryWindow,
		maxAttempts:   cfg.MaxAttempts,
		initialDelay:  cfg.InitialDelay,
		keys:          keys,
		httpClient:    cfg.HTTPClient,
		log:           log,
		sleep:         time.Sleep,
	}
	if c.historyWindow == 0 {
		c.historyWindow = defaultHistoryWindow
	}
	if c.maxAttempts == 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.initialDelay == 0 {
		c.initialDelay = defaultInitialDelay
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return c, nil
}

// Generate sends the persona turn plus the recent history window and
// returns the model's reply. Transient failures are retried up to the
// attempt cap; all other failures return a typed error. The caller
// decides how to present errors; Generate never swallows them.
func (c *Client) Generate(ctx context.Context, history History) (*Reply, error) {
	window := history.RecentWindow(int(c.historyWindow))

	contents := make([]content, 0, len(window)+1)
	contents = append(contents, content{
		Role:  string(conversation.RoleSystem),
		Parts: []part{{Text: SystemPrompt}},
	})
	for _, turn := range window {
		contents = append(contents, content{
			Role:  string(turn.Role),
			Parts: []part{{Text: turn.Text}},
		})
	}

	body, err := json.Marshal(generateRequest{
		Contents: contents,
		Tools:    []tool{{}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	key, err := c.keys.GetKey(credentials.ProviderGemini)
	if err != nil {
		return nil, fmt.Errorf("resolving API key: %w", err)
	}

	callURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.endpoint, c.model, url.QueryEscape(key))

	c.log.Debug("calling generateContent",
		"model", c.model,
		"history_turns", len(window),
	)

	delay := c.initialDelay
	for attempt := uint(1); attempt <= c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, callURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt == c.maxAttempts {
				return nil, fmt.Errorf("sending request: %w", err)
			}
			c.log.Warn("request failed, retrying",
				"error", err,
				"attempt", attempt,
				"delay", delay,
			)
			c.sleep(delay)
			delay *= 2
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			reply, err := parseReply(resp)
			resp.Body.Close()
			return reply, err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			c.log.Warn("transient API status, retrying",
				"status", resp.StatusCode,
				"attempt", attempt,
				"delay", delay,
			)
			c.sleep(delay)
			delay *= 2
			continue
		}

		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Error.Message
		}
		resp.Body.Close()

		c.log.Error("API request rejected",
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return nil, apiErr
	}

	return nil, ErrRetriesExhausted
}

// parseReply extracts the reply text and grounding sources from a 2xx
// response. A body with no usable text is ErrMalformedResponse.
func parseReply(resp *http.Response) (*Reply, error) {
	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ErrMalformedResponse
	}

	if len(result.Candidates) == 0 {
		return nil, ErrMalformedResponse
	}
	cand := result.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0].Text == "" {
		return nil, ErrMalformedResponse
	}

	reply := &Reply{Text: cand.Content.Parts[0].Text}
	if cand.GroundingMetadata != nil {
		for _, attr := range cand.GroundingMetadata.GroundingAttributions {
			if attr.Web == nil || attr.Web.URI == "" || attr.Web.Title == "" {
				continue
			}
			reply.Sources = append(reply.Sources, conversation.Source{
				Title: attr.Web.Title,
				URI:   attr.Web.URI,
			})
		}
	}

	return reply, nil
}
