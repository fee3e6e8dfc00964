// Package openai implements the OpenAI REST provider.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mandalnilabja/keyprobe/internal/provider"
	"github.com/mandalnilabja/keyprobe/internal/types"
)

// DefaultBaseURL is the public OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// maxBodyBytes bounds how much of an upstream body is buffered.
const maxBodyBytes = 8 << 20

// Provider implements provider.Provider for OpenAI.
// The API key is supplied per call, never stored on the provider.
type Provider struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient replaces the HTTP client. The client's transport is used
// as-is, without tracing instrumentation.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = c
	}
}

// WithTimeout sets an overall per-call timeout. Zero leaves the transport
// defaults in place.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		p.httpClient.Timeout = d
	}
}

// New creates a provider rooted at baseURL. An empty baseURL selects
// DefaultBaseURL.
func New(baseURL string, opts ...Option) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	p := &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "openai"
}

// BaseURL returns the API root
func (p *Provider) BaseURL() string {
	return p.baseURL
}

// ListModels calls GET /models.
func (p *Provider) ListModels(ctx context.Context, apiKey string) (*provider.Response, error) {
	return p.do(ctx, http.MethodGet, "/models", apiKey, nil)
}

// ChatCompletion calls POST /chat/completions.
func (p *Provider) ChatCompletion(ctx context.Context, apiKey string, req *types.ChatCompletionRequest) (*provider.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}
	return p.do(ctx, http.MethodPost, "/chat/completions", apiKey, body)
}

// do executes a single request and buffers the response body.
func (p *Provider) do(ctx context.Context, method, path, apiKey string, body []byte) (*provider.Response, error) {
	if apiKey == "" {
		return nil, provider.ErrNoAPIKey
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	return &provider.Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Duration:   time.Since(start),
	}, nil
}
