package provider

import (
	"context"
	"errors"
	"time"

	"github.com/mandalnilabja/keyprobe/internal/types"
)

// ErrNoAPIKey is returned when a call is attempted without a key.
var ErrNoAPIKey = errors.New("no API key configured")

// Provider defines the upstream calls the key checker needs.
// A non-nil error means no usable HTTP response was received; any HTTP
// status, including errors, is reported through Response.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// BaseURL returns the provider's API root
	BaseURL() string

	// ListModels calls the model-listing endpoint with the given bearer key.
	ListModels(ctx context.Context, apiKey string) (*Response, error)

	// ChatCompletion sends a non-streaming chat completion request.
	ChatCompletion(ctx context.Context, apiKey string, req *types.ChatCompletionRequest) (*Response, error)
}

// Response is a fully buffered upstream reply.
type Response struct {
	// StatusCode is the upstream HTTP status
	StatusCode int

	// Body is the complete response body
	Body []byte

	// Duration is the wall time of the call including the body read
	Duration time.Duration
}
