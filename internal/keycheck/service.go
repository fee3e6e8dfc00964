// Package keycheck implements the key validation and chat probe operations.
package keycheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mandalnilabja/keyprobe/internal/classify"
	"github.com/mandalnilabja/keyprobe/internal/credential"
	"github.com/mandalnilabja/keyprobe/internal/metrics"
	"github.com/mandalnilabja/keyprobe/internal/provider"
	"github.com/mandalnilabja/keyprobe/internal/tokenizer"
	"github.com/mandalnilabja/keyprobe/internal/types"
)

// Fixed chat probe parameters.
const (
	ProbeModel     = "gpt-3.5-turbo"
	ProbePrompt    = "Hi, how are you?"
	ProbeMaxTokens = 150
)

// Literal response texts.
const (
	ValidKeyMessage = "Your OpenAI key is valid and working!"
	NoResponse      = "No response"
)

// errMalformedBody marks an upstream reply whose body is not JSON. The
// provider never judged the key, so it is reported as unreachable.
var errMalformedBody = errors.New("malformed upstream body")

// tokenCountTimeout is the maximum time to wait for token counting after
// the upstream call returns.
const tokenCountTimeout = 100 * time.Millisecond

// previewLen is how much of the generated text is logged.
const previewLen = 100

// Service runs key checks against the upstream provider. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	provider  provider.Provider
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tokenizer tokenizer.Counter
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records outcomes and upstream latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTokenizer enables prompt token estimates for chat probes.
func WithTokenizer(t tokenizer.Counter) Option {
	return func(s *Service) { s.tokenizer = t }
}

// New creates a Service. A nil logger discards output.
func New(p provider.Provider, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{provider: p, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckKey confirms the key is accepted by the model-listing endpoint.
// raw is the decoded request value; anything but a prefixed string is
// rejected before the network is touched.
func (s *Service) CheckKey(ctx context.Context, raw any) Response {
	op := classify.KeyCheck
	key, err := credential.Validate(raw)
	if err != nil {
		return s.finish(op, badRequest(err))
	}

	s.logger.DebugContext(ctx, "calling upstream", "operation", op.String(), "provider", s.provider.Name())

	resp, err := s.provider.ListModels(ctx, key)
	if err != nil {
		return s.unreachable(ctx, op, err)
	}
	s.metrics.ObserveUpstream(op.String(), resp.Duration)

	// A 2xx listing is valid whatever its body; errors must be readable JSON.
	if !classify.Successful(resp.StatusCode) && !gjson.ValidBytes(resp.Body) {
		return s.unreachable(ctx, op, malformed(resp.StatusCode))
	}

	o := classify.Classify(op, resp.StatusCode, resp.Body)
	if !o.Success() {
		s.logFailure(ctx, op, o)
		return s.finish(op, failure(o))
	}

	if gjson.ValidBytes(resp.Body) {
		s.logger.DebugContext(ctx, "key accepted", "models", gjson.GetBytes(resp.Body, "data.#").Int())
	}
	return s.finish(op, Response{
		Status:  o.Status,
		Message: ValidKeyMessage,
		Valid:   true,
	})
}

// ProbeChat sends a fixed single-turn prompt and returns the generated text.
// raw is validated the same way as for CheckKey.
func (s *Service) ProbeChat(ctx context.Context, raw any) Response {
	op := classify.ChatProbe
	key, err := credential.Validate(raw)
	if err != nil {
		return s.finish(op, badRequest(err))
	}

	req := ProbeRequest()
	tokens := s.countPromptTokens(req)

	s.logger.DebugContext(ctx, "calling upstream",
		"operation", op.String(),
		"provider", s.provider.Name(),
		"model", req.Model,
		"prompt", ProbePrompt,
	)

	resp, err := s.provider.ChatCompletion(ctx, key, req)
	promptTokens := s.awaitPromptTokens(tokens)
	if err != nil {
		return s.unreachable(ctx, op, err)
	}
	s.metrics.ObserveUpstream(op.String(), resp.Duration)
	s.metrics.ObservePromptTokens(op.String(), promptTokens)

	// Every chat reply, success or error, must be JSON.
	if !gjson.ValidBytes(resp.Body) {
		return s.unreachable(ctx, op, malformed(resp.StatusCode))
	}

	o := classify.Classify(op, resp.StatusCode, resp.Body)
	if !o.Success() {
		s.logFailure(ctx, op, o)
		r := failure(o)
		r.PromptTokens = promptTokens
		return s.finish(op, r)
	}

	text := gjson.GetBytes(resp.Body, "choices.0.message.content").String()
	if text == "" {
		text = NoResponse
	}

	s.logger.DebugContext(ctx, "chat completion received", "preview", preview(text))
	return s.finish(op, Response{
		Status:       o.Status,
		Message:      text,
		Success:      true,
		PromptTokens: promptTokens,
	})
}

// ProbeRequest returns the fixed chat completion request.
func ProbeRequest() *types.ChatCompletionRequest {
	maxTokens := ProbeMaxTokens
	return &types.ChatCompletionRequest{
		Model:     ProbeModel,
		Messages:  []types.Message{types.NewTextMessage(types.RoleUser, ProbePrompt)},
		MaxTokens: &maxTokens,
	}
}

func malformed(status int) error {
	return fmt.Errorf("%w (status %d)", errMalformedBody, status)
}

// unreachable reports a transport-level failure.
func (s *Service) unreachable(ctx context.Context, op classify.Variant, err error) Response {
	o := classify.Unreachable(err)
	s.logger.ErrorContext(ctx, "upstream unreachable", "operation", op.String(), "error", o.Err())
	return s.finish(op, failure(o))
}

func (s *Service) logFailure(ctx context.Context, op classify.Variant, o classify.Outcome) {
	s.logger.WarnContext(ctx, "upstream rejected request",
		"operation", op.String(),
		"upstream_status", o.UpstreamStatus,
		"category", string(o.Category),
		"provider_message", o.ProviderMessage,
	)
}

// finish records the outcome metric and returns r unchanged.
func (s *Service) finish(op classify.Variant, r Response) Response {
	s.metrics.RecordOutcome(op.String(), string(r.Category), r.Status)
	return r
}

// countPromptTokens starts token counting in the background so the
// upstream call is not delayed by encoding loads.
func (s *Service) countPromptTokens(req *types.ChatCompletionRequest) <-chan int {
	tokensChan := make(chan int, 1)
	go func() {
		defer close(tokensChan)
		if s.tokenizer == nil {
			return
		}
		if n, err := s.tokenizer.CountRequest(req); err == nil {
			tokensChan <- n
		}
	}()
	return tokensChan
}

// awaitPromptTokens waits briefly for the background count. Zero means the
// estimate was unavailable or late.
func (s *Service) awaitPromptTokens(tokens <-chan int) int {
	select {
	case n, ok := <-tokens:
		if ok {
			return n
		}
	case <-time.After(tokenCountTimeout):
	}
	return 0
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= previewLen {
		return text
	}
	return string(r[:previewLen]) + "..."
}
