package classify

import "errors"

// Sentinel errors for upstream failures. Outcome.Err wraps one of these so
// callers can test with errors.Is.
var (
	// ErrInvalidCredential means the provider rejected the key (401).
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrForbidden means the key lacks permissions (403, key check only).
	ErrForbidden = errors.New("forbidden")

	// ErrQuotaExceeded means the key is valid but the account has no quota left.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrRateLimited means the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstream covers every other non-2xx status.
	ErrUpstream = errors.New("upstream error")

	// ErrNetworkUnavailable means no usable HTTP response was received.
	ErrNetworkUnavailable = errors.New("network unavailable")
)
