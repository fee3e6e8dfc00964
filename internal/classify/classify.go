// Package classify maps raw upstream HTTP results onto the fixed set of
// user-facing outcomes shared by the key check and chat probe operations.
package classify

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Variant selects the per-operation classification rules.
type Variant int

const (
	// KeyCheck treats every 429 as a rate limit and recognizes 403.
	KeyCheck Variant = iota
	// ChatProbe splits 429 into quota and rate limit and tags every error.
	ChatProbe
)

// String returns the operation name used in logs and metrics.
func (v Variant) String() string {
	switch v {
	case KeyCheck:
		return "check_key"
	case ChatProbe:
		return "chat"
	default:
		return "unknown"
	}
}

// Kind is the tag of the UpstreamOutcome variant.
type Kind int

const (
	KindSuccess Kind = iota
	KindClientError
	KindRateLimited
	KindUnreachable
)

// Category is the normalized outcome label.
type Category string

const (
	CategoryNone          Category = ""
	CategoryInvalidKey    Category = "invalid_key"
	CategoryForbidden     Category = "forbidden"
	CategoryQuotaExceeded Category = "quota_exceeded"
	CategoryRateLimit     Category = "rate_limit"
	CategoryOther         Category = "other"
	CategoryUnavailable   Category = "unavailable"

	// Local pre-flight categories; these never reach the network.
	CategoryMissingCredential   Category = "missing_credential"
	CategoryMalformedCredential Category = "malformed_credential"
)

// User-facing messages.
const (
	MsgInvalidKey        = "Your API key is invalid or expired."
	MsgInvalidKeyVerbose = "Your API key is invalid or expired. Please check your key and try again."
	MsgForbidden         = "Access forbidden. Your API key may not have the required permissions."
	MsgQuotaExceeded     = "Your API key is valid, but your account has no credits/quota remaining. Please add credits to your OpenAI account."
	MsgRateLimit         = "Rate limit exceeded. Please try again later."
	MsgUnavailable       = "Failed to connect to OpenAI API. Please check your internet connection and try again."

	fallbackUnknown   = "Unknown error occurred"
	fallbackRateLimit = "Rate limit exceeded"
)

// quotaMarkers are matched against the lower-cased provider message.
var quotaMarkers = []string{"quota", "billing", "exceeded your current quota"}

// Outcome is the result of a single upstream call.
type Outcome struct {
	Kind Kind

	// Status is the HTTP status to return to the caller.
	Status int

	// UpstreamStatus is the provider's status, zero when unreachable.
	UpstreamStatus int

	Category Category

	// ErrorType is the errorType tag exposed to clients (chat probe only).
	ErrorType string

	// Message is the user-facing error message. Empty on success.
	Message string

	// ProviderMessage is the provider's own error text, if any.
	ProviderMessage string

	// Payload is the raw success body.
	Payload []byte

	// Cause is the transport error for unreachable outcomes.
	Cause error
}

// Success reports whether the upstream accepted the request.
func (o Outcome) Success() bool {
	return o.Kind == KindSuccess
}

// Err returns nil on success, otherwise an error wrapping the sentinel for
// the outcome's category.
func (o Outcome) Err() error {
	var sentinel error
	switch o.Category {
	case CategoryNone:
		return nil
	case CategoryInvalidKey:
		sentinel = ErrInvalidCredential
	case CategoryForbidden:
		sentinel = ErrForbidden
	case CategoryQuotaExceeded:
		sentinel = ErrQuotaExceeded
	case CategoryRateLimit:
		sentinel = ErrRateLimited
	case CategoryUnavailable:
		if o.Cause != nil {
			return fmt.Errorf("%w: %w", ErrNetworkUnavailable, o.Cause)
		}
		return ErrNetworkUnavailable
	default:
		sentinel = ErrUpstream
	}
	return fmt.Errorf("upstream status %d: %w", o.UpstreamStatus, sentinel)
}

// Classify maps an upstream status and raw body onto an Outcome. The body may
// be empty or malformed; provider text then falls back to fixed literals.
func Classify(v Variant, status int, body []byte) Outcome {
	if Successful(status) {
		return Outcome{
			Kind:           KindSuccess,
			Status:         http.StatusOK,
			UpstreamStatus: status,
			Payload:        body,
		}
	}

	o := Outcome{
		Kind:           KindClientError,
		Status:         status,
		UpstreamStatus: status,
	}

	switch {
	case status == http.StatusUnauthorized:
		o.Category = CategoryInvalidKey
		o.Message = MsgInvalidKeyVerbose
		if v == ChatProbe {
			o.Message = MsgInvalidKey
		}

	case status == http.StatusTooManyRequests:
		o.Kind = KindRateLimited
		o.Category = CategoryRateLimit
		o.Message = MsgRateLimit
		if v == ChatProbe {
			o.ProviderMessage = ProviderMessage(body, fallbackRateLimit)
			if IsQuotaMessage(o.ProviderMessage) {
				o.Category = CategoryQuotaExceeded
				o.Message = MsgQuotaExceeded
			}
		}

	case status == http.StatusForbidden && v == KeyCheck:
		o.Category = CategoryForbidden
		o.Message = MsgForbidden

	default:
		o.Category = CategoryOther
		o.ProviderMessage = ProviderMessage(body, fallbackUnknown)
		o.Message = "OpenAI API error: " + o.ProviderMessage
	}

	if v == ChatProbe {
		o.ErrorType = string(o.Category)
	}
	return o
}

// Successful reports whether status is in the 2xx range.
func Successful(status int) bool {
	return status >= 200 && status < 300
}

// Unreachable builds the outcome for a call that produced no usable response.
func Unreachable(cause error) Outcome {
	return Outcome{
		Kind:     KindUnreachable,
		Status:   http.StatusInternalServerError,
		Category: CategoryUnavailable,
		Message:  MsgUnavailable,
		Cause:    cause,
	}
}

// ProviderMessage extracts error.message, then error.code, from an OpenAI
// error envelope. Empty values count as absent.
func ProviderMessage(body []byte, fallback string) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return fallback
	}
	for _, path := range []string{"error.message", "error.code"} {
		if r := gjson.GetBytes(body, path); r.Exists() && r.Type != gjson.Null {
			if s := r.String(); s != "" {
				return s
			}
		}
	}
	return fallback
}

// IsQuotaMessage reports whether a 429 message describes exhausted quota
// rather than throttling. Matching is case-insensitive.
func IsQuotaMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range quotaMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
