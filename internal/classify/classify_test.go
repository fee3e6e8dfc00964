package classify

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func errorBody(message string) []byte {
	return []byte(`{"error":{"message":"` + message + `","type":"x"}}`)
}

func TestClassify_KeyCheck(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         []byte
		wantKind     Kind
		wantStatus   int
		wantCategory Category
		wantMessage  string
	}{
		{
			name:       "200 ignores body",
			status:     http.StatusOK,
			body:       []byte("not json"),
			wantKind:   KindSuccess,
			wantStatus: http.StatusOK,
		},
		{
			name:         "401 invalid key",
			status:       http.StatusUnauthorized,
			body:         errorBody("Incorrect API key provided"),
			wantKind:     KindClientError,
			wantStatus:   http.StatusUnauthorized,
			wantCategory: CategoryInvalidKey,
			wantMessage:  MsgInvalidKeyVerbose,
		},
		{
			name:         "403 forbidden",
			status:       http.StatusForbidden,
			wantKind:     KindClientError,
			wantStatus:   http.StatusForbidden,
			wantCategory: CategoryForbidden,
			wantMessage:  MsgForbidden,
		},
		{
			name:         "429 quota text is still a rate limit",
			status:       http.StatusTooManyRequests,
			body:         errorBody("You exceeded your current quota"),
			wantKind:     KindRateLimited,
			wantStatus:   http.StatusTooManyRequests,
			wantCategory: CategoryRateLimit,
			wantMessage:  MsgRateLimit,
		},
		{
			name:         "500 mirrors status with provider message",
			status:       http.StatusInternalServerError,
			body:         errorBody("The server had an error"),
			wantKind:     KindClientError,
			wantStatus:   http.StatusInternalServerError,
			wantCategory: CategoryOther,
			wantMessage:  "OpenAI API error: The server had an error",
		},
		{
			name:         "404 falls back to code",
			status:       http.StatusNotFound,
			body:         []byte(`{"error":{"message":"","code":"model_not_found"}}`),
			wantKind:     KindClientError,
			wantStatus:   http.StatusNotFound,
			wantCategory: CategoryOther,
			wantMessage:  "OpenAI API error: model_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Classify(KeyCheck, tt.status, tt.body)
			assert.Equal(t, tt.wantKind, o.Kind)
			assert.Equal(t, tt.wantStatus, o.Status)
			assert.Equal(t, tt.wantCategory, o.Category)
			assert.Equal(t, tt.wantMessage, o.Message)
			assert.Empty(t, o.ErrorType, "key check never tags errorType")
		})
	}
}

func TestClassify_ChatProbe(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          []byte
		wantStatus    int
		wantErrorType string
		wantMessage   string
	}{
		{
			name:          "401 invalid key",
			status:        http.StatusUnauthorized,
			wantStatus:    http.StatusUnauthorized,
			wantErrorType: "invalid_key",
			wantMessage:   MsgInvalidKey,
		},
		{
			name:          "429 quota",
			status:        http.StatusTooManyRequests,
			body:          errorBody("You have exceeded your current quota, please check your billing details"),
			wantStatus:    http.StatusTooManyRequests,
			wantErrorType: "quota_exceeded",
			wantMessage:   MsgQuotaExceeded,
		},
		{
			name:          "429 billing in code",
			status:        http.StatusTooManyRequests,
			body:          []byte(`{"error":{"code":"BILLING_hard_limit"}}`),
			wantStatus:    http.StatusTooManyRequests,
			wantErrorType: "quota_exceeded",
			wantMessage:   MsgQuotaExceeded,
		},
		{
			name:          "429 throttle",
			status:        http.StatusTooManyRequests,
			body:          errorBody("Rate limit reached for requests"),
			wantStatus:    http.StatusTooManyRequests,
			wantErrorType: "rate_limit",
			wantMessage:   MsgRateLimit,
		},
		{
			name:          "429 without body",
			status:        http.StatusTooManyRequests,
			wantStatus:    http.StatusTooManyRequests,
			wantErrorType: "rate_limit",
			wantMessage:   MsgRateLimit,
		},
		{
			name:          "403 is generic on the chat path",
			status:        http.StatusForbidden,
			body:          errorBody("Project does not have access"),
			wantStatus:    http.StatusForbidden,
			wantErrorType: "other",
			wantMessage:   "OpenAI API error: Project does not have access",
		},
		{
			name:          "503 without body",
			status:        http.StatusServiceUnavailable,
			wantStatus:    http.StatusServiceUnavailable,
			wantErrorType: "other",
			wantMessage:   "OpenAI API error: Unknown error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Classify(ChatProbe, tt.status, tt.body)
			assert.Equal(t, tt.wantStatus, o.Status)
			assert.Equal(t, tt.wantErrorType, o.ErrorType)
			assert.Equal(t, tt.wantMessage, o.Message)
			assert.False(t, o.Success())
		})
	}
}

func TestClassify_QuotaHeuristicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		marker := rapid.SampledFrom([]string{"quota", "QUOTA", "Billing", "exceeded your current quota"}).Draw(t, "marker")
		prefix := rapid.StringMatching(`[a-zA-Z ]{0,20}`).Draw(t, "prefix")
		suffix := rapid.StringMatching(`[a-zA-Z ]{0,20}`).Draw(t, "suffix")

		o := Classify(ChatProbe, http.StatusTooManyRequests, errorBody(prefix+marker+suffix))
		if o.Category != CategoryQuotaExceeded {
			t.Fatalf("expected quota_exceeded for %q, got %s", prefix+marker+suffix, o.Category)
		}
	})
}

func TestClassify_ThrottleProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msg := rapid.StringMatching(`[a-zA-Z ]{1,40}`).Filter(func(s string) bool {
			l := strings.ToLower(s)
			return !strings.Contains(l, "quota") && !strings.Contains(l, "billing")
		}).Draw(t, "message")

		o := Classify(ChatProbe, http.StatusTooManyRequests, errorBody(msg))
		if o.Category != CategoryRateLimit {
			t.Fatalf("expected rate_limit for %q, got %s", msg, o.Category)
		}
	})
}

func TestClassify_SuccessRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		status := rapid.IntRange(200, 299).Draw(t, "status")
		variant := rapid.SampledFrom([]Variant{KeyCheck, ChatProbe}).Draw(t, "variant")

		o := Classify(variant, status, nil)
		if !o.Success() || o.Status != http.StatusOK {
			t.Fatalf("status %d not classified as success", status)
		}
		if o.Err() != nil {
			t.Fatalf("success outcome returned error %v", o.Err())
		}
	})
}

func TestOutcome_Err(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    error
	}{
		{"invalid key", Classify(KeyCheck, 401, nil), ErrInvalidCredential},
		{"forbidden", Classify(KeyCheck, 403, nil), ErrForbidden},
		{"quota", Classify(ChatProbe, 429, errorBody("quota")), ErrQuotaExceeded},
		{"throttle", Classify(ChatProbe, 429, nil), ErrRateLimited},
		{"other", Classify(ChatProbe, 500, nil), ErrUpstream},
		{"unreachable", Unreachable(errors.New("dial tcp: connection refused")), ErrNetworkUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.outcome.Err(), tt.want)
		})
	}
}

func TestUnreachable(t *testing.T) {
	cause := errors.New("no such host")
	o := Unreachable(cause)

	assert.Equal(t, KindUnreachable, o.Kind)
	assert.Equal(t, http.StatusInternalServerError, o.Status)
	assert.Equal(t, MsgUnavailable, o.Message)
	assert.Empty(t, o.ErrorType)
	assert.ErrorIs(t, o.Err(), cause)
}

func TestProviderMessage(t *testing.T) {
	assert.Equal(t, "fb", ProviderMessage(nil, "fb"))
	assert.Equal(t, "fb", ProviderMessage([]byte("{"), "fb"))
	assert.Equal(t, "fb", ProviderMessage([]byte(`{"error":"plain string"}`), "fb"))
	assert.Equal(t, "fb", ProviderMessage([]byte(`{"error":{"message":null}}`), "fb"))
	assert.Equal(t, "msg", ProviderMessage([]byte(`{"error":{"message":"msg","code":"c"}}`), "fb"))
	assert.Equal(t, "c", ProviderMessage([]byte(`{"error":{"code":"c"}}`), "fb"))
}

func TestSuccessful(t *testing.T) {
	for status, want := range map[int]bool{
		199: false,
		200: true,
		204: true,
		299: true,
		300: false,
		401: false,
		502: false,
	} {
		assert.Equal(t, want, Successful(status), "status %d", status)
	}
}
