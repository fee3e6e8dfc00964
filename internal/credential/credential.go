// Package credential validates user-supplied upstream API keys before any
// network call is made.
package credential

import (
	"errors"
	"strings"
)

// Prefix is the literal every OpenAI secret key starts with.
const Prefix = "sk-"

// Validation errors. Their text is returned to callers verbatim.
var (
	ErrMissingCredential   = errors.New("API key is required")
	ErrMalformedCredential = errors.New(`Invalid API key format. OpenAI keys start with "sk-"`)
)

// Validate checks a decoded request value. Anything that is not a
// non-empty string is a missing credential.
func Validate(v any) (string, error) {
	key, ok := v.(string)
	if !ok {
		return "", ErrMissingCredential
	}
	return ValidateString(key)
}

// ValidateString returns the key unchanged when it is non-empty and carries
// the expected prefix.
func ValidateString(key string) (string, error) {
	if key == "" {
		return "", ErrMissingCredential
	}
	if !strings.HasPrefix(key, Prefix) {
		return "", ErrMalformedCredential
	}
	return key, nil
}

// Preview returns the first seven characters of a key followed by an
// ellipsis, for logging. Non-string values preview as absent.
func Preview(v any) string {
	key, _ := v.(string)
	if key == "" {
		return "No key"
	}
	if len(key) <= 7 {
		return key + "..."
	}
	return key[:7] + "..."
}
