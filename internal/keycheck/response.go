package keycheck

import (
	"errors"
	"net/http"

	"github.com/mandalnilabja/keyprobe/internal/classify"
	"github.com/mandalnilabja/keyprobe/internal/credential"
)

// Response is the outward-facing result of one operation. Status is the HTTP
// status to send; the remaining fields form the JSON body.
type Response struct {
	Status    int    `json:"-"`
	Message   string `json:"message,omitempty"`
	Valid     bool   `json:"valid,omitempty"`
	Success   bool   `json:"success,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorType string `json:"errorType,omitempty"`

	// Category is the classifier label, kept for logs and metrics.
	Category classify.Category `json:"-"`

	// PromptTokens is the tiktoken estimate of the chat probe prompt, zero
	// when not counted.
	PromptTokens int `json:"-"`
}

// badRequest builds the response for a credential that failed validation.
func badRequest(err error) Response {
	category := classify.CategoryMissingCredential
	if errors.Is(err, credential.ErrMalformedCredential) {
		category = classify.CategoryMalformedCredential
	}
	return Response{Status: http.StatusBadRequest, Error: err.Error(), Category: category}
}

// failure converts a non-success outcome into a response.
func failure(o classify.Outcome) Response {
	return Response{
		Status:    o.Status,
		Error:     o.Message,
		ErrorType: o.ErrorType,
		Category:  o.Category,
	}
}
