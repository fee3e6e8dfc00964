package shared

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// maxRequestBody bounds inbound JSON bodies.
const maxRequestBody = 1 << 20

// ErrorBody is the flat error envelope returned by the API routes.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes a JSON error response.
func WriteJSONError(w http.ResponseWriter, message string, status int) {
	WriteJSON(w, ErrorBody{Error: message}, status)
}

// MethodNotAllowed answers non-POST calls on the API routes.
func MethodNotAllowed(w http.ResponseWriter) {
	w.Header().Set("Allow", http.MethodPost)
	WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// DecodeKey reads the "key" field from a JSON request body and returns it
// as decoded: a string, number, bool, nil, map or slice. An unreadable or
// non-JSON body yields nil. Type checks are left to credential.Validate.
func DecodeKey(r *http.Request) any {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil || !gjson.ValidBytes(body) {
		return nil
	}
	return gjson.GetBytes(body, "key").Value()
}
