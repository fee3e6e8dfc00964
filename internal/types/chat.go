// Package types provides the OpenAI wire types used for upstream calls.
package types

// Role constants for message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message with plain text content.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// NewTextMessage creates a simple text message.
func NewTextMessage(role, content string) Message {
	return Message{Role: role, Content: content}
}

// ChatCompletionRequest represents an OpenAI chat completion request.
// Optional fields use pointers to distinguish between unset and zero values.
type ChatCompletionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens *int      `json:"max_tokens,omitempty"`
}

// GetMaxTokens returns the effective max tokens limit, 0 when unset.
func (r *ChatCompletionRequest) GetMaxTokens() int {
	if r.MaxTokens != nil {
		return *r.MaxTokens
	}
	return 0
}

// ChatCompletionResponse represents a non-streaming chat completion response.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"` // "chat.completion"
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// ObjectChatCompletion is the object tag of a chat completion response.
const ObjectChatCompletion = "chat.completion"

// Choice represents a single completion choice.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// FinishReasonStop is reported when the model ended its turn naturally.
const FinishReasonStop = "stop"

// Usage represents token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
