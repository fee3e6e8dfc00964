package tokenizer

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/mandalnilabja/keyprobe/internal/types"
)

// Per-message framing costs of the chat format.
const (
	framingGPT35 = 4 // <|im_start|>{role}\n{content}<|im_end|>\n
	framingGPT4  = 3

	// replyPriming covers <|im_start|>assistant at the end of the prompt.
	replyPriming = 3

	nameCost = 1
)

// CountRequest returns the estimated prompt tokens of req.
func (t *TiktokenTokenizer) CountRequest(req *types.ChatCompletionRequest) (int, error) {
	enc, err := t.encoding(req.Model)
	if err != nil {
		return 0, err
	}

	framing := messageFraming(req.Model)
	total := replyPriming
	for _, msg := range req.Messages {
		total += framing + messageTokens(enc, msg)
	}
	return total, nil
}

func messageTokens(enc *tiktoken.Tiktoken, msg types.Message) int {
	n := len(enc.Encode(msg.Role, nil, nil)) + len(enc.Encode(msg.Content, nil, nil))
	if msg.Name != "" {
		n += len(enc.Encode(msg.Name, nil, nil)) + nameCost
	}
	return n
}

func messageFraming(model string) int {
	if strings.HasPrefix(strings.ToLower(model), "gpt-3.5") {
		return framingGPT35
	}
	return framingGPT4
}
