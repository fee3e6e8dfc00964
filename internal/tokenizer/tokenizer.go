// Package tokenizer estimates the prompt size of chat probe requests.
package tokenizer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/mandalnilabja/keyprobe/internal/types"
)

// Counter estimates how many prompt tokens a chat request will consume.
type Counter interface {
	CountRequest(req *types.ChatCompletionRequest) (int, error)
}

// Encoding names used by tiktoken.
const (
	EncodingCL100kBase = "cl100k_base" // gpt-3.5, gpt-4
	EncodingO200kBase  = "o200k_base"  // gpt-4o, o-series
)

// familyEncodings maps model name prefixes to encodings. "gpt-4o" must
// precede "gpt-4".
var familyEncodings = []struct {
	prefix   string
	encoding string
}{
	{"gpt-4o", EncodingO200kBase},
	{"gpt-3.5", EncodingCL100kBase},
	{"gpt-4", EncodingCL100kBase},
	{"chatgpt", EncodingO200kBase},
	{"o1", EncodingO200kBase},
	{"o3", EncodingO200kBase},
}

// EncodingFor returns the tiktoken encoding for model, defaulting to
// cl100k_base for unknown families.
func EncodingFor(model string) string {
	lower := strings.ToLower(model)
	for _, f := range familyEncodings {
		if strings.HasPrefix(lower, f.prefix) {
			return f.encoding
		}
	}
	return EncodingCL100kBase
}

// TiktokenTokenizer counts with tiktoken-go. Encodings load on first use,
// which may fetch BPE ranks over the network, and stay cached.
type TiktokenTokenizer struct {
	mu     sync.Mutex
	loaded map[string]*tiktoken.Tiktoken
}

// New creates a TiktokenTokenizer with an empty cache.
func New() *TiktokenTokenizer {
	return &TiktokenTokenizer{loaded: make(map[string]*tiktoken.Tiktoken)}
}

// Warm loads the encoding for model so later counts do not wait on it.
func (t *TiktokenTokenizer) Warm(model string) error {
	_, err := t.encoding(model)
	return err
}

func (t *TiktokenTokenizer) encoding(model string) (*tiktoken.Tiktoken, error) {
	name := EncodingFor(model)

	t.mu.Lock()
	defer t.mu.Unlock()
	if enc, ok := t.loaded[name]; ok {
		return enc, nil
	}

	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", name, err)
	}
	t.loaded[name] = enc
	return enc, nil
}
