package tokenizer

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// bpeTokenizer counts with a pkoukk/tiktoken-go BPE encoding. Encode does not
// mutate shared state, so one instance serves all goroutines.
type bpeTokenizer struct {
	name string
	enc  *tiktoken.Tiktoken
}

// newBPETokenizer loads the named encoding's tables (once; tiktoken-go honors
// TIKTOKEN_CACHE_DIR for its dictionary cache).
func newBPETokenizer(name string) (*bpeTokenizer, error) {
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("initialising tiktoken encoding %q: %w", name, err)
	}
	return &bpeTokenizer{name: name, enc: enc}, nil
}

func (t *bpeTokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}

func (t *bpeTokenizer) Name() string { return t.name }
