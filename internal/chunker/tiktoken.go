package chunker

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// NewTiktokenCost returns a CostFunc that counts BPE tokens with the given
// tiktoken encoding (e.g. "cl100k_base"). The encoding tables are fetched and
// cached by tiktoken-go on first use.
func NewTiktokenCost(encoding string) (CostFunc, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	return func(text string) int {
		if text == "" {
			return 0
		}
		return len(enc.Encode(text, nil, nil))
	}, nil
}
