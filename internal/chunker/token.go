package chunker

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// CostFunc assigns a non-negative integer cost to a piece of text.
// Implementations must be deterministic and must not shrink as text grows.
type CostFunc func(text string) int

// punctuation characters are counted as one extra token each.
const punctuation = `.,!?;:(){}[]<>/\|@#$%^&*_=+-`

// EstimateTokens approximates a GPT-style token count. Every whitespace
// separated word costs ceil(len/4) plus one per punctuation character, and
// each newline adds one. Word length is measured in UTF-16 code units so
// counts agree with the browser tool that consumes the output.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	tokens := 0
	for _, word := range strings.Fields(text) {
		units := 0
		for _, r := range word {
			if strings.ContainsRune(punctuation, r) {
				tokens++
			}
			units += utf16.RuneLen(r)
		}
		tokens += (units + 3) / 4
	}
	tokens += strings.Count(text, "\n")
	return tokens
}

// CostFuncByName resolves a tokenizer name. The empty string and "heuristic"
// select EstimateTokens; anything else is treated as a tiktoken encoding.
func CostFuncByName(name string) (CostFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "heuristic":
		return EstimateTokens, nil
	}
	cost, err := NewTiktokenCost(name)
	if err != nil {
		return nil, fmt.Errorf("tokenizer %q: %w", name, err)
	}
	return cost, nil
}
