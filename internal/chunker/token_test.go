package chunker

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \t ", 0},
		{"single short word", "hello", 2},
		{"punctuation counted per char", "Hello, world!", 6},
		{"heading marker", "# Title", 4},
		{"newline adds one", "a\nb", 3},
		{"trailing newlines", "a\n\n", 3},
		{"four char words", strings.Repeat("word ", 500), 500},
		{"cjk counts code units", "日本語", 1},
		{"astral runes count twice", "😀😀😀", 2},
		{"continuation marker", "*Continued from part 1*\n\n", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.want {
				t.Errorf("EstimateTokens(%q): expected %d, got %d", tt.text, tt.want, got)
			}
		})
	}
}

func TestEstimateTokens_MonotonicInLength(t *testing.T) {
	text := "The quick (brown) fox, jumps over the lazy-dog! #tag @user\nnext line"
	prev := 0
	for i := 1; i <= len(text); i++ {
		got := EstimateTokens(text[:i])
		if got < prev {
			t.Fatalf("cost dropped from %d to %d at prefix length %d", prev, got, i)
		}
		prev = got
	}
}

func TestEstimateTokens_WholeDocumentIsSumOfLinesPlusNewlines(t *testing.T) {
	lines := []string{"# Heading", "", "Some text, with punctuation.", "---", "last"}
	doc := strings.Join(lines, "\n")

	sum := 0
	for _, l := range lines {
		sum += EstimateTokens(l)
	}
	want := sum + len(lines) - 1
	if got := EstimateTokens(doc); got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestCostFuncByName_Heuristic(t *testing.T) {
	for _, name := range []string{"", "heuristic", " Heuristic "} {
		cost, err := CostFuncByName(name)
		if err != nil {
			t.Fatalf("name %q: unexpected error: %v", name, err)
		}
		if got := cost("Hello, world!"); got != 6 {
			t.Errorf("name %q: expected 6, got %d", name, got)
		}
	}
}

func TestCostFuncByName_Unknown(t *testing.T) {
	if _, err := CostFuncByName("no-such-encoding"); err == nil {
		t.Error("expected error for unknown tokenizer")
	}
}
