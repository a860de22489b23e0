package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_PassesSourceThrough(t *testing.T) {
	input := "# Title\n\nIntro text.\n\n## Section A\n\n```\nGET /api/users\n```\r\n\nno trailing newline"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != input {
		t.Errorf("expected source unchanged, got %q", doc.Text)
	}
	if doc.Format != "md" {
		t.Errorf("expected format %q, got %q", "md", doc.Format)
	}
}

func TestMarkdownParser_TitleFromFirstH1(t *testing.T) {
	input := "Some preamble.\n\n## Not this one\n\n# The *Real* Title\n\n# Second H1\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "The Real Title" {
		t.Errorf("expected title %q, got %q", "The Real Title", doc.Title)
	}
}

func TestMarkdownParser_SetextHeading(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("Overview\n========\n\nbody\n"), "x.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Overview" {
		t.Errorf("expected title %q, got %q", "Overview", doc.Title)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
		{"v1.2.md", "v1.2"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
