package doctree

import "strings"

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Markdown body of this node (may be empty for container nodes)
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// Document is source text normalized to Markdown, ready for splitting.
type Document struct {
	Title  string
	Text   string
	Format string // source extension without the dot, e.g. "md", "pdf"
}

// Markdown renders the tree as Markdown. Section titles become ATX headings
// whose level is the node depth, capped at 6. Blocks are separated by a
// blank line.
func (t *DocTree) Markdown() string {
	var blocks []string
	var walk func(n *DocNode, depth int)
	walk = func(n *DocNode, depth int) {
		if n.Title != "" {
			blocks = append(blocks, strings.Repeat("#", min(depth, 6))+" "+n.Title)
		}
		if text := strings.TrimSpace(n.Text); text != "" {
			blocks = append(blocks, text)
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, c := range t.Children {
		walk(c, 1)
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// Document flattens the tree.
func (t *DocTree) Document(format string) *Document {
	return &Document{Title: t.Title, Text: t.Markdown(), Format: format}
}
