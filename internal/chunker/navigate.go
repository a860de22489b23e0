package chunker

import (
	"fmt"
	"strings"
)

const (
	prevPlaceholder = "[⬅️ Previous]"
	nextPlaceholder = "[Next ➡️]"
)

// PartFilename names the chunk at position within a split document.
func PartFilename(slug string, position int) string {
	return fmt.Sprintf("%s-part%d.md", slug, position)
}

// IndexFilename names the manifest of a split document.
func IndexFilename(slug string) string {
	return slug + "-index.md"
}

// BuildLinks renders the navigation header and footer for the chunk at
// position out of total. Both are plain Markdown separated from the chunk
// body by a horizontal rule.
func BuildLinks(position, total int, slug string) (header, footer string) {
	var h strings.Builder
	fmt.Fprintf(&h, "## Document Part %d of %d\n\n", position, total)

	if position > 1 {
		fmt.Fprintf(&h, "[⬅️ Previous](%s)", PartFilename(slug, position-1))
	} else {
		h.WriteString(prevPlaceholder)
	}

	parts := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if i == position {
			parts = append(parts, fmt.Sprintf("[%d]", i))
			continue
		}
		parts = append(parts, fmt.Sprintf("[%d](%s)", i, PartFilename(slug, i)))
	}
	h.WriteString(" | Parts: ")
	h.WriteString(strings.Join(parts, " "))
	h.WriteString(" | ")

	if position < total {
		fmt.Fprintf(&h, "[Next ➡️](%s)", PartFilename(slug, position+1))
	} else {
		h.WriteString(nextPlaceholder)
	}
	h.WriteString("\n\n---\n\n")

	var f strings.Builder
	f.WriteString("\n\n---\n\n")
	if position > 1 {
		fmt.Fprintf(&f, "[⬅️ Previous (%d)](%s)", position-1, PartFilename(slug, position-1))
	} else {
		f.WriteString(prevPlaceholder)
	}
	fmt.Fprintf(&f, " | [Index](%s) | ", IndexFilename(slug))
	if position < total {
		fmt.Fprintf(&f, "[Next (%d) ➡️](%s)", position+1, PartFilename(slug, position+1))
	} else {
		f.WriteString(nextPlaceholder)
	}
	f.WriteString("\n")

	return h.String(), f.String()
}
