package chunker

import (
	"fmt"
	"strings"
)

// Manifest is the index of a split document. It always sits at position 0.
type Manifest struct {
	Title   string // file name, <slug>-index.md
	Slug    string
	Entries []ManifestEntry
}

// ManifestEntry points at one chunk.
type ManifestEntry struct {
	Position int
	Filename string
}

// BuildManifest lists every chunk in order.
func BuildManifest(slug string, chunks []*Chunk) *Manifest {
	m := &Manifest{
		Title:   IndexFilename(slug),
		Slug:    slug,
		Entries: make([]ManifestEntry, 0, len(chunks)),
	}
	for _, c := range chunks {
		m.Entries = append(m.Entries, ManifestEntry{
			Position: c.Position,
			Filename: PartFilename(slug, c.Position),
		})
	}
	return m
}

// Content renders the manifest as Markdown.
func (m *Manifest) Content() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s - Index\n\n", m.Slug)
	fmt.Fprintf(&sb, "This document has been split into %d parts to keep each file under the token limit.\n\n", len(m.Entries))
	sb.WriteString("## Parts\n\n")
	for _, e := range m.Entries {
		fmt.Fprintf(&sb, "- [Part %d](%s)\n", e.Position, e.Filename)
	}
	return sb.String()
}

// File returns the manifest as an output record.
func (m *Manifest) File() File {
	return File{Content: m.Content(), Title: m.Title, Index: 0}
}

func (*Manifest) isPart() {}
