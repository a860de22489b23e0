package parser

import (
	"io"

	"github.com/dgallion1/mdsplit/internal/doctree"
)

// TextParser handles plain text files. The text is passed through unchanged
// so chunk bodies reproduce the file byte for byte.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &doctree.Document{
		Title:  stem(filename),
		Text:   string(src),
		Format: formatOf(filename),
	}, nil
}
