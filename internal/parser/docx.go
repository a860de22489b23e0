package parser

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/mdsplit/internal/doctree"
	"github.com/fumiama/go-docx"
)

// headingStyle matches Word's built-in heading style ids and names,
// e.g. "Heading2" or "heading 2".
var headingStyle = regexp.MustCompile(`(?i)^heading\s*([1-9])$`)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "mdsplit-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	tree := &doctree.DocTree{Title: stem(filename)}

	type stackEntry struct {
		node  *doctree.DocNode
		level int
	}
	top := &doctree.DocNode{}
	stack := []stackEntry{{node: top, level: 0}}
	var paras []string

	flush := func() {
		if len(paras) == 0 {
			return
		}
		n := stack[len(stack)-1].node
		text := strings.Join(paras, "\n\n")
		if n.Text != "" {
			n.Text += "\n\n" + text
		} else {
			n.Text = text
		}
		paras = paras[:0]
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}

		style := paragraphStyle(para)
		if strings.EqualFold(style, "Title") {
			tree.Title = text
			continue
		}
		level := docxHeadingLevel(style)
		if level == 0 {
			paras = append(paras, text)
			continue
		}

		flush()
		node := &doctree.DocNode{Title: text}
		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, node)
		stack = append(stack, stackEntry{node: node, level: level})
	}
	flush()

	tree.Children = top.Children
	if top.Text != "" {
		tree.Children = append([]*doctree.DocNode{{Text: top.Text}}, tree.Children...)
	}

	return tree.Document(formatOf(filename)), nil
}

func paragraphStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return strings.TrimSpace(para.Properties.Style.Val)
}

// docxHeadingLevel maps a paragraph style to a heading level, 0 for body text.
func docxHeadingLevel(style string) int {
	m := headingStyle.FindStringSubmatch(style)
	if m == nil {
		return 0
	}
	level, _ := strconv.Atoi(m[1])
	return min(level, 6)
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
