package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/mdsplit/internal/doctree"
	"golang.org/x/net/html"
)

// noise is removed before conversion.
const noise = "script, style, noscript, iframe, svg, form, nav, header, footer, aside, " +
	"[role=navigation], [role=banner], [role=contentinfo], .sidebar, .nav, .menu, .breadcrumb, .advertisement"

// contentRoots are tried in order; the first match becomes the conversion root.
var contentRoots = []string{
	"main",
	"article",
	"[role=main]",
	"#content",
	"#main-content",
	".content",
	".markdown-body",
	".post-content",
}

// HTMLParser converts HTML pages to Markdown.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := &doctree.DocTree{Title: stem(filename)}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		tree.Title = title
	}

	doc.Find(noise).Remove()

	root := doc.Find("body")
	for _, sel := range contentRoots {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			root = s
			break
		}
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	// Walk the HTML and build tree from heading tags.
	type stackEntry struct {
		node  *doctree.DocNode
		level int
	}
	top := &doctree.DocNode{}
	stack := []stackEntry{{node: top, level: 0}}
	var blocks []string

	flush := func() {
		if len(blocks) == 0 {
			return
		}
		n := stack[len(stack)-1].node
		text := strings.Join(blocks, "\n\n")
		if n.Text != "" {
			n.Text += "\n\n" + text
		} else {
			n.Text = text
		}
		blocks = blocks[:0]
	}
	add := func(block string) {
		if block = strings.TrimSpace(block); block != "" {
			blocks = append(blocks, block)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			// Stray text directly inside a container.
			add(collapse(n.Data))
			return
		}
		if n.Type != html.ElementNode && n.Type != html.DocumentNode {
			return
		}

		if level := headingLevel(n.Data); level > 0 {
			title := collapse(textContent(n))
			if title == "" {
				return
			}
			flush()
			node := &doctree.DocNode{Title: title}
			for len(stack) > 1 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
			stack = append(stack, stackEntry{node: node, level: level})
			return
		}

		switch n.Data {
		case "p", "td", "th", "dt", "dd", "figcaption", "caption":
			add(collapse(textContent(n)))
			return
		case "ul", "ol":
			add(renderList(n, n.Data == "ol"))
			return
		case "blockquote":
			add(quote(collapse(textContent(n))))
			return
		case "pre":
			add("```\n" + strings.Trim(textContent(n), "\n") + "\n```")
			return
		case "hr":
			add("---")
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range root.Nodes {
		walk(n)
	}
	flush()

	tree.Children = top.Children
	if top.Text != "" {
		tree.Children = append([]*doctree.DocNode{{Text: top.Text}}, tree.Children...)
	}

	return tree.Document(formatOf(filename)), nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func renderList(n *html.Node, ordered bool) string {
	var lines []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		t := collapse(textContent(c))
		if t == "" {
			continue
		}
		if ordered {
			lines = append(lines, fmt.Sprintf("%d. %s", len(lines)+1, t))
		} else {
			lines = append(lines, "- "+t)
		}
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	if s == "" {
		return ""
	}
	return "> " + s
}

// collapse squeezes whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}
