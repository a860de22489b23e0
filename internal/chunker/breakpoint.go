package chunker

import (
	"regexp"
	"strings"
)

var headingPattern = regexp.MustCompile(`^#{1,6}\s+`)

// IsHeading reports whether line is an ATX heading.
func IsHeading(line string) bool {
	return headingPattern.MatchString(strings.TrimSpace(line))
}

// IsBreakPoint reports whether a chunk may end after line: a blank line,
// a heading, or a horizontal rule.
func IsBreakPoint(line string) bool {
	t := strings.TrimSpace(line)
	switch t {
	case "", "---", "***", "___":
		return true
	}
	return headingPattern.MatchString(t)
}
