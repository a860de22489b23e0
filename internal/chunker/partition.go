package chunker

import (
	"fmt"
	"strings"
)

// line is one newline-delimited unit of the input document.
type line struct {
	text    string
	newline bool // text was followed by '\n' in the source
	cost    int
	brk     bool
	heading bool
}

// splitLines cuts text into lines without losing any byte: concatenating
// text+"\n" (where newline is set) reproduces the input exactly.
func splitLines(text string) []line {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	out := make([]line, len(parts))
	for i, p := range parts {
		t, nl := strings.CutSuffix(p, "\n")
		out[i] = line{text: t, newline: nl}
	}
	return out
}

// pendingBuffer holds lines that have not been assigned to a chunk yet.
type pendingBuffer struct {
	lines    []line
	cost     int
	breaks   []int // indexes of break lines, ascending
	headings int
}

func (p *pendingBuffer) push(l line) {
	if l.brk {
		p.breaks = append(p.breaks, len(p.lines))
	}
	if l.heading {
		p.headings++
	}
	p.lines = append(p.lines, l)
	p.cost += l.cost
}

// lastFit returns the index of the last break line whose prefix
// lines[0..i] costs at most budget, or -1.
func (p *pendingBuffer) lastFit(budget int) int {
	best := -1
	sum, next := 0, 0
	for _, b := range p.breaks {
		for ; next <= b; next++ {
			sum += p.lines[next].cost
		}
		if sum > budget {
			break
		}
		best = b
	}
	return best
}

// take removes the first n lines from the buffer and returns them.
func (p *pendingBuffer) take(n int) []line {
	out := p.lines[:n:n]
	p.lines = p.lines[n:]
	for _, l := range out {
		p.cost -= l.cost
		if l.heading {
			p.headings--
		}
	}
	kept := p.breaks[:0]
	for _, b := range p.breaks {
		if b >= n {
			kept = append(kept, b-n)
		}
	}
	p.breaks = kept
	return out
}

// ContinuationMarker is prefixed to a chunk that resumes in the middle of a
// section started in part prev.
func ContinuationMarker(prev int) string {
	return fmt.Sprintf("*Continued from part %d*\n\n", prev)
}

// Partition splits lines into chunks of at most maxCost. Every line is
// treated as newline terminated.
func Partition(lines []string, maxCost int, cost CostFunc) []*Chunk {
	if cost == nil {
		cost = EstimateTokens
	}
	ls := make([]line, len(lines))
	for i, t := range lines {
		ls[i] = line{text: t, newline: true}
	}
	return partition(ls, maxCost, cost)
}

// partition is a single forward pass. Lines accumulate in pending until the
// budget would be exceeded, at which point the longest prefix ending on a
// break line is committed; without a usable break everything but the
// overflowing line goes. A lone line over budget becomes its own chunk.
func partition(lines []line, maxCost int, cost CostFunc) []*Chunk {
	var (
		chunks  []*Chunk
		pending pendingBuffer
		current = &Chunk{}
		body    strings.Builder
	)

	commit := func(ls []line) {
		for _, l := range ls {
			body.WriteString(l.text)
			if l.newline {
				body.WriteByte('\n')
			}
			current.Cost += l.cost
			current.Lines++
		}
	}
	emit := func() {
		if current.Lines == 0 {
			return
		}
		current.Position = len(chunks) + 1
		current.Body = body.String()
		chunks = append(chunks, current)
		current = &Chunk{}
		body.Reset()
	}

	for _, l := range lines {
		l.cost = cost(l.text)
		l.brk = IsBreakPoint(l.text)
		l.heading = IsHeading(l.text)
		pending.push(l)

		// Every pass commits at least one line, so this terminates.
		for current.Cost+pending.cost > maxCost && len(pending.lines) > 0 {
			switch j := pending.lastFit(maxCost - current.Cost); {
			case j >= 0:
				commit(pending.take(j + 1))
			case len(pending.lines) > 1:
				commit(pending.take(len(pending.lines) - 1))
			default:
				commit(pending.take(1))
			}
			emit()
		}

		if current.Lines == 0 && !current.Continued && len(chunks) > 0 && pending.headings > 0 {
			marker := cost(ContinuationMarker(len(chunks)))
			if marker+pending.cost <= maxCost {
				current.Continued = true
				current.Cost += marker
			}
		}
	}

	commit(pending.take(len(pending.lines)))
	emit()
	return chunks
}
