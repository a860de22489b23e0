package chunker

import (
	"errors"
)

// DefaultMaxCost is the per-chunk budget used when none is given.
const DefaultMaxCost = 32000

// ErrInvalidBudget is returned when the per-chunk budget is not positive.
var ErrInvalidBudget = errors.New("max cost must be a positive number")

// Options controls splitting behavior.
type Options struct {
	MaxCost int      // Per-chunk budget. Zero selects DefaultMaxCost.
	Cost    CostFunc // Cost estimator. Nil selects EstimateTokens.

	// ManifestForSingle keeps navigation and a one-entry manifest even when
	// the document fits in a single chunk.
	ManifestForSingle bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		MaxCost: DefaultMaxCost,
		Cost:    EstimateTokens,
	}
}

func (o Options) normalize() (Options, error) {
	if o.MaxCost < 0 {
		return o, ErrInvalidBudget
	}
	if o.MaxCost == 0 {
		o.MaxCost = DefaultMaxCost
	}
	if o.Cost == nil {
		o.Cost = EstimateTokens
	}
	return o, nil
}

// File is one output document: a chunk (Index 1..N) or the manifest (Index 0).
type File struct {
	Content string `json:"content"`
	Title   string `json:"title"`
	Index   int    `json:"index"`
}

// Part is either a *Chunk or a *Manifest.
type Part interface {
	File() File
	isPart()
}

// Chunk is one budget-bounded slice of a document.
type Chunk struct {
	Position  int
	Title     string
	Body      string // original text, byte for byte
	Cost      int    // includes the continuation marker when present
	Lines     int
	Continued bool // rendered with ContinuationMarker(Position-1)

	header string
	footer string
}

// Content renders the chunk with navigation and continuation marker.
func (c *Chunk) Content() string {
	if !c.Continued {
		return c.header + c.Body + c.footer
	}
	return c.header + ContinuationMarker(c.Position-1) + c.Body + c.footer
}

// File returns the chunk as an output record.
func (c *Chunk) File() File {
	return File{Content: c.Content(), Title: c.Title, Index: c.Position}
}

func (*Chunk) isPart() {}

// Result is a split document.
type Result struct {
	Title     string
	Slug      string
	MaxCost   int
	TotalCost int // cost of the whole document text
	Chunks    []*Chunk
	Manifest  *Manifest // nil when the document was not split
}

// Single reports whether the document was emitted as one unsplit chunk.
func (r *Result) Single() bool {
	return r.Manifest == nil
}

// Parts returns the chunks in position order followed by the manifest.
func (r *Result) Parts() []Part {
	parts := make([]Part, 0, len(r.Chunks)+1)
	for _, c := range r.Chunks {
		parts = append(parts, c)
	}
	if r.Manifest != nil {
		parts = append(parts, r.Manifest)
	}
	return parts
}

// Files returns every part as an output record, manifest last.
func (r *Result) Files() []File {
	parts := r.Parts()
	files := make([]File, len(parts))
	for i, p := range parts {
		files[i] = p.File()
	}
	return files
}

// Split divides text into chunks that each cost at most opts.MaxCost,
// links them together and builds a manifest. A document that fits in one
// chunk is returned whole as <slug>.md without navigation or manifest unless
// opts.ManifestForSingle is set.
func Split(text, title string, opts Options) (*Result, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	slug := Slugify(title)
	if slug == "" {
		slug = "document"
	}

	res := &Result{
		Title:     title,
		Slug:      slug,
		MaxCost:   opts.MaxCost,
		TotalCost: opts.Cost(text),
	}

	lines := splitLines(text)
	var chunks []*Chunk
	if res.TotalCost <= opts.MaxCost {
		// Kept whole: under BPE the per-line costs can sum past the whole-text cost.
		chunks = []*Chunk{{Position: 1, Body: text, Cost: res.TotalCost, Lines: len(lines)}}
	} else {
		chunks = partition(lines, opts.MaxCost, opts.Cost)
	}
	if len(chunks) <= 1 {
		if len(chunks) == 0 {
			chunks = []*Chunk{{Position: 1}}
		}
		if !opts.ManifestForSingle {
			c := chunks[0]
			c.Title = slug + ".md"
			res.Chunks = []*Chunk{c}
			return res, nil
		}
	}

	total := len(chunks)
	for _, c := range chunks {
		c.Title = PartFilename(slug, c.Position)
		c.header, c.footer = BuildLinks(c.Position, total, slug)
	}
	res.Chunks = chunks
	res.Manifest = BuildManifest(slug, chunks)
	return res, nil
}
