package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/output"
	"github.com/dgallion1/mdsplit/internal/parser"
)

// fileReport describes one split input.
type fileReport struct {
	Source string
	Result *chunker.Result
	Lines  int
	Paths  []string // written files, empty on a dry run
	DryRun bool
}

// splitFile loads path, splits it and writes the parts unless this is a dry
// run. Parts go next to the input unless an output directory is set.
func splitFile(path string, flags *splitFlags, opts chunker.Options, parserOpts parser.Options, log *slog.Logger) (*fileReport, error) {
	log = log.With("file", path)

	doc, err := parser.Open(path, parserOpts)
	if err != nil {
		return nil, err
	}

	title := flags.title
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	res, err := chunker.Split(doc.Text, title, opts)
	if err != nil {
		return nil, fmt.Errorf("split %s: %w", path, err)
	}
	log.Debug("split document", "format", doc.Format, "parts", len(res.Chunks), "total_cost", res.TotalCost)

	rep := &fileReport{
		Source: path,
		Result: res,
		Lines:  countLines(res),
		DryRun: flags.dryRun,
	}
	if flags.dryRun {
		return rep, nil
	}

	dir := flags.out
	if dir == "" {
		dir = filepath.Dir(path)
	}
	rep.Paths, err = output.WriteFiles(dir, res.Files())
	if err != nil {
		return nil, err
	}
	log.Info("wrote parts", "dir", dir, "files", len(rep.Paths))
	return rep, nil
}

func countLines(res *chunker.Result) int {
	n := 0
	for _, c := range res.Chunks {
		n += c.Lines
	}
	return n
}
