package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// report renders split summaries. Styles are bound to the output writer so
// colour is dropped when it is not a terminal.
type report struct {
	w io.Writer

	headerStyle lipgloss.Style
	fileStyle   lipgloss.Style
	costStyle   lipgloss.Style
	dimStyle    lipgloss.Style
	totalStyle  lipgloss.Style
}

func newReport(w io.Writer) *report {
	r := lipgloss.NewRenderer(w)
	return &report{
		w: w,
		headerStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00CC66")),
		fileStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			PaddingLeft(2),
		costStyle: r.NewStyle().
			Foreground(lipgloss.Color("#888888")),
		dimStyle: r.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true),
		totalStyle: r.NewStyle().
			Bold(true),
	}
}

func (r *report) print(rep *fileReport) {
	res := rep.Result

	verb := "Created"
	if rep.DryRun {
		verb = "Would create"
	}
	files := res.Files()
	fmt.Fprintln(r.w, r.headerStyle.Render(fmt.Sprintf("%s %d file(s) from %s", verb, len(files), rep.Source)))

	for i, f := range files {
		name := f.Title
		if i < len(rep.Paths) {
			name = rep.Paths[i]
		}
		detail := "index"
		if f.Index > 0 {
			detail = fmt.Sprintf("%d tokens", res.Chunks[f.Index-1].Cost)
		}
		fmt.Fprintf(r.w, "%s  %s\n", r.fileStyle.Render(name), r.costStyle.Render(detail))
	}

	fmt.Fprintln(r.w, r.totalStyle.Render(fmt.Sprintf("Total tokens: %d  Lines: %d  Parts: %d", res.TotalCost, rep.Lines, len(res.Chunks))))
	if res.Single() && !rep.DryRun {
		fmt.Fprintln(r.w, r.dimStyle.Render("Document fits in one part; no index written."))
	}
}

func (r *report) printEstimate(path string, rep *fileReport) {
	res := rep.Result
	fmt.Fprintln(r.w, r.headerStyle.Render(filepath.Base(path)))
	fmt.Fprintf(r.w, "%s %d\n", r.fileStyle.Render("Tokens:"), res.TotalCost)
	fmt.Fprintf(r.w, "%s %d\n", r.fileStyle.Render("Lines:"), rep.Lines)
	fmt.Fprintf(r.w, "%s %d %s\n", r.fileStyle.Render("Parts:"), len(res.Chunks),
		r.costStyle.Render(fmt.Sprintf("at %d tokens per part", res.MaxCost)))
}
