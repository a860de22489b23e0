package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/mdsplit/internal/parser"
)

// Worker processes a single document job.
type Worker struct {
	orch *Orchestrator
	log  *slog.Logger
}

func NewWorker(orch *Orchestrator, log *slog.Logger) *Worker {
	return &Worker{orch: orch, log: log}
}

// Process parses and splits the job's upload.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.orch.ParserOptions())
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.Fail("parsing", err)
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", fmt.Errorf("parse: %w", err))
		return
	}
	job.mu.Lock()
	job.ContentHash = ContentHashHex([]byte(doc.Text))
	job.mu.Unlock()

	if err := ctx.Err(); err != nil {
		job.Fail("parsing", err)
		return
	}

	// Phase 2: Split
	job.SetStatus(StatusSplitting, "splitting")
	res, err := w.orch.Split(doc, job.Title, job.opts)
	if err != nil {
		log.Error("split failed", "error", err)
		job.Fail("splitting", err)
		return
	}

	job.SetResult(res)
	log.Info("split document", "parts", len(res.Chunks), "total_cost", res.TotalCost, "single", res.Single())
}
