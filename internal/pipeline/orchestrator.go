package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/config"
	"github.com/dgallion1/mdsplit/internal/doctree"
	"github.com/dgallion1/mdsplit/internal/parser"
)

// ErrQueueFull is returned by Submit when no queue slot is free.
var ErrQueueFull = errors.New("job queue is full")

// Orchestrator runs split jobs on a bounded worker pool.
type Orchestrator struct {
	jobs      *JobStore
	queue     chan *Job
	stats     *LatencyStats
	log       *slog.Logger
	cfg       config.Config
	splitOpts chunker.Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. splitOpts are the defaults applied
// to jobs and requests that do not override them.
func NewOrchestrator(cfg config.Config, splitOpts chunker.Options, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:      NewJobStore(cfg.JobTTL),
		queue:     make(chan *Job, cfg.MaxQueueSize),
		stats:     NewLatencyStats(cfg.StatsWindow),
		log:       log,
		cfg:       cfg,
		splitOpts: splitOpts,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns the split latency tracker.
func (o *Orchestrator) Stats() *LatencyStats {
	return o.stats
}

// DefaultOptions returns the configured split options.
func (o *Orchestrator) DefaultOptions() chunker.Options {
	return o.splitOpts
}

// ParserOptions returns the configured parser options.
func (o *Orchestrator) ParserOptions() parser.Options {
	return parser.Options{PDFFallback: o.cfg.PDFFallbackPdftotext}
}

// Split runs the chunker on a parsed document and records its latency.
// A non-empty title overrides the document title.
func (o *Orchestrator) Split(doc *doctree.Document, title string, opts chunker.Options) (*chunker.Result, error) {
	if title == "" {
		title = doc.Title
	}
	start := time.Now()
	res, err := chunker.Split(doc.Text, title, opts)
	if err != nil {
		return nil, err
	}
	o.stats.Record(time.Since(start))
	return res, nil
}
