package api

import (
	"net/http"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

func (s *Server) handleJobFiles(w http.ResponseWriter, r *http.Request) {
	res, ok := s.completedResult(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSplitResponse(res))
}

// handleJobFile serves one part or the manifest as Markdown.
func (s *Server) handleJobFile(w http.ResponseWriter, r *http.Request) {
	res, ok := s.completedResult(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	for _, p := range res.Parts() {
		f := p.File()
		if f.Title != name {
			continue
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(f.Content))
		return
	}
	jsonError(w, "file not found", http.StatusNotFound)
}

// completedResult looks up the job in the URL and writes an error unless it
// has finished successfully.
func (s *Server) completedResult(w http.ResponseWriter, r *http.Request) (*chunker.Result, bool) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, false
	}
	res := job.Result()
	if res == nil {
		snap := job.Snapshot()
		msg := "job is " + string(snap.Status)
		if snap.Status == pipeline.StatusFailed && len(snap.Progress.Errors) > 0 {
			msg += ": " + snap.Progress.Errors[len(snap.Progress.Errors)-1]
		}
		jsonError(w, msg, http.StatusConflict)
		return nil, false
	}
	return res, true
}
