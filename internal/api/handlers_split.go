package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/doctree"
	"github.com/dgallion1/mdsplit/internal/parser"
	"github.com/dgallion1/mdsplit/internal/pipeline"
)

// splitRequest is the JSON body of POST /api/split.
type splitRequest struct {
	Text           string `json:"text"`
	Title          string `json:"title"`
	MaxCost        *int   `json:"max_cost,omitempty"`
	ManifestSingle *bool  `json:"manifest_single,omitempty"`
	Tokenizer      string `json:"tokenizer,omitempty"`
}

type splitResponse struct {
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	TotalCost int            `json:"total_cost"`
	MaxCost   int            `json:"max_cost"`
	Single    bool           `json:"single"`
	Files     []chunker.File `json:"files"`
}

func newSplitResponse(res *chunker.Result) splitResponse {
	return splitResponse{
		Title:     res.Title,
		Slug:      res.Slug,
		TotalCost: res.TotalCost,
		MaxCost:   res.MaxCost,
		Single:    res.Single(),
		Files:     res.Files(),
	}
}

// handleSplit splits a document synchronously. It accepts either a
// multipart upload in "file" or a JSON splitRequest.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		doc  *doctree.Document
		req  splitRequest
		code int
		err  error
	)
	if mediaType == "multipart/form-data" {
		doc, req, code, err = s.readUpload(w, r)
	} else {
		doc, req, code, err = s.readJSON(w, r)
	}
	if err != nil {
		jsonError(w, err.Error(), code)
		return
	}

	opts, err := s.splitOptions(req.MaxCost, req.ManifestSingle, req.Tokenizer)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.orchestrator.Split(doc, req.Title, opts)
	if err != nil {
		if errors.Is(err, chunker.ErrInvalidBudget) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("split failed", "error", err)
		jsonError(w, "split failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, newSplitResponse(res))
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request) (*doctree.Document, splitRequest, int, error) {
	var req splitRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesExceeded(err) {
			return nil, req, http.StatusRequestEntityTooLarge, fmt.Errorf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
		}
		return nil, req, http.StatusBadRequest, fmt.Errorf("invalid json body: %w", err)
	}
	return &doctree.Document{Title: req.Title, Text: req.Text, Format: "md"}, req, 0, nil
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*doctree.Document, splitRequest, int, error) {
	var req splitRequest

	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if maxBytesExceeded(err) {
			return nil, req, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
		}
		return nil, req, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	req, err := formOptions(r)
	if err != nil {
		return nil, req, http.StatusBadRequest, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, req, http.StatusBadRequest, fmt.Errorf("file is required: %w", err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	p, err := parser.ForFile(filename, s.orchestrator.ParserOptions())
	if err != nil {
		return nil, req, http.StatusBadRequest, err
	}

	data, err := readLimited(file, s.cfg.MaxUploadBytes)
	if err != nil {
		return nil, req, http.StatusRequestEntityTooLarge, err
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, req, http.StatusBadRequest, fmt.Errorf("parse %s: %w", filename, err)
	}
	return doc, req, 0, nil
}

// handleBatchSplit queues one job per uploaded file.
func (s *Server) handleBatchSplit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		if maxBytesExceeded(err) {
			jsonError(w, "request too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := formOptions(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := s.splitOptions(req.MaxCost, req.ManifestSingle, req.Tokenizer)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}
		data, err := readLimited(f, s.cfg.MaxUploadBytes)
		f.Close()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		job := pipeline.NewJob(filename, "", data, opts)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": filename,
			"job_id":   job.ID,
			"status":   pipeline.StatusQueued,
			"poll_url": "/api/jobs/" + job.ID,
		})
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"jobs": results})
}

// splitOptions overlays request overrides on the configured defaults.
// An explicit budget must be positive.
func (s *Server) splitOptions(maxCost *int, manifestSingle *bool, tokenizer string) (chunker.Options, error) {
	opts := s.orchestrator.DefaultOptions()
	if maxCost != nil {
		if *maxCost <= 0 {
			return opts, chunker.ErrInvalidBudget
		}
		opts.MaxCost = *maxCost
	}
	if manifestSingle != nil {
		opts.ManifestForSingle = *manifestSingle
	}
	if tokenizer != "" {
		cost, err := chunker.CostFuncByName(tokenizer)
		if err != nil {
			return opts, err
		}
		opts.Cost = cost
	}
	return opts, nil
}

// formOptions reads split overrides from multipart form fields.
func formOptions(r *http.Request) (splitRequest, error) {
	req := splitRequest{
		Title:     r.FormValue("title"),
		Tokenizer: r.FormValue("tokenizer"),
	}
	if v := r.FormValue("max_cost"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("max_cost: %w", chunker.ErrInvalidBudget)
		}
		req.MaxCost = &n
	}
	if v := r.FormValue("manifest_single"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("manifest_single must be a boolean, got %q", v)
		}
		req.ManifestSingle = &b
	}
	return req, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", limit)
	}
	return data, nil
}

func maxBytesExceeded(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
