package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/output"
	"github.com/dgallion1/mdsplit/internal/parser"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeSourceFailed  = -32001 // Source document missing, unreadable or unsupported
)

// handleSplitMarkdown handles the split_markdown tool invocation
func (s *Server) handleSplitMarkdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	opts, err := s.splitOptions(args)
	if err != nil {
		return nil, err
	}

	res, err := chunker.Split(text, getStringDefault(args, "title", ""), opts)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "split failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	s.log.Debug("split_markdown", "slug", res.Slug, "parts", len(res.Chunks), "total_cost", res.TotalCost)

	return mcp.NewToolResultText(formatJSON(resultResponse(res, true))), nil
}

// handleSplitFile handles the split_file tool invocation
func (s *Server) handleSplitFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path := getStringDefault(args, "path", "")
	if path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	opts, err := s.splitOptions(args)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "request cancelled", nil)
	}

	doc, err := parser.Open(path, s.parserOpts)
	if err != nil {
		if errors.Is(err, parser.ErrSourceUnavailable) || errors.Is(err, parser.ErrUnsupportedFormat) {
			return nil, newMCPError(ErrorCodeSourceFailed, "cannot read source document", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		return nil, newMCPError(ErrorCodeInternalError, "parse failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	title := getStringDefault(args, "title", "")
	if title == "" {
		title = doc.Title
	}
	res, err := chunker.Split(doc.Text, title, opts)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "split failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	outDir := getStringDefault(args, "out_dir", "")
	if outDir == "" {
		return mcp.NewToolResultText(formatJSON(resultResponse(res, true))), nil
	}

	paths, err := output.WriteFiles(outDir, res.Files())
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	s.log.Info("split_file wrote parts", "path", path, "out_dir", outDir, "files", len(paths))

	response := resultResponse(res, false)
	response["written"] = paths
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleEstimateTokens handles the estimate_tokens tool invocation
func (s *Server) handleEstimateTokens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	cost, err := s.costFunc(args)
	if err != nil {
		return nil, err
	}

	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n")
		if !strings.HasSuffix(text, "\n") {
			lines++
		}
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"tokens": cost(text),
		"lines":  lines,
		"chars":  len([]rune(text)),
	})), nil
}

// splitOptions layers per-call arguments over the server defaults.
func (s *Server) splitOptions(args map[string]interface{}) (chunker.Options, error) {
	opts := s.defaults

	if _, set := args["max_cost"]; set {
		maxCost := getIntDefault(args, "max_cost", 0)
		if maxCost <= 0 {
			return opts, newMCPError(ErrorCodeInvalidParams, "max_cost must be a positive integer", map[string]interface{}{
				"param":  "max_cost",
				"reason": chunker.ErrInvalidBudget.Error(),
			})
		}
		opts.MaxCost = maxCost
	}

	opts.ManifestForSingle = getBoolDefault(args, "manifest_single", opts.ManifestForSingle)

	if _, set := args["tokenizer"]; set {
		cost, err := s.costFunc(args)
		if err != nil {
			return opts, err
		}
		opts.Cost = cost
	}
	return opts, nil
}

func (s *Server) costFunc(args map[string]interface{}) (chunker.CostFunc, error) {
	name := getStringDefault(args, "tokenizer", "")
	if name == "" {
		if s.defaults.Cost != nil {
			return s.defaults.Cost, nil
		}
		return chunker.EstimateTokens, nil
	}
	cost, err := chunker.CostFuncByName(name)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "unknown tokenizer", map[string]interface{}{
			"param":  "tokenizer",
			"reason": err.Error(),
		})
	}
	return cost, nil
}

func resultResponse(res *chunker.Result, withContent bool) map[string]interface{} {
	files := make([]map[string]interface{}, 0, len(res.Chunks)+1)
	for _, f := range res.Files() {
		entry := map[string]interface{}{
			"name":  f.Title,
			"index": f.Index,
		}
		if withContent {
			entry["content"] = f.Content
		}
		files = append(files, entry)
	}
	return map[string]interface{}{
		"title":      res.Title,
		"slug":       res.Slug,
		"total_cost": res.TotalCost,
		"max_cost":   res.MaxCost,
		"single":     res.Single(),
		"parts":      len(res.Chunks),
		"files":      files,
	}
}

func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
