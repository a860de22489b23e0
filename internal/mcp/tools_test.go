package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/parser"
)

type toolFile struct {
	Name    string `json:"name"`
	Index   int    `json:"index"`
	Content string `json:"content"`
}

type toolResult struct {
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	TotalCost int        `json:"total_cost"`
	MaxCost   int        `json:"max_cost"`
	Single    bool       `json:"single"`
	Parts     int        `json:"parts"`
	Files     []toolFile `json:"files"`
	Written   []string   `json:"written"`
}

func newTestServer() *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer("test", chunker.Options{MaxCost: 1000}, parser.Options{}, log)
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func decodeResult(t *testing.T, result *mcp.CallToolResult) toolResult {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var out toolResult
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func requireMCPError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	mcpErr, ok := err.(*MCPError)
	require.True(t, ok, "expected *MCPError, got %T", err)
	assert.Equal(t, code, mcpErr.Code)
}

func TestSplitMarkdown(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	t.Run("multi part with index", func(t *testing.T) {
		text := strings.Repeat("word word word word word\n\n", 20)
		result, err := s.handleSplitMarkdown(ctx, callRequest("split_markdown", map[string]interface{}{
			"text":     text,
			"title":    "Guide",
			"max_cost": float64(30),
		}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		assert.Equal(t, "guide", out.Slug)
		assert.Equal(t, 30, out.MaxCost)
		assert.False(t, out.Single)
		assert.Greater(t, out.Parts, 1)
		require.Len(t, out.Files, out.Parts+1)

		assert.Equal(t, "guide-part1.md", out.Files[0].Name)
		assert.Equal(t, 1, out.Files[0].Index)
		last := out.Files[len(out.Files)-1]
		assert.Equal(t, "guide-index.md", last.Name)
		assert.Equal(t, 0, last.Index)
		assert.Contains(t, last.Content, "- [Part 1](guide-part1.md)")
	})

	t.Run("single part", func(t *testing.T) {
		result, err := s.handleSplitMarkdown(ctx, callRequest("split_markdown", map[string]interface{}{
			"text":  "tiny\n",
			"title": "Tiny",
		}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		assert.True(t, out.Single)
		require.Len(t, out.Files, 1)
		assert.Equal(t, "tiny.md", out.Files[0].Name)
		assert.Equal(t, "tiny\n", out.Files[0].Content)
		assert.Equal(t, 1000, out.MaxCost)
	})

	t.Run("manifest for single", func(t *testing.T) {
		result, err := s.handleSplitMarkdown(ctx, callRequest("split_markdown", map[string]interface{}{
			"text":            "tiny\n",
			"title":           "Tiny",
			"manifest_single": true,
		}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		assert.False(t, out.Single)
		require.Len(t, out.Files, 2)
		assert.Equal(t, "tiny-part1.md", out.Files[0].Name)
		assert.Equal(t, "tiny-index.md", out.Files[1].Name)
	})
}

func TestSplitMarkdown_InvalidParams(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing text", map[string]interface{}{"title": "x"}},
		{"text not a string", map[string]interface{}{"text": 42}},
		{"zero budget", map[string]interface{}{"text": "a", "max_cost": float64(0)}},
		{"negative budget", map[string]interface{}{"text": "a", "max_cost": -5}},
		{"unknown tokenizer", map[string]interface{}{"text": "a", "tokenizer": "no-such-encoding"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleSplitMarkdown(ctx, callRequest("split_markdown", tt.args))
			assert.Nil(t, result)
			requireMCPError(t, err, ErrorCodeInvalidParams)
		})
	}

	t.Run("arguments not an object", func(t *testing.T) {
		req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: "split_markdown", Arguments: "nope"}}
		_, err := s.handleSplitMarkdown(ctx, req)
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestSplitFile(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	dir := t.TempDir()
	src := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(src, []byte("# Handbook\n\nHello there.\n"), 0o644))

	t.Run("returns content", func(t *testing.T) {
		result, err := s.handleSplitFile(ctx, callRequest("split_file", map[string]interface{}{
			"path": src,
		}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		assert.Equal(t, "Handbook", out.Title)
		require.Len(t, out.Files, 1)
		assert.Equal(t, "handbook.md", out.Files[0].Name)
		assert.Equal(t, "# Handbook\n\nHello there.\n", out.Files[0].Content)
		assert.Empty(t, out.Written)
	})

	t.Run("writes to out_dir", func(t *testing.T) {
		outDir := filepath.Join(dir, "out")
		result, err := s.handleSplitFile(ctx, callRequest("split_file", map[string]interface{}{
			"path":    src,
			"title":   "Renamed",
			"out_dir": outDir,
		}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		require.Equal(t, []string{filepath.Join(outDir, "renamed.md")}, out.Written)
		assert.Empty(t, out.Files[0].Content)

		got, err := os.ReadFile(out.Written[0])
		require.NoError(t, err)
		assert.Equal(t, "# Handbook\n\nHello there.\n", string(got))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := s.handleSplitFile(ctx, callRequest("split_file", map[string]interface{}{
			"path": filepath.Join(dir, "absent.md"),
		}))
		requireMCPError(t, err, ErrorCodeSourceFailed)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := s.handleSplitFile(ctx, callRequest("split_file", map[string]interface{}{
			"path": filepath.Join(dir, "data.xyz"),
		}))
		requireMCPError(t, err, ErrorCodeSourceFailed)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := s.handleSplitFile(ctx, callRequest("split_file", map[string]interface{}{}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestEstimateTokens(t *testing.T) {
	s := newTestServer()

	result, err := s.handleEstimateTokens(context.Background(), callRequest("estimate_tokens", map[string]interface{}{
		"text": "Hello, world!\nsecond",
	}))
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var out struct {
		Tokens int `json:"tokens"`
		Lines  int `json:"lines"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	assert.Equal(t, chunker.EstimateTokens("Hello, world!\nsecond"), out.Tokens)
	assert.Equal(t, 2, out.Lines)

	_, err = s.handleEstimateTokens(context.Background(), callRequest("estimate_tokens", map[string]interface{}{}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestNewServer_RegistersTools(t *testing.T) {
	s := newTestServer()
	require.NotNil(t, s.mcp)

	for _, tool := range []mcp.Tool{splitMarkdownTool(), splitFileTool(), estimateTokensTool()} {
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type, tool.Name)
		assert.NotEmpty(t, tool.InputSchema.Required, tool.Name)
	}
}
