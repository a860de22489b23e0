// Package mcp exposes the splitter as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/parser"
)

// ServerName is the MCP server name
const ServerName = "mdsplit"

// Server wraps the MCP server with the splitter defaults.
type Server struct {
	mcp        *server.MCPServer
	defaults   chunker.Options
	parserOpts parser.Options
	log        *slog.Logger
}

// NewServer creates an MCP server whose tools fall back to defaults when a
// call leaves an option unset.
func NewServer(version string, defaults chunker.Options, parserOpts parser.Options, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		mcp:        server.NewMCPServer(ServerName, version),
		defaults:   defaults,
		parserOpts: parserOpts,
		log:        log,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until the client hangs up.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("mcp server listening on stdio", "name", ServerName)
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(splitMarkdownTool(), s.handleSplitMarkdown)
	s.mcp.AddTool(splitFileTool(), s.handleSplitFile)
	s.mcp.AddTool(estimateTokensTool(), s.handleEstimateTokens)
}
