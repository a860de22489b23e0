package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func splitOptionProperties(props map[string]interface{}) map[string]interface{} {
	props["title"] = map[string]interface{}{
		"type":        "string",
		"description": "Document title used for file names and the index heading",
	}
	props["max_cost"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum estimated tokens per part",
		"minimum":     1,
	}
	props["manifest_single"] = map[string]interface{}{
		"type":        "boolean",
		"description": "If true, emit navigation and an index even when the document fits in one part",
	}
	props["tokenizer"] = map[string]interface{}{
		"type":        "string",
		"description": "Cost model: \"heuristic\" or a tiktoken encoding such as cl100k_base",
	}
	return props
}

// splitMarkdownTool returns the tool definition for split_markdown
func splitMarkdownTool() mcp.Tool {
	return mcp.Tool{
		Name:        "split_markdown",
		Description: "Split Markdown text into token-bounded parts with navigation links and an index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: splitOptionProperties(map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Markdown text to split",
				},
			}),
			Required: []string{"text"},
		},
	}
}

// splitFileTool returns the tool definition for split_file
func splitFileTool() mcp.Tool {
	return mcp.Tool{
		Name:        "split_file",
		Description: "Convert a document (md, txt, html, csv, pdf, docx) to Markdown and split it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: splitOptionProperties(map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the source document",
				},
				"out_dir": map[string]interface{}{
					"type":        "string",
					"description": "If set, write the parts into this directory and return their paths",
				},
			}),
			Required: []string{"path"},
		},
	}
}

// estimateTokensTool returns the tool definition for estimate_tokens
func estimateTokensTool() mcp.Tool {
	return mcp.Tool{
		Name:        "estimate_tokens",
		Description: "Estimate the token cost of a piece of text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to measure",
				},
				"tokenizer": map[string]interface{}{
					"type":        "string",
					"description": "Cost model: \"heuristic\" or a tiktoken encoding",
				},
			},
			Required: []string{"text"},
		},
	}
}
