// Package cli implements the Cobra command hierarchy for the repograph CLI tool.
// This file exposes the selection pipeline as a Model Context Protocol tool
// over stdio, so an LLM client (Claude Desktop, an agent harness) can request
// a context document directly instead of shelling out to the binary. It is a
// thin adapter over internal/engine: all selection and ranking logic lives
// there, this file only translates MCP tool calls into engine.Run
// invocations and marshals the result back.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/repograph/repograph/internal/config"
	"github.com/repograph/repograph/internal/engine"
)

// mcpServerName and mcpServerVersion identify this process to MCP clients
// during the initialize handshake.
const (
	mcpServerName    = "repograph-mcp-server"
	mcpServerVersion = "0.1.0"
)

// mcpServer wraps an *mcp.Server configured with the single generate_context
// tool.
type mcpServer struct {
	inner *mcp.Server
}

// newMCPServer constructs an mcpServer with its tools registered but not yet
// serving.
func newMCPServer() *mcpServer {
	inner := mcp.NewServer(&mcp.Implementation{
		Name:    mcpServerName,
		Version: mcpServerVersion,
	}, nil)

	s := &mcpServer{inner: inner}
	s.registerTools()
	return s
}

// Serve runs the server over stdio until ctx is cancelled or the transport
// closes.
func (s *mcpServer) Serve(ctx context.Context) error {
	return s.inner.Run(ctx, &mcp.StdioTransport{})
}

func (s *mcpServer) registerTools() {
	s.inner.AddTool(&mcp.Tool{
		Name: "generate_context",
		Description: "Run the repograph selection pipeline over a repository and return " +
			"a token-budgeted context document describing it, along with per-file " +
			"token and priority statistics.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"dir": {
					Type:        "string",
					Description: "Repository root to scan. Defaults to the current directory.",
				},
				"max_tokens": {
					Type:        "integer",
					Description: "Token budget for the assembled document. 0 means unlimited.",
				},
				"tokenizer": {
					Type:        "string",
					Description: "Token counting model: cl100k_base, o200k_base, or none.",
				},
				"format": {
					Type:        "string",
					Description: "Output document format: markdown or xml.",
				},
				"target": {
					Type:        "string",
					Description: "LLM target profile: claude, chatgpt, or generic.",
				},
				"include": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					Description: "Glob patterns to force-include (applied before excludes).",
				},
				"exclude": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					Description: "Glob patterns to exclude (applied after includes).",
				},
			},
		},
	}, s.handleGenerateContext)
}

// mcpGenerateContextParams mirrors the generate_context tool's InputSchema
// for unmarshaling request arguments.
type mcpGenerateContextParams struct {
	Dir       string   `json:"dir"`
	MaxTokens int      `json:"max_tokens"`
	Tokenizer string   `json:"tokenizer"`
	Format    string   `json:"format"`
	Target    string   `json:"target"`
	Include   []string `json:"include"`
	Exclude   []string `json:"exclude"`
}

// mcpGenerateContextResult is the structured payload returned in the tool's
// text content, summarizing the run alongside the rendered document.
type mcpGenerateContextResult struct {
	Document      string `json:"document"`
	FilesIncluded int    `json:"files_included"`
	FilesExcluded int    `json:"files_excluded"`
	TotalTokens   int    `json:"total_tokens"`
	Diagnostics   int    `json:"diagnostics"`
}

func (s *mcpServer) handleGenerateContext(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params mcpGenerateContextParams
	if req.Params != nil && len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return mcpErrorResult(fmt.Errorf("invalid arguments: %w", err)), nil
		}
	}

	fv := config.DefaultFlagValues()
	if params.Dir != "" {
		fv.Dir = params.Dir
	}
	if params.MaxTokens > 0 {
		fv.MaxTokens = params.MaxTokens
	}
	if params.Tokenizer != "" {
		fv.Tokenizer = params.Tokenizer
	}
	if params.Format != "" {
		fv.Format = params.Format
	}
	if params.Target != "" {
		fv.Target = params.Target
	}
	fv.Includes = params.Include
	fv.Excludes = params.Exclude

	result, err := engine.Run(ctx, fv)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	payload := mcpGenerateContextResult{
		Document:      result.Document,
		FilesIncluded: len(result.Budget.IncludedFiles),
		FilesExcluded: len(result.Budget.ExcludedFiles),
		TotalTokens:   result.Budget.TotalTokens,
		Diagnostics:   result.Diagnostics.Len(),
	}
	return mcpJSONResult(payload)
}

func mcpJSONResult(v any) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(body)}},
	}, nil
}

func mcpErrorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
