// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/talentmap/talentmap/internal/contract"
)

// NewMCPServer initializes and configures the Talentmap MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Talentmap Assessment Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: generate_blocks ---
	s.AddTool(mcp.NewTool("generate_blocks",
		mcp.WithDescription("Design a balanced set of forced-choice quartet blocks from the statement pool."),
		mcp.WithNumber("blocks", mcp.Description("Number of quartet blocks to design. Defaults to the configured block count.")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for a reproducible design. Defaults to the configured seed.")),
	), h.handleGenerateBlocks)

	// --- 2. Tool: score_responses ---
	s.AddTool(mcp.NewTool("score_responses",
		mcp.WithDescription("Score forced-choice answers into a normed talent profile with tiers and archetype."),
		mcp.WithString("responses_json", mcp.Description("Respondent answers as JSON: a single {respondent_id, responses} object or an array of them."), mcp.Required()),
		mcp.WithString("blocks_json", mcp.Description("Optional block design as a JSON array. Defaults to the stored or seed-derived design.")),
	), h.handleScoreResponses)

	// --- 3. Tool: get_norm_report ---
	s.AddTool(mcp.NewTool("get_norm_report",
		mcp.WithDescription("Show the norm table scoring currently reports against (latest published or shipped defaults)."),
	), h.handleGetNormReport)

	return s
}

// StartMCPServer starts the Talentmap MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
