package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/talentmap/talentmap/core"
	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/internal/corpusio"
	"github.com/talentmap/talentmap/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleGenerateBlocks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if b := request.GetInt("blocks", 0); b > 0 {
		cfg.Blocks = b
	}
	if s := request.GetInt("seed", 0); s != 0 {
		cfg.Seed = int64(s)
	}

	blocks, err := core.GetBlockDesignResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("block design failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(blocks, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreResponses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	corpus, err := corpusio.ParseResponses([]byte(request.GetString("responses_json", "")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid responses: %v", err)), nil
	}

	var blocks []schema.QuartetBlock
	if blocksJSON := request.GetString("blocks_json", ""); blocksJSON != "" {
		blocks, err = corpusio.ParseBlocks([]byte(blocksJSON))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid blocks: %v", err)), nil
		}
	}

	results, err := core.ScoreParsedCorpus(core.WithSuppressHeader(ctx), cfg, corpus, blocks)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetNormReport(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table := core.GetNormReportResults()

	jsonData, _ := json.MarshalIndent(table, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
