package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap/core"
	"github.com/talentmap/talentmap/internal/contract"
	mcp_internal "github.com/talentmap/talentmap/internal/mcp"
	"github.com/talentmap/talentmap/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Blocks:  6,
		Seed:    42,
		MaxIter: 50,
		Tol:     1e-4,
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerGenerateBlocks(t *testing.T) {
	s := mcp_internal.NewMCPServer(testConfig())

	res := callTool(t, s, "generate_blocks", map[string]any{
		"blocks": 4.0,
		"seed":   7.0,
	})
	require.False(t, res.IsError)

	var blocks []schema.QuartetBlock
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &blocks))
	assert.Len(t, blocks, 4)
	for _, block := range blocks {
		assert.NoError(t, schema.ValidateBlock(&block))
	}
}

func TestMCPServerScoreResponses(t *testing.T) {
	s := mcp_internal.NewMCPServer(testConfig())

	t.Run("invalid responses JSON", func(t *testing.T) {
		res := callTool(t, s, "score_responses", map[string]any{
			"responses_json": "{not json",
		})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid responses")
	})

	t.Run("empty corpus", func(t *testing.T) {
		res := callTool(t, s, "score_responses", map[string]any{
			"responses_json": "[]",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no responses to score")
	})

	t.Run("invalid blocks JSON", func(t *testing.T) {
		res := callTool(t, s, "score_responses", map[string]any{
			"responses_json": `{"respondent_id":"r1","responses":[]}`,
			"blocks_json":    "nope",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid blocks")
	})

	t.Run("scores a respondent against an explicit design", func(t *testing.T) {
		blocks, err := core.CreateBlocks(schema.DefaultStatementPool(), 6, 42)
		require.NoError(t, err)

		set := schema.ResponseSet{RespondentID: "mcp-resp-1"}
		for _, block := range blocks {
			set.Responses = append(set.Responses, schema.ForcedChoiceResponse{
				BlockID:        block.BlockID,
				MostLikeIndex:  0,
				LeastLikeIndex: 3,
			})
		}
		responsesJSON, err := json.Marshal(set)
		require.NoError(t, err)
		blocksJSON, err := json.Marshal(blocks)
		require.NoError(t, err)

		res := callTool(t, s, "score_responses", map[string]any{
			"responses_json": string(responsesJSON),
			"blocks_json":    string(blocksJSON),
		})
		require.False(t, res.IsError, "scoring should succeed: %v", res.Content)

		var results []schema.ScoreResult
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "mcp-resp-1", results[0].RespondentID)
		assert.Len(t, results[0].NormScores, len(schema.AllDimensions))
		assert.Len(t, results[0].Tiers, len(schema.AllDimensions))
	})
}

func TestMCPServerGetNormReport(t *testing.T) {
	s := mcp_internal.NewMCPServer(testConfig())

	res := callTool(t, s, "get_norm_report", map[string]any{})
	require.False(t, res.IsError)

	var table schema.NormTable
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &table))
	assert.Len(t, table.Dimensions, len(schema.AllDimensions))
}
