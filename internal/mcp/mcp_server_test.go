package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpulse/devpulse/internal/contract"
	mcp_internal "github.com/devpulse/devpulse/internal/mcp"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		ProcessDate: time.Now().UTC(),
		ResultLimit: 25,
	}

	// Create a dummy store, though we shouldn't hit it because we test validation errors
	var store contract.HistoryStore
	s := mcp_internal.NewMCPServer(baseCfg, store)

	ctx := context.Background()

	t.Run("get_history missing technology", func(t *testing.T) {
		tool := s.GetTool("get_history")
		require.NotNil(t, tool, "Tool get_history should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_history",
				Arguments: map[string]any{
					"technology": "", // Missing required
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "technology is required")
	})

	t.Run("get_trends invalid date", func(t *testing.T) {
		tool := s.GetTool("get_trends")
		require.NotNil(t, tool, "Tool get_trends should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_trends",
				Arguments: map[string]any{
					"date": "31-08-2025", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "expected YYYY-MM-DD")
	})

	t.Run("get_rankings invalid date", func(t *testing.T) {
		tool := s.GetTool("get_rankings")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_rankings",
				Arguments: map[string]any{
					"date": "someday", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "expected YYYY-MM-DD")
	})
}
