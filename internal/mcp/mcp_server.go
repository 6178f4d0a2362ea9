// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/devpulse/devpulse/internal/contract"
)

// NewMCPServer initializes and configures the devpulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"DevPulse Adoption Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_trends ---
	s.AddTool(mcp.NewTool("get_trends",
		mcp.WithDescription("Get trailing-window trend statistics (7/30-row averages, growth, daily rank) for tracked technologies."),
		mcp.WithString("technology", mcp.Description("Filter to one technology by its canonical name (e.g. 'airflow').")),
		mcp.WithString("date", mcp.Description("Filter to one snapshot date (YYYY-MM-DD).")),
	), h.handleGetTrends)

	// --- 2. Tool: get_rankings ---
	s.AddTool(mcp.NewTool("get_rankings",
		mcp.WithDescription("Get the same-day technology leaderboard ordered by star count rank."),
		mcp.WithString("date", mcp.Description("Snapshot date (YYYY-MM-DD). Defaults to the latest stored date.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetRankings)

	// --- 3. Tool: get_history ---
	s.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Get stored per-day metric rows with day-over-day deltas for one technology."),
		mcp.WithString("technology", mcp.Description("Canonical technology name (e.g. 'pandas')."), mcp.Required()),
		mcp.WithString("from", mcp.Description("Inclusive lower snapshot-date bound (YYYY-MM-DD).")),
		mcp.WithString("to", mcp.Description("Inclusive upper snapshot-date bound (YYYY-MM-DD).")),
	), h.handleGetHistory)

	return s
}

// StartMCPServer starts the devpulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
