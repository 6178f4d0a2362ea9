package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.HistoryStore
}

// validDate rejects anything that is not a YYYY-MM-DD string.
func validDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(schema.DateFormat, s); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return nil
}

func (h *toolHandler) handleGetTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	technology := request.GetString("technology", "")
	date := request.GetString("date", "")
	if err := validDate(date); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	trends, err := core.ComputeTrends(ctx, h.store, cfg.ProcessDate)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend computation failed: %v", err)), nil
	}
	trends = core.FilterTrends(trends, technology, date)

	jsonData, _ := json.MarshalIndent(trends, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRankings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	date := request.GetString("date", "")
	if err := validDate(date); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	trends, err := core.ComputeTrends(ctx, h.store, cfg.ProcessDate)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend computation failed: %v", err)), nil
	}
	if len(trends) == 0 {
		return mcp.NewToolResultError("no trend rows available; run the pipeline first"), nil
	}

	if date == "" {
		for _, tr := range trends {
			if tr.SnapshotDate > date {
				date = tr.SnapshotDate
			}
		}
	}
	day := core.FilterTrends(trends, "", date)
	if len(day) > cfg.ResultLimit {
		day = day[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(map[string]any{"date": date, "ranks": day}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	technology := request.GetString("technology", "")
	if technology == "" {
		return mcp.NewToolResultError("technology is required"), nil
	}
	from := request.GetString("from", "")
	to := request.GetString("to", "")
	if err := validDate(from); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := validDate(to); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := h.store.GetHistory(ctx, technology, from, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
