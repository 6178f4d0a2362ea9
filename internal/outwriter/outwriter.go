// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteTrends prints trend rows using the configured output format.
func (ow *OutWriter) WriteTrends(trends []schema.TrendRow, cfg *contract.Config) error {
	return PrintTrendResults(trends, cfg)
}

// WriteRank prints the same-day leaderboard using the configured output format.
func (ow *OutWriter) WriteRank(trends []schema.TrendRow, date string, cfg *contract.Config) error {
	return PrintRankResults(trends, date, cfg)
}

// WriteHistory prints stored history rows using the configured output format.
func (ow *OutWriter) WriteHistory(rows []schema.HistoryRow, cfg *contract.Config) error {
	return PrintHistoryResults(rows, cfg)
}

// WriteCatalog prints the technology catalog using the configured output format.
func (ow *OutWriter) WriteCatalog(catalog []schema.Technology, cfg *contract.Config) error {
	return PrintCatalogResults(catalog, cfg)
}
