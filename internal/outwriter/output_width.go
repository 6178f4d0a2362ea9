// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/devpulse/devpulse/internal/contract"
)

// GetMaxTableNameWidth calculates the maximum width for technology names in
// table output based on terminal width.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with borders and padding
	baseWidth := 60

	available := termWidth - baseWidth
	if available < 10 {
		// Minimum reasonable name width
		return 10
	}
	if available > 40 {
		// Maximum name width to prevent overly wide tables
		return 40
	}
	return available
}

// truncateName shortens a technology name to fit the table column.
func truncateName(name string, maxWidth int) string {
	if len(name) <= maxWidth {
		return name
	}
	if maxWidth <= 3 {
		return name[:maxWidth]
	}
	return name[:maxWidth-3] + "..."
}
