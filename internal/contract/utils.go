package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devpulse/devpulse/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	EliteColor     = color.New(color.FgRed, color.Bold)     // highest popularity band
	ProminentColor = color.New(color.FgMagenta, color.Bold) // strong, distinct signal
	PopularColor   = color.New(color.FgYellow)              // standard signal, not bold
	EmergingColor  = color.New(color.FgCyan)                // informational / low-priority signal

	AboveColor = color.New(color.FgGreen)
	BelowColor = color.New(color.FgRed)
)

// TierLabel returns the popularity tier as a display string, colored when
// enabled.
func TierLabel(tier schema.PopularityTier, useColors bool) string {
	if !useColors {
		return string(tier)
	}
	switch tier {
	case schema.TierElite:
		return EliteColor.Sprint(string(tier))
	case schema.TierProminent:
		return ProminentColor.Sprint(string(tier))
	case schema.TierPopular:
		return PopularColor.Sprint(string(tier))
	default:
		return EmergingColor.Sprint(string(tier))
	}
}

// TrendLabel returns the trend direction as a display string, colored when
// enabled.
func TrendLabel(dir schema.TrendDirection, useColors bool) string {
	if !useColors {
		return string(dir)
	}
	switch dir {
	case schema.TrendAbove:
		return AboveColor.Sprint(string(dir))
	case schema.TrendBelow:
		return BelowColor.Sprint(string(dir))
	default:
		return string(dir)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDefaultDBFilePath returns the path to the SQLite DB file used when no
// connection string is configured.
func GetDefaultDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".devpulse.db"
	}
	return filepath.Join(homeDir, ".devpulse.db")
}
