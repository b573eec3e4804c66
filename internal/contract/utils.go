package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/talentmap/talentmap/schema"
)

// Color variables for console output.
var (
	dominantColor   = color.New(color.FgGreen, color.Bold) // dominant tiers are the headline
	supportingColor = color.New(color.FgCyan)              // supporting tiers are informational
	developingColor = color.New(color.FgYellow)            // developing tiers warrant attention, not alarm
)

// GetPlainTierLabel returns the plain text label for a tier. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainTierLabel(tier schema.Tier) string {
	switch tier {
	case schema.DominantTier:
		return "Dominant"
	case schema.SupportingTier:
		return "Supporting"
	default:
		return "Developing"
	}
}

// GetColorTierLabel returns a colored tier label for console output (table).
func GetColorTierLabel(tier schema.Tier) string {
	text := GetPlainTierLabel(tier)
	switch tier {
	case schema.DominantTier:
		return dominantColor.Sprint(text)
	case schema.SupportingTier:
		return supportingColor.Sprint(text)
	default:
		return developingColor.Sprint(text)
	}
}

// TruncateText shortens statement text for table display, appending an
// ellipsis when the text exceeds maxLen.
func TruncateText(text string, maxLen int) string {
	if maxLen <= 3 || len(text) <= maxLen {
		if len(text) <= maxLen {
			return text
		}
		return text[:maxLen]
	}
	return text[:maxLen-3] + "..."
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
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

// GetParamDBFilePath returns the path to the SQLite DB file for parameter
// storage.
func GetParamDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".talentmap_params.db"
	}
	return filepath.Join(homeDir, ".talentmap_params.db")
}

// GetResponseDBFilePath returns the path to the SQLite DB file for response
// storage.
func GetResponseDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".talentmap_responses.db"
	}
	return filepath.Join(homeDir, ".talentmap_responses.db")
}
