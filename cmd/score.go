package cmd

import (
	"github.com/spf13/cobra"
	"github.com/talentmap/talentmap/core"
	"github.com/talentmap/talentmap/internal/contract"
)

// scoreCmd scores respondent answers into talent profiles.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score respondent answers into normed talent profiles.",
	Long: `Estimate latent trait scores from forced-choice answers and report them
against population norms.

For each respondent this runs the full pipeline:
- Latent trait estimation (MAP with a standard-normal prior)
- Normative transform (percentile, T-score, stanine, sten)
- Talent tier classification with boundary refinements
- Career archetype mapping with synergy highlights

Calibrated item parameters and the latest norm table are read from the
parameter store when available; otherwise the shipped defaults are used and
the report says so.

Examples:
  # Score a corpus file against the stored block design
  talentmap score --responses answers.json

  # Score against an explicit block design with full detail
  talentmap score --responses answers.json --blocks-file blocks.json --detail

  # Export per-dimension rows for offline analytics
  talentmap score --responses answers.json --output parquet --output-file scores.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot score responses", err)
		}
	},
}
