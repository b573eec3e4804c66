package cmd

import (
	"github.com/spf13/cobra"
	"github.com/talentmap/talentmap/core"
	"github.com/talentmap/talentmap/internal/contract"
)

// simulateCmd generates a synthetic response corpus.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate a synthetic response corpus with known traits.",
	Long: `Generate forced-choice answers from synthetic respondents whose latent
traits are drawn from a standard normal distribution.

Useful for:
- Smoke-testing calibration before real data exists
- Checking parameter recovery (simulate, calibrate, compare)
- Producing demo corpora for reports and downstream tooling

The corpus is deterministic for a given block design and seed. When a
response store is configured the corpus is also persisted there, so a
follow-up 'talentmap calibrate' needs no files at all.

Examples:
  # 100 synthetic respondents over the default design
  talentmap simulate

  # A larger corpus written to a file for later calibration
  talentmap simulate --respondents 500 --output-file corpus.json

  # Parquet export for offline analytics
  talentmap simulate --output parquet --output-file corpus.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSimulate(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot simulate corpus", err)
		}
	},
}
