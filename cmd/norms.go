package cmd

import (
	"github.com/spf13/cobra"
	"github.com/talentmap/talentmap/core"
	"github.com/talentmap/talentmap/internal/contract"
)

// normsCmd derives, publishes or shows norm tables.
var normsCmd = &cobra.Command{
	Use:   "norms",
	Short: "Derive, publish or show population norm tables.",
	Long: `Manage the per-dimension population norms that scoring reports against.

Three modes, picked by the flags given:
- With --norms-file: load a table verbatim (e.g. curated literature norms)
- With --responses: derive a table from the corpus theta distribution
- With neither: show the currently effective table (latest published, or
  the shipped literature defaults)

Norm tables version independently of item parameters, so norms can be
refreshed for a new population without recalibrating the instrument.

Examples:
  # Show the norms scoring currently uses
  talentmap norms

  # Derive fresh norms from a large corpus and publish them
  talentmap norms --responses corpus.json --publish

  # Publish a curated table
  talentmap norms --norms-file norms.json --publish`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteNorms(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot process norms", err)
		}
	},
}
