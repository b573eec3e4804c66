package cmd

import (
	"github.com/spf13/cobra"
	"github.com/talentmap/talentmap/core"
	"github.com/talentmap/talentmap/internal/contract"
)

// blocksCmd designs a quartet block set from the statement pool.
var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Design a balanced set of forced-choice quartet blocks.",
	Long: `Design quartet blocks from the statement catalogue.

Each block holds four statements from four different trait dimensions with
similar social-desirability ratings, so respondents cannot simply pick the
"nice" answer. The designer balances:
- How often each dimension appears across the questionnaire
- Which dimension pairs appear together (co-occurrence diversity)
- Social-desirability spread inside each block

The design is deterministic for a given pool and seed, so a stored seed is
enough to reproduce the questionnaire a respondent saw.

Examples:
  # Design the default 20 blocks from the shipped pool
  talentmap blocks

  # A larger questionnaire from a custom pool, exported as JSON
  talentmap blocks --blocks 30 --pool-file pool.json --output json --output-file blocks.json

  # Include loadings and desirability ratings in the listing
  talentmap blocks --detail`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDesignBlocks(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot design blocks", err)
		}
	},
}
