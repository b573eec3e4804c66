package cmd

import (
	"github.com/spf13/cobra"
	"github.com/talentmap/talentmap/core"
	"github.com/talentmap/talentmap/internal/contract"
)

// calibrateCmd fits item parameters from a response corpus.
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Fit item parameters from a multi-respondent corpus.",
	Long: `Calibrate per-dimension discrimination and offset parameters from a
response corpus by alternating maximum likelihood:

1. Estimate every respondent's latent traits under the current parameters
2. Re-fit each dimension's parameters against those estimates
3. Repeat until the corpus log-likelihood stops improving

Dimensions with too few observations are clamped to safe defaults instead of
being allowed to diverge. The report includes convergence status and a
Cronbach-style internal consistency figure per dimension.

With --publish the fitted parameters become a new immutable version in the
parameter store; scoring picks up the latest version automatically. A
non-converged fit is never published.

Examples:
  # Calibrate from a corpus file and inspect the fit
  talentmap calibrate --responses corpus.json

  # Calibrate from the stored corpus and publish the parameters
  talentmap calibrate --publish`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCalibrate(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot calibrate parameters", err)
		}
	},
}
