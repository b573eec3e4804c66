package core

import (
	"time"

	"github.com/talentmap/talentmap/schema"
)

// ScoreRespondent runs the full per-respondent pipeline: theta estimation,
// normative transform, tier classification and archetype mapping. One
// synchronous call producing the complete result bundle.
//
// The computation is pure and stateless over in-memory inputs; independent
// respondents can be scored concurrently without synchronization.
func ScoreRespondent(set *schema.ResponseSet, blocks map[string]*schema.QuartetBlock, params *schema.ItemParameters, norms *schema.NormTable, opts EstimateOptions) (*schema.ScoreResult, error) {
	est, err := EstimateTheta(set, blocks, params, opts)
	if err != nil {
		return nil, err
	}

	normScores := ToNormScores(est.Theta, norms)
	tiers := Classify(normScores)

	return &schema.ScoreResult{
		RespondentID: set.RespondentID,
		Theta:        *est,
		NormScores:   normScores,
		Tiers:        tiers,
		Summary:      Summarize(tiers),
		Archetype:    MapToArchetype(tiers, normScores),
		NormVersion:  norms.Version,
		ScoredAt:     time.Now().UTC(),
	}, nil
}
