package core

import (
	"math"

	"github.com/talentmap/talentmap/schema"
)

// Boundary refinement thresholds. Stanines are whole-integer bands, so a
// score just over or under a band edge can land in the wrong tier; the
// percentile and T-score give finer-grained tie-breaking near those edges.
// The exact rules:
//
//   - stanine 7 promotes to dominant when percentile >= 87 AND t >= 61
//   - stanine 5 demotes to developing when percentile <= 42 AND t <= 42
//   - stanine 4 promotes to supporting when percentile >= 38 AND t >= 38
//
// Both conditions must hold; a single strong signal is not enough.
const (
	promoteDominantPercentile = 87.0
	promoteDominantT          = 61.0

	demoteDevelopingPercentile = 42.0
	demoteDevelopingT          = 42.0

	promoteSupportingPercentile = 38.0
	promoteSupportingT          = 38.0
)

// Expected tier distribution across the 12 dimensions, as fractions. Profiles
// outside these ranges are flagged anomalous (not rejected).
const (
	expectedDominantMin   = 0.08
	expectedDominantMax   = 0.15
	expectedSupportingMin = 0.60
	expectedSupportingMax = 0.75
	expectedDevelopingMin = 0.15
	expectedDevelopingMax = 0.25
)

// Classify assigns each dimension to a talent tier from its norm scores.
// Primary rule by stanine: 8-9 dominant, 5-7 supporting, 1-4 developing, then
// the boundary refinements above.
func Classify(scores map[schema.Dimension]schema.NormScore) map[schema.Dimension]schema.TalentClassification {
	out := make(map[schema.Dimension]schema.TalentClassification, len(scores))
	for d, ns := range scores {
		tier, refined := classifyOne(&ns)
		out[d] = schema.TalentClassification{
			Dimension:  d,
			Tier:       tier,
			Confidence: confidenceLabel(&ns, tier),
			Refined:    refined,
		}
	}
	return out
}

// classifyOne applies the stanine rule plus boundary refinement for a single
// dimension.
func classifyOne(ns *schema.NormScore) (schema.Tier, bool) {
	switch {
	case ns.Stanine >= 8:
		return schema.DominantTier, false
	case ns.Stanine == 7:
		if ns.Percentile >= promoteDominantPercentile && ns.TScore >= promoteDominantT {
			return schema.DominantTier, true
		}
		return schema.SupportingTier, false
	case ns.Stanine >= 6:
		return schema.SupportingTier, false
	case ns.Stanine == 5:
		if ns.Percentile <= demoteDevelopingPercentile && ns.TScore <= demoteDevelopingT {
			return schema.DevelopingTier, true
		}
		return schema.SupportingTier, false
	case ns.Stanine == 4:
		if ns.Percentile >= promoteSupportingPercentile && ns.TScore >= promoteSupportingT {
			return schema.SupportingTier, true
		}
		return schema.DevelopingTier, false
	default:
		return schema.DevelopingTier, false
	}
}

// confidenceLabel reflects how far the score fell from the nearest tier
// boundary, measured in stanine units against the tier actually assigned.
func confidenceLabel(ns *schema.NormScore, tier schema.Tier) string {
	s := float64(ns.Stanine)
	var dist float64
	switch tier {
	case schema.DominantTier:
		dist = s - 7.5
	case schema.SupportingTier:
		dist = math.Min(s-4.5, 7.5-s)
	default:
		dist = 4.5 - s
	}
	switch {
	case dist >= 1.5:
		return "high"
	case dist >= 0.5:
		return "moderate"
	default:
		return "borderline"
	}
}

// Summarize counts tiers across the profile and derives the coarse profile
// type: no dominant dimension reads as potential-focused, four or more as
// multi-strength, anything between as core-strength.
func Summarize(tiers map[schema.Dimension]schema.TalentClassification) schema.TierSummary {
	var sum schema.TierSummary
	for _, tc := range tiers {
		switch tc.Tier {
		case schema.DominantTier:
			sum.Dominant++
		case schema.SupportingTier:
			sum.Supporting++
		default:
			sum.Developing++
		}
	}
	total := sum.Dominant + sum.Supporting + sum.Developing
	if total == 0 {
		return sum
	}

	domFrac := float64(sum.Dominant) / float64(total)
	supFrac := float64(sum.Supporting) / float64(total)
	devFrac := float64(sum.Developing) / float64(total)
	sum.DominantPct = domFrac * 100.0
	sum.Anomalous = domFrac < expectedDominantMin || domFrac > expectedDominantMax ||
		supFrac < expectedSupportingMin || supFrac > expectedSupportingMax ||
		devFrac < expectedDevelopingMin || devFrac > expectedDevelopingMax

	switch {
	case sum.Dominant == 0:
		sum.ProfileType = "potential-focused"
	case sum.Dominant >= 4:
		sum.ProfileType = "multi-strength"
	default:
		sum.ProfileType = "core-strength"
	}
	return sum
}
