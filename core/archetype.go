package core

import (
	"sort"

	"github.com/talentmap/talentmap/core/algo"
	"github.com/talentmap/talentmap/schema"
)

// Archetype scoring constants. The maximum possible score is two primary
// matches plus three secondary matches.
const (
	primaryMatchPoints   = 2
	secondaryMatchPoints = 1

	topDominantCount = 4
	topCombinedCount = 6

	// fallbackConfidence is reported with the balanced fallback archetype.
	fallbackConfidence = 0.1
)

// MapToArchetype scores the fixed archetype catalogue against a classified
// profile and returns the best match, the runner-up, and a confidence score.
//
// Scoring: each archetype earns 2 points per primary dimension found among
// the respondent's top-4 dominant dimensions and 1 point per secondary
// dimension found among the top-6 dominant+supporting dimensions. Dimensions
// are ranked by T-score, ties broken by canonical dimension order.
//
// Tie-break is deterministic and part of the contract: equal scores prefer
// the archetype with a primary-dimension match over one whose matches were
// only secondary, and remaining ties go to the earlier catalogue entry.
// Confidence is the gap between the top score and the runner-up, normalized
// by the top score. When nothing scores above zero the balanced fallback
// archetype is returned with low confidence instead of an error.
func MapToArchetype(tiers map[schema.Dimension]schema.TalentClassification, scores map[schema.Dimension]schema.NormScore) schema.ArchetypeResult {
	ranked := rankDimensions(scores)

	topDominant := make(map[schema.Dimension]struct{}, topDominantCount)
	topCombined := make(map[schema.Dimension]struct{}, topCombinedCount)
	for _, d := range ranked {
		tier := tiers[d].Tier
		if tier == schema.DominantTier && len(topDominant) < topDominantCount {
			topDominant[d] = struct{}{}
		}
		if (tier == schema.DominantTier || tier == schema.SupportingTier) && len(topCombined) < topCombinedCount {
			topCombined[d] = struct{}{}
		}
	}

	catalogue := schema.ArchetypeCatalogue()
	archScores := make(map[string]int, len(catalogue))
	primaryHit := make(map[string]bool, len(catalogue))
	for _, arch := range catalogue {
		score := 0
		for _, d := range arch.Primary {
			if _, ok := topDominant[d]; ok {
				score += primaryMatchPoints
				primaryHit[arch.Name] = true
			}
		}
		for _, d := range arch.Secondary {
			if _, ok := topCombined[d]; ok {
				score += secondaryMatchPoints
			}
		}
		archScores[arch.Name] = score
	}

	// Catalogue order is the final tie-breaker, so walk it in order and only
	// replace the leader on a strictly better candidate.
	best, second := "", ""
	for _, arch := range catalogue {
		name := arch.Name
		switch {
		case best == "" || beats(name, best, archScores, primaryHit):
			second = best
			best = name
		case second == "" || beats(name, second, archScores, primaryHit):
			second = name
		}
	}

	result := schema.ArchetypeResult{
		Scores:    archScores,
		Synergies: matchSynergies(tiers),
	}

	if archScores[best] <= 0 {
		result.Primary = schema.BalancedArchetype
		result.Confidence = fallbackConfidence
		result.Fallback = true
		return result
	}

	result.Primary = best
	if second != "" && archScores[second] > 0 {
		result.Secondary = second
	}
	gap := archScores[best] - archScores[second]
	result.Confidence = algo.Clamp01(float64(gap) / float64(archScores[best]))
	return result
}

// beats reports whether candidate a should outrank b: higher score wins, and
// on equal scores a primary-dimension match beats secondary-only matches.
// Equal on both means b keeps its (earlier) catalogue position.
func beats(a, b string, scores map[string]int, primaryHit map[string]bool) bool {
	if scores[a] != scores[b] {
		return scores[a] > scores[b]
	}
	return primaryHit[a] && !primaryHit[b]
}

// rankDimensions orders all dimensions by T-score descending, breaking ties
// by canonical dimension order so the ranking is reproducible.
func rankDimensions(scores map[schema.Dimension]schema.NormScore) []schema.Dimension {
	ranked := make([]schema.Dimension, len(schema.AllDimensions))
	copy(ranked, schema.AllDimensions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]].TScore > scores[ranked[j]].TScore
	})
	return ranked
}

// matchSynergies returns the curated combinations whose both dimensions are
// dominant in this profile. Pure lookup.
func matchSynergies(tiers map[schema.Dimension]schema.TalentClassification) []schema.SynergyPair {
	var out []schema.SynergyPair
	for _, pair := range schema.SynergyCatalogue() {
		if tiers[pair.A].Tier == schema.DominantTier && tiers[pair.B].Tier == schema.DominantTier {
			out = append(out, pair)
		}
	}
	return out
}
