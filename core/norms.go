package core

import (
	"math"

	"github.com/talentmap/talentmap/core/algo"
	"github.com/talentmap/talentmap/schema"
)

// Percentile clamp bounds. Reports never show 0 or 100: the instrument cannot
// support claims that extreme.
const (
	minPercentile = 1.0
	maxPercentile = 99.0
)

// ToNormScores converts a latent trait vector into population-referenced
// scores using the given norm table. Dimensions missing from the table fall
// back to the literature default (mean 0, sd 1) rather than failing the whole
// request; those scores are tagged Fallback.
//
// Pure function: identical inputs always produce identical outputs.
func ToNormScores(theta map[schema.Dimension]float64, table *schema.NormTable) map[schema.Dimension]schema.NormScore {
	out := make(map[schema.Dimension]schema.NormScore, schema.NumDimensions)
	for _, d := range schema.AllDimensions {
		np, ok := table.Dimensions[d]
		fallback := false
		if !ok || np.SD <= 0 {
			np = schema.NormParameters{Mean: 0, SD: 1}
			fallback = true
		}

		z := (theta[d] - np.Mean) / np.SD
		percentile := algo.Clamp(algo.NormalCDF(z)*100.0, minPercentile, maxPercentile)
		stanine := int(algo.Clamp(math.Round(z*2+5), 1, 9))
		sten := int(algo.Clamp(math.Round(z*2+5.5), 1, 10))

		out[d] = schema.NormScore{
			Dimension:  d,
			Percentile: percentile,
			TScore:     50 + 10*z,
			Stanine:    stanine,
			Sten:       sten,
			Label:      interpretationLabel(stanine),
			Fallback:   fallback,
		}
	}
	return out
}

// MinNormRespondents is the smallest corpus a derived norm table accepts.
// Below this the mean/sd estimates are too noisy to publish.
const MinNormRespondents = 30

// DeriveNorms estimates per-dimension population parameters from a corpus by
// scoring every respondent and taking the mean and standard deviation of the
// resulting thetas. The table version is assigned at publish time.
func DeriveNorms(corpus []schema.ResponseSet, blocks []schema.QuartetBlock, params *schema.ItemParameters, opts EstimateOptions) (*schema.NormTable, error) {
	if len(corpus) < MinNormRespondents {
		return nil, &schema.InsufficientDataError{What: "respondents for norm derivation", Got: len(corpus), Need: MinNormRespondents}
	}

	index := schema.BlockIndex(blocks)
	perDim := make(map[schema.Dimension][]float64, schema.NumDimensions)
	for i := range corpus {
		est, err := EstimateTheta(&corpus[i], index, params, opts)
		if err != nil {
			return nil, err
		}
		for _, d := range schema.AllDimensions {
			perDim[d] = append(perDim[d], est.Theta[d])
		}
	}

	table := &schema.NormTable{
		Dimensions: make(map[schema.Dimension]schema.NormParameters, schema.NumDimensions),
	}
	for _, d := range schema.AllDimensions {
		values := perDim[d]
		sd := algo.StdDev(values)
		if sd <= 0 {
			// Degenerate corpus for this dimension; keep the table usable
			sd = 1
		}
		table.Dimensions[d] = schema.NormParameters{
			Mean:       algo.Mean(values),
			SD:         sd,
			SampleSize: len(values),
		}
	}
	return table, nil
}

// interpretationLabel maps a stanine band to its report label.
func interpretationLabel(stanine int) string {
	switch {
	case stanine >= 8:
		return "Very High"
	case stanine == 7:
		return "High"
	case stanine >= 5:
		return "Average"
	case stanine >= 3:
		return "Low"
	default:
		return "Very Low"
	}
}
