package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap/core/algo"
	"github.com/talentmap/talentmap/schema"
)

// simulatedFixture builds a deterministic design plus simulated corpus for
// estimation tests.
func simulatedFixture(t *testing.T, nBlocks, nRespondents int, seed int64) ([]schema.QuartetBlock, *SimulatedCorpus, *schema.ItemParameters) {
	t.Helper()
	blocks, err := CreateBlocks(schema.DefaultStatementPool(), nBlocks, seed)
	require.NoError(t, err)
	params := schema.DefaultItemParameters()
	rng := rand.New(rand.NewSource(seed))
	sim := SimulateCorpus(blocks, &params, nRespondents, rng)
	return blocks, sim, &params
}

// TestEstimateTheta tests the per-respondent trait estimation loop.
func TestEstimateTheta(t *testing.T) {
	blocks, sim, params := simulatedFixture(t, 12, 3, 42)
	index := schema.BlockIndex(blocks)

	t.Run("estimates all dimensions with finite standard errors", func(t *testing.T) {
		est, err := EstimateTheta(&sim.Responses[0], index, params, DefaultEstimateOptions())
		require.NoError(t, err)

		assert.True(t, est.Converged)
		assert.Equal(t, 12, est.BlocksUsed)
		assert.Equal(t, schema.DefaultParams, est.ParamSource)
		assert.Len(t, est.Theta, schema.NumDimensions)
		for _, d := range schema.AllDimensions {
			assert.False(t, math.IsNaN(est.Theta[d]), "theta for %s is NaN", d.Name())
			assert.InDelta(t, 0, est.Theta[d], 4.0)
			assert.Greater(t, est.SE[d], 0.0)
			assert.False(t, math.IsInf(est.SE[d], 1), "se for %s is infinite under the prior", d.Name())
		}
		assert.Negative(t, est.LogLikelihood)
	})

	t.Run("is deterministic for identical inputs", func(t *testing.T) {
		a, err := EstimateTheta(&sim.Responses[1], index, params, DefaultEstimateOptions())
		require.NoError(t, err)
		b, err := EstimateTheta(&sim.Responses[1], index, params, DefaultEstimateOptions())
		require.NoError(t, err)
		assert.Equal(t, a.Theta, b.Theta)
		assert.Equal(t, a.SE, b.SE)
		assert.Equal(t, a.Iterations, b.Iterations)
	})

	t.Run("fills in default options for zero values", func(t *testing.T) {
		est, err := EstimateTheta(&sim.Responses[0], index, params, EstimateOptions{UsePrior: true})
		require.NoError(t, err)
		assert.True(t, est.Converged)
	})

	t.Run("rejects equal most and least picks", func(t *testing.T) {
		bad := schema.ResponseSet{
			RespondentID: "bad",
			Responses: []schema.ForcedChoiceResponse{
				{BlockID: blocks[0].BlockID, MostLikeIndex: 1, LeastLikeIndex: 1},
			},
		}
		_, err := EstimateTheta(&bad, index, params, DefaultEstimateOptions())
		var verr *schema.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("rejects unknown block references", func(t *testing.T) {
		bad := schema.ResponseSet{
			RespondentID: "bad",
			Responses: []schema.ForcedChoiceResponse{
				{BlockID: "B999", MostLikeIndex: 0, LeastLikeIndex: 1},
			},
		}
		_, err := EstimateTheta(&bad, index, params, DefaultEstimateOptions())
		require.ErrorIs(t, err, schema.ErrUnknownBlock)
	})
}

// TestEstimateThetaRecovery checks that estimates track the simulated truth.
func TestEstimateThetaRecovery(t *testing.T) {
	blocks, sim, params := simulatedFixture(t, 24, 60, 99)
	index := schema.BlockIndex(blocks)

	var est, truth []float64
	for i := range sim.Responses {
		res, err := EstimateTheta(&sim.Responses[i], index, params, DefaultEstimateOptions())
		require.NoError(t, err)
		for _, d := range schema.AllDimensions {
			est = append(est, res.Theta[d])
			truth = append(truth, sim.TrueThetas[i][d])
		}
	}

	r := algo.Pearson(est, truth)
	assert.Greater(t, r, 0.75, "estimated thetas should correlate with the simulated truth, got r=%.3f", r)
}

// TestScoreRespondent tests the full per-respondent pipeline.
func TestScoreRespondent(t *testing.T) {
	blocks, sim, params := simulatedFixture(t, 12, 2, 7)
	index := schema.BlockIndex(blocks)
	norms := schema.DefaultNormTable()

	result, err := ScoreRespondent(&sim.Responses[0], index, params, &norms, DefaultEstimateOptions())
	require.NoError(t, err)

	assert.Equal(t, sim.Responses[0].RespondentID, result.RespondentID)
	assert.Len(t, result.NormScores, schema.NumDimensions)
	assert.Len(t, result.Tiers, schema.NumDimensions)
	assert.Equal(t, norms.Version, result.NormVersion)
	assert.False(t, result.ScoredAt.IsZero())
	assert.NotEmpty(t, result.Archetype.Primary)
	assert.Equal(t, schema.NumDimensions,
		result.Summary.Dominant+result.Summary.Supporting+result.Summary.Developing)
}
