package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap/schema"
)

// TestSimulateCorpus tests synthetic corpus generation.
func TestSimulateCorpus(t *testing.T) {
	blocks, err := CreateBlocks(schema.DefaultStatementPool(), 8, 42)
	require.NoError(t, err)
	params := schema.DefaultItemParameters()

	t.Run("every respondent answers every block validly", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		sim := SimulateCorpus(blocks, &params, 5, rng)

		require.Len(t, sim.Responses, 5)
		require.Len(t, sim.TrueThetas, 5)
		index := schema.BlockIndex(blocks)
		for i := range sim.Responses {
			set := &sim.Responses[i]
			assert.NotEmpty(t, set.RespondentID)
			require.Len(t, set.Responses, len(blocks))
			assert.NoError(t, schema.ValidateResponseSet(set, index))
			for _, r := range set.Responses {
				assert.NotEqual(t, r.MostLikeIndex, r.LeastLikeIndex)
				assert.GreaterOrEqual(t, r.ResponseTimeMs, int64(1500))
			}
			assert.Len(t, sim.TrueThetas[i], schema.NumDimensions)
		}
	})

	t.Run("same rng state yields the same corpus", func(t *testing.T) {
		a := SimulateCorpus(blocks, &params, 4, rand.New(rand.NewSource(9)))
		b := SimulateCorpus(blocks, &params, 4, rand.New(rand.NewSource(9)))
		assert.Equal(t, a.Responses, b.Responses)
		assert.Equal(t, a.TrueThetas, b.TrueThetas)
	})

	t.Run("different seeds yield different choices", func(t *testing.T) {
		a := SimulateCorpus(blocks, &params, 4, rand.New(rand.NewSource(1)))
		b := SimulateCorpus(blocks, &params, 4, rand.New(rand.NewSource(2)))
		assert.NotEqual(t, a.Responses, b.Responses)
	})

	t.Run("zero respondents yields an empty corpus", func(t *testing.T) {
		sim := SimulateCorpus(blocks, &params, 0, rand.New(rand.NewSource(1)))
		assert.Empty(t, sim.Responses)
		assert.Empty(t, sim.TrueThetas)
	})
}
