package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap/schema"
)

func testBlock() *schema.QuartetBlock {
	return &schema.QuartetBlock{
		BlockID: "B001",
		Statements: [4]schema.Statement{
			{ID: "DRV-01", Dimension: schema.DimDrive, Loading: 0.8},
			{ID: "STR-01", Dimension: schema.DimStrategic, Loading: 0.7},
			{ID: "EMP-01", Dimension: schema.DimEmpathy, Loading: 0.6},
			{ID: "ANA-01", Dimension: schema.DimAnalytical, Loading: 0.75},
		},
	}
}

// TestResponseComparisons tests the forced-choice expansion.
func TestResponseComparisons(t *testing.T) {
	block := testBlock()
	r := &schema.ForcedChoiceResponse{BlockID: "B001", MostLikeIndex: 0, LeastLikeIndex: 3}

	comps := ResponseComparisons(block, r)
	require.Len(t, comps, 5, "one block yields exactly five comparisons")

	mostWins, leastLosses := 0, 0
	for _, c := range comps {
		if c.Win.Dim == schema.DimDrive {
			mostWins++
		}
		if c.Lose.Dim == schema.DimAnalytical {
			leastLosses++
		}
		assert.NotEqual(t, c.Win, c.Lose)
	}
	// Most-like beats the other three; least-like loses to most plus the two
	// middle statements, with most-vs-least counted once.
	assert.Equal(t, 3, mostWins)
	assert.Equal(t, 3, leastLosses)
}

// TestUtility tests the linear utility model.
func TestUtility(t *testing.T) {
	params := schema.DefaultItemParameters()
	theta := map[schema.Dimension]float64{schema.DimDrive: 1.0}

	it := PairItem{Dim: schema.DimDrive, Loading: 0.8}
	assert.InDelta(t, 0.8, Utility(it, &params, theta), 1e-12)

	// Doubling the discrimination doubles the slope contribution.
	dp := params.Dimensions[schema.DimDrive]
	dp.Discrimination = 2.0
	dp.Offset = 0.5
	params.Dimensions[schema.DimDrive] = dp
	assert.InDelta(t, 2.1, Utility(it, &params, theta), 1e-12)
}

// TestLogLikelihood tests basic likelihood properties.
func TestLogLikelihood(t *testing.T) {
	params := schema.DefaultItemParameters()
	comps := []Comparison{{
		Win:  PairItem{Dim: schema.DimDrive, Loading: 0.8},
		Lose: PairItem{Dim: schema.DimStrategic, Loading: 0.7},
	}}

	t.Run("zero theta gives log(1/2) per comparison", func(t *testing.T) {
		theta := map[schema.Dimension]float64{}
		assert.InDelta(t, math.Log(0.5), LogLikelihood(comps, &params, theta), 1e-12)
	})

	t.Run("theta agreeing with the choice raises the likelihood", func(t *testing.T) {
		agree := map[schema.Dimension]float64{schema.DimDrive: 2.0}
		disagree := map[schema.Dimension]float64{schema.DimStrategic: 2.0}
		neutral := map[schema.Dimension]float64{}
		assert.Greater(t, LogLikelihood(comps, &params, agree), LogLikelihood(comps, &params, neutral))
		assert.Less(t, LogLikelihood(comps, &params, disagree), LogLikelihood(comps, &params, neutral))
	})

	t.Run("stays finite for extreme z", func(t *testing.T) {
		extreme := map[schema.Dimension]float64{schema.DimDrive: 500, schema.DimStrategic: -500}
		ll := LogLikelihood(comps, &params, extreme)
		assert.False(t, math.IsInf(ll, 0))
		assert.False(t, math.IsNaN(ll))
	})
}

// TestAccumulateThetaDerivs tests gradient and Hessian accumulation.
func TestAccumulateThetaDerivs(t *testing.T) {
	params := schema.DefaultItemParameters()
	comps := []Comparison{{
		Win:  PairItem{Dim: schema.DimDrive, Loading: 0.8},
		Lose: PairItem{Dim: schema.DimStrategic, Loading: 0.7},
	}}

	theta := map[schema.Dimension]float64{}
	grad := map[schema.Dimension]float64{}
	hess := map[schema.Dimension]float64{}
	AccumulateThetaDerivs(comps, &params, theta, grad, hess)

	// At theta=0 the win probability is 1/2: the winner's gradient pulls up,
	// the loser's pulls down, and curvature is negative on both.
	assert.InDelta(t, 0.8*0.5, grad[schema.DimDrive], 1e-12)
	assert.InDelta(t, -0.7*0.5, grad[schema.DimStrategic], 1e-12)
	assert.Negative(t, hess[schema.DimDrive])
	assert.Negative(t, hess[schema.DimStrategic])
	assert.Zero(t, grad[schema.DimVision])

	t.Run("gradient matches a finite difference", func(t *testing.T) {
		const eps = 1e-6
		up := map[schema.Dimension]float64{schema.DimDrive: eps}
		down := map[schema.Dimension]float64{schema.DimDrive: -eps}
		numeric := (LogLikelihood(comps, &params, up) - LogLikelihood(comps, &params, down)) / (2 * eps)
		assert.InDelta(t, numeric, grad[schema.DimDrive], 1e-6)
	})
}
