package algo

import (
	"math"

	"github.com/talentmap/talentmap/schema"
)

// PairItem is one side of a pairwise utility comparison: the dimension and
// loading of the statement involved.
type PairItem struct {
	Dim     schema.Dimension
	Loading float64
}

// Comparison is a single pairwise utility comparison implied by a forced
// choice: the winner's latent utility exceeded the loser's.
type Comparison struct {
	Win  PairItem
	Lose PairItem
}

// ResponseComparisons expands one forced-choice answer into its implied
// pairwise comparisons under the logistic rank model: the most-like pick beats
// the other three statements, and the two remaining statements beat the
// least-like pick. The most-vs-least comparison is counted once, on the
// most-like side. Five comparisons per block.
func ResponseComparisons(block *schema.QuartetBlock, r *schema.ForcedChoiceResponse) []Comparison {
	comps := make([]Comparison, 0, 5)
	most := PairItem{Dim: block.Statements[r.MostLikeIndex].Dimension, Loading: block.Statements[r.MostLikeIndex].Loading}
	least := PairItem{Dim: block.Statements[r.LeastLikeIndex].Dimension, Loading: block.Statements[r.LeastLikeIndex].Loading}

	for i, s := range block.Statements {
		if i == r.MostLikeIndex {
			continue
		}
		other := PairItem{Dim: s.Dimension, Loading: s.Loading}
		comps = append(comps, Comparison{Win: most, Lose: other})
		if i != r.LeastLikeIndex {
			comps = append(comps, Comparison{Win: other, Lose: least})
		}
	}
	return comps
}

// Utility computes the modeled latent utility of an item for a given theta
// vector: discrimination * loading * theta + offset.
func Utility(it PairItem, params *schema.ItemParameters, theta map[schema.Dimension]float64) float64 {
	dp := params.ForDimension(it.Dim)
	return dp.Discrimination*it.Loading*theta[it.Dim] + dp.Offset
}

// LogLikelihood returns the summed log probability of the observed comparisons
// under the logistic model.
func LogLikelihood(comps []Comparison, params *schema.ItemParameters, theta map[schema.Dimension]float64) float64 {
	var ll float64
	for _, c := range comps {
		z := Utility(c.Win, params, theta) - Utility(c.Lose, params, theta)
		ll += logLogistic(z)
	}
	return ll
}

// AccumulateThetaDerivs adds each comparison's contribution to the gradient
// and diagonal Hessian of the log likelihood with respect to theta. Cross
// terms of the Hessian are dropped; the estimation loop does damped diagonal
// Newton updates, which is stable for this model.
func AccumulateThetaDerivs(comps []Comparison, params *schema.ItemParameters, theta map[schema.Dimension]float64, grad, hess map[schema.Dimension]float64) {
	for _, c := range comps {
		z := Utility(c.Win, params, theta) - Utility(c.Lose, params, theta)
		p := Logistic(z)
		q := p * (1 - p)

		wWin := params.ForDimension(c.Win.Dim).Discrimination * c.Win.Loading
		wLose := params.ForDimension(c.Lose.Dim).Discrimination * c.Lose.Loading

		grad[c.Win.Dim] += wWin * (1 - p)
		grad[c.Lose.Dim] -= wLose * (1 - p)
		hess[c.Win.Dim] -= wWin * wWin * q
		hess[c.Lose.Dim] -= wLose * wLose * q
	}
}

// logLogistic computes log(sigma(z)) without overflow for large |z|.
func logLogistic(z float64) float64 {
	if z > 0 {
		return -math.Log1p(math.Exp(-z))
	}
	return z - math.Log1p(math.Exp(z))
}
