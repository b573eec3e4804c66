package core

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/talentmap/talentmap/schema"
)

// SimulatedCorpus holds synthetic respondents together with the ground truth
// that generated them, for parameter-recovery checks.
type SimulatedCorpus struct {
	Responses  []schema.ResponseSet
	TrueThetas []map[schema.Dimension]float64
}

// SimulateCorpus generates n synthetic respondents answering every block.
// Each respondent gets a standard-normal true theta per dimension; choices
// follow the logistic rank model by adding Gumbel noise to the modeled
// utilities and picking the max as most-like and the min as least-like, which
// is the Luce choice process the scorer's likelihood assumes.
//
// The random source is an explicit parameter: same rng state, same corpus.
func SimulateCorpus(blocks []schema.QuartetBlock, params *schema.ItemParameters, n int, rng *rand.Rand) *SimulatedCorpus {
	corpus := &SimulatedCorpus{
		Responses:  make([]schema.ResponseSet, 0, n),
		TrueThetas: make([]map[schema.Dimension]float64, 0, n),
	}
	for i := range n {
		theta := make(map[schema.Dimension]float64, schema.NumDimensions)
		for _, d := range schema.AllDimensions {
			theta[d] = rng.NormFloat64()
		}

		set := schema.ResponseSet{
			RespondentID: fmt.Sprintf("sim-%04d", i+1),
			Responses:    make([]schema.ForcedChoiceResponse, 0, len(blocks)),
		}
		for bi := range blocks {
			b := &blocks[bi]
			mostIdx, leastIdx := 0, 0
			bestU, worstU := math.Inf(-1), math.Inf(1)
			for si, s := range b.Statements {
				dp := params.ForDimension(s.Dimension)
				u := dp.Discrimination*s.Loading*theta[s.Dimension] + dp.Offset + gumbel(rng)
				if u > bestU {
					bestU = u
					mostIdx = si
				}
				if u < worstU {
					worstU = u
					leastIdx = si
				}
			}
			if mostIdx == leastIdx {
				// Degenerate draw; nudge the least pick to the next slot.
				leastIdx = (leastIdx + 1) % 4
			}
			set.Responses = append(set.Responses, schema.ForcedChoiceResponse{
				BlockID:        b.BlockID,
				MostLikeIndex:  mostIdx,
				LeastLikeIndex: leastIdx,
				ResponseTimeMs: 1500 + rng.Int63n(6000),
			})
		}
		corpus.Responses = append(corpus.Responses, set)
		corpus.TrueThetas = append(corpus.TrueThetas, theta)
	}
	return corpus
}

// gumbel draws standard Gumbel noise, the error term under which argmax
// choices follow a logistic model.
func gumbel(rng *rand.Rand) float64 {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	return -math.Log(-math.Log(u))
}
