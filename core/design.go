package core

import (
	"fmt"
	"math/rand"

	"github.com/talentmap/talentmap/core/algo"
	"github.com/talentmap/talentmap/schema"
)

// Search effort for the block design. More trials cost CPU but improve the
// balance of the final design; these values keep a 20-block design well under
// a second.
const (
	designTrials = 8  // Full-design restarts; the best design wins
	blockTrials  = 24 // Randomized candidates per block slot

	// minUsableDimensions is the fatal precondition: fewer than four usable
	// dimensions cannot form a valid quartet at all.
	minUsableDimensions = 4
)

// Candidate block score weights. Spread targets a social-desirability SD near
// 1.0: blocks where every statement is equally desirable do not discriminate,
// and blocks with extreme spread make the "worst" pick trivial.
const (
	wSpread    = 0.40
	wDiversity = 0.35
	wBalance   = 0.15
	wContext   = 0.10

	targetSpread = 1.0
)

// CreateBlocks builds nBlocks quartet blocks from the statement pool.
// The search greedily assembles blocks while tracking per-dimension usage and
// pairwise co-occurrence counts to keep both near-uniform, runs several
// randomized candidates per block, and keeps the best of several full-design
// restarts. Same seed, same pool and same nBlocks always produce the same
// design.
func CreateBlocks(pool []schema.Statement, nBlocks int, seed int64) ([]schema.QuartetBlock, error) {
	if nBlocks < 1 {
		return nil, schema.NewValidationError("n_blocks", "must be at least 1, got %d", nBlocks)
	}
	byDim := schema.PoolByDimension(pool)
	usable := schema.UsableDimensions(pool)
	if len(usable) < minUsableDimensions {
		return nil, &schema.InsufficientDataError{What: "usable dimensions in statement pool", Got: len(usable), Need: minUsableDimensions}
	}

	rng := rand.New(rand.NewSource(seed))

	var best []schema.QuartetBlock
	bestScore := -1.0
	for range designTrials {
		design, score := buildDesign(byDim, usable, nBlocks, rng)
		score -= imbalancePenalty(design)
		if score > bestScore {
			bestScore = score
			best = design
		}
	}
	return best, nil
}

// buildDesign assembles one full design and returns it with its mean block
// score.
func buildDesign(byDim map[schema.Dimension][]schema.Statement, usable []schema.Dimension, nBlocks int, rng *rand.Rand) ([]schema.QuartetBlock, float64) {
	usage := make(map[schema.Dimension]int)
	cooc := make(map[[2]schema.Dimension]int)
	target := float64(nBlocks*4) / float64(len(usable))

	blocks := make([]schema.QuartetBlock, 0, nBlocks)
	var total float64
	for i := range nBlocks {
		var bestCand [4]schema.Statement
		bestScore := -1.0
		for range blockTrials {
			cand := sampleCandidate(byDim, usable, usage, rng)
			score := scoreCandidate(cand, usage, cooc, target)
			if score > bestScore {
				bestScore = score
				bestCand = cand
			}
		}
		for _, s := range bestCand {
			usage[s.Dimension]++
		}
		for a := range 4 {
			for b := a + 1; b < 4; b++ {
				cooc[dimPair(bestCand[a].Dimension, bestCand[b].Dimension)]++
			}
		}
		blocks = append(blocks, schema.QuartetBlock{
			BlockID:    fmt.Sprintf("B%03d", i+1),
			Statements: bestCand,
		})
		total += bestScore
	}
	return blocks, total / float64(nBlocks)
}

// sampleCandidate draws four statements for one block, preferring four
// distinct low-usage dimensions. When fewer than four usable dimensions
// remain it relaxes the distinctness constraint and samples from the full
// remaining pool.
func sampleCandidate(byDim map[schema.Dimension][]schema.Statement, usable []schema.Dimension, usage map[schema.Dimension]int, rng *rand.Rand) [4]schema.Statement {
	var cand [4]schema.Statement
	if len(usable) >= 4 {
		dims := sampleDims(usable, usage, 4, rng)
		for i, d := range dims {
			stmts := byDim[d]
			cand[i] = stmts[rng.Intn(len(stmts))]
		}
		return cand
	}

	// Fallback: fewer than four usable dimensions, allow repeats.
	var flat []schema.Statement
	for _, d := range usable {
		flat = append(flat, byDim[d]...)
	}
	for i := range 4 {
		cand[i] = flat[rng.Intn(len(flat))]
	}
	return cand
}

// sampleDims picks n distinct dimensions without replacement, weighting each
// dimension by 1/(1+usage) so underused dimensions are preferred.
func sampleDims(usable []schema.Dimension, usage map[schema.Dimension]int, n int, rng *rand.Rand) []schema.Dimension {
	remaining := make([]schema.Dimension, len(usable))
	copy(remaining, usable)

	picked := make([]schema.Dimension, 0, n)
	for len(picked) < n && len(remaining) > 0 {
		var totalW float64
		weights := make([]float64, len(remaining))
		for i, d := range remaining {
			w := 1.0 / float64(1+usage[d])
			weights[i] = w
			totalW += w
		}
		r := rng.Float64() * totalW
		idx := len(remaining) - 1
		for i, w := range weights {
			r -= w
			if r <= 0 {
				idx = i
				break
			}
		}
		picked = append(picked, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return picked
}

// scoreCandidate rates one candidate block. Higher is better.
func scoreCandidate(cand [4]schema.Statement, usage map[schema.Dimension]int, cooc map[[2]schema.Dimension]int, target float64) float64 {
	// Social-desirability spread, targeting an SD near 1.0.
	sds := make([]float64, 4)
	for i, s := range cand {
		sds[i] = s.SocialDesirability
	}
	spread := algo.StdDev(sds)
	spreadScore := algo.Clamp01(1.0 - absFloat(spread-targetSpread))

	// Dimension diversity: four distinct dimensions is the maximum.
	distinct := make(map[schema.Dimension]struct{}, 4)
	for _, s := range cand {
		distinct[s.Dimension] = struct{}{}
	}
	divScore := float64(len(distinct)) / 4.0

	// Balance: penalize dimensions already at or above their uniform target
	// and pairs that have co-occurred before.
	var overuse float64
	for d := range distinct {
		if excess := float64(usage[d]) + 1 - target; excess > 0 {
			overuse += excess
		}
	}
	var repeats float64
	for a := range 4 {
		for b := a + 1; b < 4; b++ {
			repeats += float64(cooc[dimPair(cand[a].Dimension, cand[b].Dimension)])
		}
	}
	balanceScore := 1.0 / (1.0 + overuse + 0.5*repeats)

	// Context diversity for tagged statements.
	contexts := make(map[string]struct{}, 4)
	for _, s := range cand {
		if s.Context != "" {
			contexts[s.Context] = struct{}{}
		}
	}
	ctxScore := float64(len(contexts)) / 3.0
	if ctxScore > 1 {
		ctxScore = 1
	}

	return wSpread*spreadScore + wDiversity*divScore + wBalance*balanceScore + wContext*ctxScore
}

// imbalancePenalty measures how far per-dimension usage counts drift apart
// across a finished design.
func imbalancePenalty(design []schema.QuartetBlock) float64 {
	usage := make(map[schema.Dimension]int)
	for i := range design {
		for _, s := range design[i].Statements {
			usage[s.Dimension]++
		}
	}
	if len(usage) == 0 {
		return 0
	}
	minU, maxU := -1, 0
	for _, c := range usage {
		if minU < 0 || c < minU {
			minU = c
		}
		if c > maxU {
			maxU = c
		}
	}
	return 0.05 * float64(maxU-minU)
}

// dimPair returns a canonical ordering for a dimension pair key.
func dimPair(a, b schema.Dimension) [2]schema.Dimension {
	if a > b {
		a, b = b, a
	}
	return [2]schema.Dimension{a, b}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
