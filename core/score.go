package core

import (
	"math"

	"github.com/talentmap/talentmap/core/algo"
	"github.com/talentmap/talentmap/schema"
)

// Estimation defaults. MaxIter is a hard cap regardless of convergence; the
// caller inspects Converged on the result.
const (
	DefaultMaxIter = 50
	DefaultTol     = 1e-4

	// thetaBound keeps estimates inside a plausible standard-normal range;
	// forced-choice data cannot identify extremes beyond this anyway.
	thetaBound = 4.0

	// maxNewtonStep damps single-iteration jumps so early iterations with a
	// flat Hessian cannot overshoot.
	maxNewtonStep = 1.0

	// MinRecommendedBlocks is the block count below which standard errors get
	// large. Estimation is still attempted; this only drives a caller-facing
	// warning.
	MinRecommendedBlocks = 4
)

// EstimateOptions controls the theta estimation loop.
type EstimateOptions struct {
	MaxIter  int
	Tol      float64
	UsePrior bool // MAP with a N(0,1) prior per dimension; stabilizes sparse dimensions
}

// DefaultEstimateOptions returns the options used by the scoring entry points.
func DefaultEstimateOptions() EstimateOptions {
	return EstimateOptions{MaxIter: DefaultMaxIter, Tol: DefaultTol, UsePrior: true}
}

// EstimateTheta estimates the 12-dimensional latent trait vector that best
// explains one respondent's forced choices, given item parameters (calibrated
// or the shipped default set). The likelihood is the logistic rank model from
// core/algo: the most-like pick beats the other three statements and the two
// remaining statements beat the least-like pick. Optimization is damped
// diagonal Newton per dimension; standard errors come from the observed
// information at the optimum.
//
// One call, one respondent, no shared mutable state: safe to run concurrently
// for independent respondents.
func EstimateTheta(set *schema.ResponseSet, blocks map[string]*schema.QuartetBlock, params *schema.ItemParameters, opts EstimateOptions) (*schema.ThetaEstimate, error) {
	if err := schema.ValidateResponseSet(set, blocks); err != nil {
		return nil, err
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = DefaultMaxIter
	}
	if opts.Tol <= 0 {
		opts.Tol = DefaultTol
	}

	// Expand every answered block into its pairwise comparisons once.
	var comps []algo.Comparison
	for i := range set.Responses {
		r := &set.Responses[i]
		comps = append(comps, algo.ResponseComparisons(blocks[r.BlockID], r)...)
	}

	theta := make(map[schema.Dimension]float64, schema.NumDimensions)
	for _, d := range schema.AllDimensions {
		theta[d] = 0
	}

	grad := make(map[schema.Dimension]float64, schema.NumDimensions)
	hess := make(map[schema.Dimension]float64, schema.NumDimensions)

	converged := false
	iters := 0
	prevLL := math.Inf(-1)
	for iter := 0; iter < opts.MaxIter; iter++ {
		iters = iter + 1
		for _, d := range schema.AllDimensions {
			grad[d] = 0
			hess[d] = 0
		}
		algo.AccumulateThetaDerivs(comps, params, theta, grad, hess)

		maxDelta := 0.0
		for _, d := range schema.AllDimensions {
			g, h := grad[d], hess[d]
			if opts.UsePrior {
				g -= theta[d] // d/dθ of -θ²/2
				h -= 1.0
			}
			if h >= 0 {
				// No curvature: nothing observed for this dimension and no
				// prior requested. Leave theta at zero.
				continue
			}
			delta := algo.Clamp(-g/h, -maxNewtonStep, maxNewtonStep)
			theta[d] = algo.Clamp(theta[d]+delta, -thetaBound, thetaBound)
			if abs := math.Abs(delta); abs > maxDelta {
				maxDelta = abs
			}
		}

		ll := objective(comps, params, theta, opts.UsePrior)
		if maxDelta < opts.Tol || math.Abs(ll-prevLL) < opts.Tol {
			prevLL = ll
			converged = true
			break
		}
		prevLL = ll
	}

	// Standard errors from the observed information, prior included when the
	// prior shaped the estimate.
	for _, d := range schema.AllDimensions {
		grad[d] = 0
		hess[d] = 0
	}
	algo.AccumulateThetaDerivs(comps, params, theta, grad, hess)
	se := make(map[schema.Dimension]float64, schema.NumDimensions)
	for _, d := range schema.AllDimensions {
		info := -hess[d]
		if opts.UsePrior {
			info += 1.0
		}
		if info <= 0 {
			se[d] = math.Inf(1)
			continue
		}
		se[d] = 1.0 / math.Sqrt(info)
	}

	return &schema.ThetaEstimate{
		Theta:         theta,
		SE:            se,
		Converged:     converged,
		Iterations:    iters,
		LogLikelihood: algo.LogLikelihood(comps, params, theta),
		ParamSource:   params.Source,
		BlocksUsed:    len(set.Responses),
	}, nil
}

// objective is the quantity maximized by the estimation loop: the data log
// likelihood plus the log prior when MAP estimation is on.
func objective(comps []algo.Comparison, params *schema.ItemParameters, theta map[schema.Dimension]float64, usePrior bool) float64 {
	ll := algo.LogLikelihood(comps, params, theta)
	if usePrior {
		for _, v := range theta {
			ll -= v * v / 2.0
		}
	}
	return ll
}
