package core

import (
	"math"
	"time"

	"github.com/talentmap/talentmap/core/algo"
	"github.com/talentmap/talentmap/schema"
)

// Calibration guardrails.
const (
	// MinCalibrationRespondents is the smallest corpus calibration accepts.
	MinCalibrationRespondents = 10

	// minObservationsPerDim is the pairwise-comparison count below which a
	// dimension's discrimination is clamped to the safe default instead of
	// being allowed to diverge.
	minObservationsPerDim = 30

	// Parameter bounds for the M-step.
	minDiscrimination = 0.25
	maxDiscrimination = 3.0
	maxOffset         = 2.0

	// mStepIters bounds the inner Newton iterations per dimension per M-step.
	mStepIters = 5
)

// CalibrateOptions controls the outer EM-style loop.
type CalibrateOptions struct {
	MaxIter int
	Tol     float64
}

// DefaultCalibrateOptions returns the options used by the calibrate entry
// point.
func DefaultCalibrateOptions() CalibrateOptions {
	return CalibrateOptions{MaxIter: DefaultMaxIter, Tol: 1e-3}
}

// Calibrate fits per-dimension discrimination and offset parameters from a
// multi-respondent corpus by iterative marginal maximum likelihood:
//
//  1. given current parameters, estimate each respondent's theta (the
//     Scorer's estimation step, reused verbatim);
//  2. standardize the thetas to zero mean and unit variance per dimension,
//     the identification constraint that fixes the latent scale;
//  3. given those thetas, re-fit each dimension's discrimination/offset by
//     maximizing the aggregate pairwise choice likelihood;
//  4. repeat until the change in log likelihood falls below tol or maxIter
//     is reached.
//
// Dimensions with too few observations are clamped to the default
// discrimination rather than allowed to diverge. Non-convergence is reported
// through the diagnostics, never silently accepted: callers must check
// Converged before publishing the parameters.
//
// This is a batch job over the full corpus and is never on a single request's
// critical path.
func Calibrate(corpus []schema.ResponseSet, blocks []schema.QuartetBlock, opts CalibrateOptions) (*schema.CalibrationResult, error) {
	if len(corpus) < MinCalibrationRespondents {
		return nil, &schema.InsufficientDataError{What: "respondents for calibration", Got: len(corpus), Need: MinCalibrationRespondents}
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = DefaultMaxIter
	}
	if opts.Tol <= 0 {
		opts.Tol = 1e-3
	}

	blockIdx := schema.BlockIndex(blocks)
	perRespondent := make([][]algo.Comparison, len(corpus))
	obsPerDim := make(map[schema.Dimension]int)
	for i := range corpus {
		set := &corpus[i]
		if err := schema.ValidateResponseSet(set, blockIdx); err != nil {
			return nil, err
		}
		var comps []algo.Comparison
		for j := range set.Responses {
			r := &set.Responses[j]
			comps = append(comps, algo.ResponseComparisons(blockIdx[r.BlockID], r)...)
		}
		perRespondent[i] = comps
		for _, c := range comps {
			obsPerDim[c.Win.Dim]++
			obsPerDim[c.Lose.Dim]++
		}
	}

	params := schema.DefaultItemParameters()
	params.Source = schema.CalibratedParams
	params.Respondents = len(corpus)

	estOpts := DefaultEstimateOptions()
	thetas := make([]map[schema.Dimension]float64, len(corpus))

	converged := false
	iters := 0
	prevLL := math.Inf(-1)
	var lastLL float64
	for iter := 0; iter < opts.MaxIter; iter++ {
		iters = iter + 1

		// E-step: per-respondent theta under current parameters.
		for i := range corpus {
			est, err := EstimateTheta(&corpus[i], blockIdx, &params, estOpts)
			if err != nil {
				return nil, err
			}
			thetas[i] = est.Theta
		}

		// Only theta*discrimination is identified by the choice likelihood, so
		// pin the latent scale to the N(0,1) population assumption before
		// refitting. Without this the M-step absorbs the MAP prior's shrinkage
		// into ever-larger discriminations until every dimension sits at the
		// upper bound.
		standardizeThetas(thetas)

		// M-step: per-dimension discrimination/offset refit.
		for _, d := range schema.AllDimensions {
			dp := params.Dimensions[d]
			if obsPerDim[d] < minObservationsPerDim {
				dp.Discrimination = schema.DefaultDiscrimination
				dp.Offset = 0
				dp.Observations = obsPerDim[d]
				dp.Clamped = true
				params.Dimensions[d] = dp
				continue
			}
			a, b := fitDimension(d, perRespondent, thetas, &params)
			dp.Discrimination = a
			dp.Offset = b
			dp.Observations = obsPerDim[d]
			dp.Clamped = false
			params.Dimensions[d] = dp
		}

		lastLL = 0
		for i := range corpus {
			lastLL += algo.LogLikelihood(perRespondent[i], &params, thetas[i])
		}
		if math.Abs(lastLL-prevLL) < opts.Tol {
			converged = true
			break
		}
		prevLL = lastLL
	}

	params.CreatedAt = time.Now().UTC()
	diags := buildDiagnostics(&params, corpus, blockIdx)
	diags.Converged = converged
	diags.Iterations = iters
	diags.LogLikelihood = lastLL

	return &schema.CalibrationResult{Parameters: params, Diagnostics: *diags}, nil
}

// standardizeThetas rescales each dimension's estimated thetas to zero mean
// and unit variance across the corpus, the identification constraint for the
// latent scale. Dimensions with no spread are left untouched.
func standardizeThetas(thetas []map[schema.Dimension]float64) {
	vals := make([]float64, len(thetas))
	for _, d := range schema.AllDimensions {
		for i := range thetas {
			vals[i] = thetas[i][d]
		}
		mean := algo.Mean(vals)
		sd := algo.StdDev(vals)
		if sd < 1e-9 {
			continue
		}
		for i := range thetas {
			thetas[i][d] = (thetas[i][d] - mean) / sd
		}
	}
}

// fitDimension runs a few damped Newton steps on one dimension's
// (discrimination, offset) pair with all thetas held fixed.
func fitDimension(d schema.Dimension, perRespondent [][]algo.Comparison, thetas []map[schema.Dimension]float64, params *schema.ItemParameters) (a, b float64) {
	dp := params.Dimensions[d]
	a, b = dp.Discrimination, dp.Offset

	for range mStepIters {
		var gradA, hessA, gradB, hessB float64
		for i, comps := range perRespondent {
			theta := thetas[i]
			for _, c := range comps {
				// z with the candidate (a,b) substituted for dimension d.
				z := utilityWith(c.Win, d, a, b, params, theta) - utilityWith(c.Lose, d, a, b, params, theta)

				// Derivative of z with respect to a and b for dimension d.
				var dzda, dzdb float64
				if c.Win.Dim == d {
					dzda += c.Win.Loading * theta[d]
					dzdb += 1
				}
				if c.Lose.Dim == d {
					dzda -= c.Lose.Loading * theta[d]
					dzdb -= 1
				}
				if dzda == 0 && dzdb == 0 {
					continue
				}

				p := algo.Logistic(z)
				q := p * (1 - p)
				gradA += dzda * (1 - p)
				hessA -= dzda * dzda * q
				gradB += dzdb * (1 - p)
				hessB -= dzdb * dzdb * q
			}
		}

		if hessA < 0 {
			a = algo.Clamp(a+algo.Clamp(-gradA/hessA, -0.5, 0.5), minDiscrimination, maxDiscrimination)
		}
		if hessB < 0 {
			b = algo.Clamp(b+algo.Clamp(-gradB/hessB, -0.5, 0.5), -maxOffset, maxOffset)
		}
	}
	return a, b
}

// utilityWith computes an item's utility, overriding dimension d's parameters
// with the candidate (a,b) during the M-step.
func utilityWith(it algo.PairItem, d schema.Dimension, a, b float64, params *schema.ItemParameters, theta map[schema.Dimension]float64) float64 {
	if it.Dim == d {
		return a*it.Loading*theta[it.Dim] + b
	}
	return algo.Utility(it, params, theta)
}

// buildDiagnostics summarizes fit quality: mean discrimination and offset
// across dimensions, plus a Cronbach-style internal-consistency estimate per
// dimension computed from per-statement endorsement tallies (+1 when picked
// most-like, -1 when picked least-like).
func buildDiagnostics(params *schema.ItemParameters, corpus []schema.ResponseSet, blocks map[string]*schema.QuartetBlock) *schema.FitDiagnostics {
	var discs, offs []float64
	for _, d := range schema.AllDimensions {
		dp := params.Dimensions[d]
		discs = append(discs, dp.Discrimination)
		offs = append(offs, dp.Offset)
	}

	// Statement tally matrix per dimension: rows are respondents, columns are
	// the dimension's statements (in first-seen order).
	consistency := make(map[schema.Dimension]float64, schema.NumDimensions)
	stmtCols := make(map[schema.Dimension]map[string]int)
	for _, b := range blocks {
		for _, s := range b.Statements {
			cols, ok := stmtCols[s.Dimension]
			if !ok {
				cols = make(map[string]int)
				stmtCols[s.Dimension] = cols
			}
			if _, ok := cols[s.ID]; !ok {
				cols[s.ID] = len(cols)
			}
		}
	}
	for _, d := range schema.AllDimensions {
		cols := stmtCols[d]
		if len(cols) < 2 {
			consistency[d] = 0
			continue
		}
		matrix := make([][]float64, len(corpus))
		for i := range corpus {
			row := make([]float64, len(cols))
			for _, r := range corpus[i].Responses {
				block := blocks[r.BlockID]
				most := block.Statements[r.MostLikeIndex]
				least := block.Statements[r.LeastLikeIndex]
				if most.Dimension == d {
					row[cols[most.ID]]++
				}
				if least.Dimension == d {
					row[cols[least.ID]]--
				}
			}
			matrix[i] = row
		}
		consistency[d] = algo.CronbachAlpha(matrix)
	}

	return &schema.FitDiagnostics{
		MeanDiscrimination: algo.Mean(discs),
		MeanOffset:         algo.Mean(offs),
		Consistency:        consistency,
	}
}
