// Package schema has configs, models and reference data for all parts of talentmap.
package schema

import "time"

// Statement is a single candidate statement in the assessment pool.
// It includes the trait dimension it measures, its factor loading (pull weight)
// and a social-desirability rating used to balance block difficulty.
type Statement struct {
	ID                string    `json:"id"`                 // Unique statement identifier
	Text              string    `json:"text"`               // Statement text shown to the respondent
	Dimension         Dimension `json:"dimension"`          // Trait dimension this statement measures (1-12)
	Loading           float64   `json:"loading"`            // Factor loading in (0,1)
	SocialDesirability float64  `json:"social_desirability"` // Rated desirability, roughly standard-normal scaled
	Context           string    `json:"context,omitempty"`  // Optional context tag (work, team, self)
}

// QuartetBlock is a set of four statements shown together. The respondent picks
// the most and least characteristic statement. Blocks are immutable once created
// and shared read-only by every respondent who sees them.
type QuartetBlock struct {
	BlockID    string       `json:"block_id"`
	Statements [4]Statement `json:"statements"`
}

// Dimensions returns the dimension of each statement in presentation order.
func (b *QuartetBlock) Dimensions() [4]Dimension {
	var dims [4]Dimension
	for i, s := range b.Statements {
		dims[i] = s.Dimension
	}
	return dims
}

// DistinctDimensions returns the number of distinct dimensions in the block.
func (b *QuartetBlock) DistinctDimensions() int {
	seen := make(map[Dimension]struct{}, 4)
	for _, s := range b.Statements {
		seen[s.Dimension] = struct{}{}
	}
	return len(seen)
}

// ForcedChoiceResponse is one respondent's answer to a single quartet block.
// MostLikeIndex and LeastLikeIndex are positions within the block (0-3) and
// must differ.
type ForcedChoiceResponse struct {
	BlockID        string `json:"block_id"`
	MostLikeIndex  int    `json:"most_like_index"`
	LeastLikeIndex int    `json:"least_like_index"`
	ResponseTimeMs int64  `json:"response_time_ms,omitempty"`
}

// ResponseSet is the ordered collection of one respondent's answers plus the
// blocks they answered. Immutable after submission.
type ResponseSet struct {
	RespondentID string                 `json:"respondent_id"`
	Responses    []ForcedChoiceResponse `json:"responses"`
}

// DimensionParameters holds the calibrated item parameters for one dimension.
type DimensionParameters struct {
	Discrimination float64 `json:"discrimination"` // Slope applied to loading*theta
	Offset         float64 `json:"offset"`         // Difficulty-like intercept
	Observations   int     `json:"observations"`   // Pairwise comparisons observed during calibration
	Clamped        bool    `json:"clamped"`        // True when too few observations forced the default
}

// ItemParameters is a versioned, read-only set of per-dimension parameters
// produced by calibration and consumed by scoring.
type ItemParameters struct {
	Version     int                               `json:"version"`
	Source      ParamSource                       `json:"source"`
	Dimensions  map[Dimension]DimensionParameters `json:"dimensions"`
	Respondents int                               `json:"respondents"` // Corpus size used for calibration
	CreatedAt   time.Time                         `json:"created_at"`
}

// ForDimension returns the parameters for a dimension, falling back to the
// default discrimination/offset when the dimension is absent.
func (p *ItemParameters) ForDimension(d Dimension) DimensionParameters {
	if p != nil && p.Dimensions != nil {
		if dp, ok := p.Dimensions[d]; ok {
			return dp
		}
	}
	return DimensionParameters{Discrimination: DefaultDiscrimination, Offset: 0, Clamped: true}
}

// ThetaEstimate is the latent trait vector estimated for one respondent,
// with per-dimension standard errors from the observed information matrix.
type ThetaEstimate struct {
	Theta         map[Dimension]float64 `json:"theta"`
	SE            map[Dimension]float64 `json:"se"`
	Converged     bool                  `json:"converged"`
	Iterations    int                   `json:"iterations"`
	LogLikelihood float64               `json:"log_likelihood"`
	ParamSource   ParamSource           `json:"param_source"` // Calibrated or default parameters
	BlocksUsed    int                   `json:"blocks_used"`
}

// NormParameters holds the population mean/sd for one dimension,
// independently updatable from item parameters.
type NormParameters struct {
	Mean       float64 `json:"mean"`
	SD         float64 `json:"sd"`
	SampleSize int     `json:"sample_size"`
}

// NormTable is a versioned set of per-dimension norm parameters.
type NormTable struct {
	Version    int                          `json:"version"`
	Dimensions map[Dimension]NormParameters `json:"dimensions"`
	CreatedAt  time.Time                    `json:"created_at"`
}

// NormScore holds the population-referenced scores for one dimension.
type NormScore struct {
	Dimension  Dimension `json:"dimension"`
	Percentile float64   `json:"percentile"` // Clamped to [1,99]
	TScore     float64   `json:"t_score"`    // Mean 50, SD 10
	Stanine    int       `json:"stanine"`    // 1-9
	Sten       int       `json:"sten"`       // 1-10
	Label      string    `json:"label"`      // Interpretation label
	Fallback   bool      `json:"fallback"`   // True when literature-default norms were substituted
}

// TalentClassification assigns one dimension to a tier with a confidence label.
type TalentClassification struct {
	Dimension  Dimension `json:"dimension"`
	Tier       Tier      `json:"tier"`
	Confidence string    `json:"confidence"` // high, moderate, or borderline
	Refined    bool      `json:"refined"`    // True when a boundary refinement changed the tier
}

// TierSummary aggregates tier counts across the 12 dimensions and derives a
// coarse profile type label.
type TierSummary struct {
	Dominant    int     `json:"dominant"`
	Supporting  int     `json:"supporting"`
	Developing  int     `json:"developing"`
	DominantPct float64 `json:"dominant_pct"`
	ProfileType string  `json:"profile_type"`
	Anomalous   bool    `json:"anomalous"` // Tier distribution outside expected ranges
}

// CareerArchetype is one entry of the fixed archetype catalogue.
type CareerArchetype struct {
	Name           string      `json:"name"`
	Primary        []Dimension `json:"primary"`   // Two defining dimensions (2 points each)
	Secondary      []Dimension `json:"secondary"` // Up to three supporting dimensions (1 point each)
	SuggestedRoles []string    `json:"suggested_roles"`
	Description    string      `json:"description"`
}

// SynergyPair names the combination effect of two dominant dimensions.
type SynergyPair struct {
	A, B  Dimension `json:"-"`
	Name  string    `json:"name"`
	Note  string    `json:"note"`
}

// ArchetypeResult is the archetype assignment derived from a classification.
type ArchetypeResult struct {
	Primary    string             `json:"primary"`
	Secondary  string             `json:"secondary,omitempty"`
	Scores     map[string]int     `json:"archetype_scores"`
	Confidence float64            `json:"confidence"` // Normalized top-vs-runner-up gap in [0,1]
	Fallback   bool               `json:"fallback"`   // True when no archetype scored above zero
	Synergies  []SynergyPair      `json:"synergies,omitempty"`
}

// ScoreResult bundles everything produced for one respondent by a single
// scoring call: latent estimate, norm scores, tiers and archetype.
type ScoreResult struct {
	RespondentID   string                             `json:"respondent_id"`
	Theta          ThetaEstimate                      `json:"theta"`
	NormScores     map[Dimension]NormScore            `json:"norm_scores"`
	Tiers          map[Dimension]TalentClassification `json:"tiers"`
	Summary        TierSummary                        `json:"summary"`
	Archetype      ArchetypeResult                    `json:"archetype"`
	NormVersion    int                                `json:"norm_version"`
	ScoredAt       time.Time                          `json:"scored_at"`
}

// FitDiagnostics summarizes calibration quality per dimension.
type FitDiagnostics struct {
	MeanDiscrimination float64               `json:"mean_discrimination"`
	MeanOffset         float64               `json:"mean_offset"`
	Consistency        map[Dimension]float64 `json:"consistency"` // Cronbach-style alpha per dimension
	Converged          bool                  `json:"converged"`
	Iterations         int                   `json:"iterations"`
	LogLikelihood      float64               `json:"log_likelihood"`
}

// CalibrationResult is the output of a batch calibration run.
type CalibrationResult struct {
	Parameters  ItemParameters `json:"parameters"`
	Diagnostics FitDiagnostics `json:"diagnostics"`
}

// StoreStatus reports connection and row-count information for a store backend.
type StoreStatus struct {
	Backend        DatabaseBackend `json:"backend"`
	Connected      bool            `json:"connected"`
	ParamVersions  int             `json:"param_versions"`
	NormVersions   int             `json:"norm_versions"`
	ResponseRows   int             `json:"response_rows"`
	LastPublished  time.Time       `json:"last_published"`
}
