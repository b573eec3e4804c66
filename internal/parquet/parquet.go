// Package parquet provides data structures and functions for exporting
// assessment data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/talentmap/talentmap/schema"
)

// ResponseRow represents one forced-choice answer in the response corpus.
// One row is written per respondent-block pair.
type ResponseRow struct {
	// RespondentID identifies the respondent
	RespondentID string `parquet:"respondent_id,snappy"`

	// BlockID identifies the quartet block answered
	BlockID string `parquet:"block_id,snappy"`

	// MostLikeIndex is the position (0-3) picked as most characteristic
	MostLikeIndex int32 `parquet:"most_like_index,snappy"`

	// LeastLikeIndex is the position (0-3) picked as least characteristic
	LeastLikeIndex int32 `parquet:"least_like_index,snappy"`

	// ResponseTimeMs is how long the respondent spent on the block (nullable)
	ResponseTimeMs *int64 `parquet:"response_time_ms,optional,snappy"`
}

// ScoreRow represents one dimension of a respondent's scored profile.
// One row is written per respondent-dimension pair.
type ScoreRow struct {
	// RespondentID identifies the respondent
	RespondentID string `parquet:"respondent_id,snappy"`

	// Dimension is the trait dimension name
	Dimension string `parquet:"dimension,snappy"`

	// Theta is the latent trait estimate
	Theta float64 `parquet:"theta,snappy"`

	// StandardError is the per-dimension standard error of the estimate
	StandardError float64 `parquet:"standard_error,snappy"`

	// Percentile is the population percentile, clamped to [1,99]
	Percentile float64 `parquet:"percentile,snappy"`

	// TScore has mean 50 and standard deviation 10
	TScore float64 `parquet:"t_score,snappy"`

	// Stanine is the 1-9 band
	Stanine int32 `parquet:"stanine,snappy"`

	// Sten is the 1-10 band
	Sten int32 `parquet:"sten,snappy"`

	// Tier is the talent tier label (Dominant, Supporting, Developing)
	Tier string `parquet:"tier,snappy"`

	// Archetype is the primary archetype assigned to the respondent
	Archetype string `parquet:"archetype,snappy"`

	// ParamSource indicates calibrated or default parameters
	ParamSource string `parquet:"param_source,snappy"`

	// ScoredAt is when the profile was scored (stored as TIMESTAMP with nanosecond precision)
	ScoredAt time.Time `parquet:"scored_at,snappy"`
}

// WriteResponsesParquet writes a response corpus to a Parquet file.
func WriteResponsesParquet(corpus []schema.ResponseSet, outputPath string) error {
	rows := BuildResponseRows(corpus)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the ResponseRow struct tags
	writer := parquet.NewGenericWriter[ResponseRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteScoresParquet writes scored profiles to a Parquet file.
func WriteScoresParquet(results []schema.ScoreResult, outputPath string) error {
	rows := BuildScoreRows(results)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the ScoreRow struct tags
	writer := parquet.NewGenericWriter[ScoreRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// BuildResponseRows flattens a response corpus into parquet rows.
func BuildResponseRows(corpus []schema.ResponseSet) []ResponseRow {
	var rows []ResponseRow
	for i := range corpus {
		set := &corpus[i]
		for _, r := range set.Responses {
			row := ResponseRow{
				RespondentID:   set.RespondentID,
				BlockID:        r.BlockID,
				MostLikeIndex:  int32(r.MostLikeIndex),
				LeastLikeIndex: int32(r.LeastLikeIndex),
			}
			if r.ResponseTimeMs > 0 {
				ms := r.ResponseTimeMs
				row.ResponseTimeMs = &ms
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// BuildScoreRows flattens scored profiles into parquet rows, one per
// respondent-dimension pair in canonical dimension order.
func BuildScoreRows(results []schema.ScoreResult) []ScoreRow {
	var rows []ScoreRow
	for i := range results {
		r := &results[i]
		for _, dim := range schema.AllDimensions {
			ns, ok := r.NormScores[dim]
			if !ok {
				continue
			}
			tier := r.Tiers[dim]
			rows = append(rows, ScoreRow{
				RespondentID:  r.RespondentID,
				Dimension:     dim.Name(),
				Theta:         r.Theta.Theta[dim],
				StandardError: r.Theta.SE[dim],
				Percentile:    ns.Percentile,
				TScore:        ns.TScore,
				Stanine:       int32(ns.Stanine),
				Sten:          int32(ns.Sten),
				Tier:          string(tier.Tier),
				Archetype:     r.Archetype.Primary,
				ParamSource:   string(r.Theta.ParamSource),
				ScoredAt:      r.ScoredAt,
			})
		}
	}
	return rows
}
