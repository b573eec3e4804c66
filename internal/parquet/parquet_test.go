package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap/schema"
)

func TestResponseRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(ResponseRow))
	require.NotNil(t, s)

	expectedColumns := []string{
		"respondent_id",
		"block_id",
		"most_like_index",
		"least_like_index",
		"response_time_ms",
	}
	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestScoreRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(ScoreRow))
	require.NotNil(t, s)

	expectedColumns := []string{
		"respondent_id",
		"dimension",
		"theta",
		"standard_error",
		"percentile",
		"t_score",
		"stanine",
		"sten",
		"tier",
		"archetype",
		"param_source",
		"scored_at",
	}
	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteResponsesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "responses.parquet")

	corpus := []schema.ResponseSet{
		{
			RespondentID: "r-001",
			Responses: []schema.ForcedChoiceResponse{
				{BlockID: "B001", MostLikeIndex: 0, LeastLikeIndex: 2, ResponseTimeMs: 3100},
				{BlockID: "B002", MostLikeIndex: 1, LeastLikeIndex: 3},
			},
		},
	}

	err := WriteResponsesParquet(corpus, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Parquet file should not be empty")

	// Read rows back to verify round-trip
	rows, err := parquet.ReadFile[ResponseRow](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "r-001", rows[0].RespondentID)
	assert.Equal(t, int32(0), rows[0].MostLikeIndex)
	require.NotNil(t, rows[0].ResponseTimeMs)
	assert.Equal(t, int64(3100), *rows[0].ResponseTimeMs)
	assert.Nil(t, rows[1].ResponseTimeMs)
}

func TestWriteScoresParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "scores.parquet")

	result := schema.ScoreResult{
		RespondentID: "r-001",
		Theta: schema.ThetaEstimate{
			Theta:       map[schema.Dimension]float64{schema.DimDrive: 0.8},
			SE:          map[schema.Dimension]float64{schema.DimDrive: 0.25},
			ParamSource: schema.CalibratedParams,
		},
		NormScores: map[schema.Dimension]schema.NormScore{
			schema.DimDrive: {Dimension: schema.DimDrive, Percentile: 78.8, TScore: 58, Stanine: 7, Sten: 8},
		},
		Tiers: map[schema.Dimension]schema.TalentClassification{
			schema.DimDrive: {Dimension: schema.DimDrive, Tier: schema.DominantTier},
		},
		Archetype: schema.ArchetypeResult{Primary: "Executor"},
		ScoredAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	err := WriteScoresParquet([]schema.ScoreResult{result}, outputPath)
	require.NoError(t, err)

	rows, err := parquet.ReadFile[ScoreRow](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Drive", rows[0].Dimension)
	assert.Equal(t, 0.8, rows[0].Theta)
	assert.Equal(t, "dominant", rows[0].Tier)
	assert.Equal(t, "Executor", rows[0].Archetype)
	assert.Equal(t, "calibrated", rows[0].ParamSource)
}

func TestBuildScoreRowsOrder(t *testing.T) {
	result := schema.ScoreResult{
		RespondentID: "r-002",
		NormScores: map[schema.Dimension]schema.NormScore{
			schema.DimVision: {Dimension: schema.DimVision},
			schema.DimDrive:  {Dimension: schema.DimDrive},
		},
		Theta: schema.ThetaEstimate{
			Theta: map[schema.Dimension]float64{},
			SE:    map[schema.Dimension]float64{},
		},
		Tiers: map[schema.Dimension]schema.TalentClassification{},
	}

	rows := BuildScoreRows([]schema.ScoreResult{result})
	require.Len(t, rows, 2)

	// Canonical dimension order, not map iteration order
	assert.Equal(t, "Drive", rows[0].Dimension)
	assert.Equal(t, "Vision", rows[1].Dimension)
}
