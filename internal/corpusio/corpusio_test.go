package corpusio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap/schema"
)

func TestLoadStatementPoolDefault(t *testing.T) {
	pool, err := LoadStatementPool("")
	require.NoError(t, err)
	assert.Len(t, pool, len(schema.DefaultStatementPool()))
}

func TestLoadStatementPoolFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.json")
	pool := []schema.Statement{
		{ID: "DRV-01", Text: "I push hard to finish what I start", Dimension: schema.DimDrive, Loading: 0.7},
		{ID: "EMP-01", Text: "I notice when a teammate is struggling", Dimension: schema.DimEmpathy, Loading: 0.6},
	}
	require.NoError(t, SaveJSON(path, pool))

	loaded, err := LoadStatementPool(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "DRV-01", loaded[0].ID)
	assert.Equal(t, schema.DimEmpathy, loaded[1].Dimension)
}

func TestLoadStatementPoolValidation(t *testing.T) {
	t.Run("invalid dimension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pool.json")
		require.NoError(t, SaveJSON(path, []schema.Statement{
			{ID: "BAD-01", Dimension: 99, Loading: 0.5},
		}))
		_, err := LoadStatementPool(path)
		assert.Error(t, err)
	})

	t.Run("loading out of range", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pool.json")
		require.NoError(t, SaveJSON(path, []schema.Statement{
			{ID: "BAD-02", Dimension: schema.DimDrive, Loading: 1.5},
		}))
		_, err := LoadStatementPool(path)
		assert.Error(t, err)
	})

	t.Run("empty pool", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pool.json")
		require.NoError(t, SaveJSON(path, []schema.Statement{}))
		_, err := LoadStatementPool(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadStatementPool(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func TestLoadBlocksRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.json")
	blocks := []schema.QuartetBlock{
		{
			BlockID: "B001",
			Statements: [4]schema.Statement{
				{ID: "DRV-01", Dimension: schema.DimDrive, Loading: 0.7},
				{ID: "EMP-01", Dimension: schema.DimEmpathy, Loading: 0.6},
				{ID: "ANL-01", Dimension: schema.DimAnalytical, Loading: 0.65},
				{ID: "VIS-01", Dimension: schema.DimVision, Loading: 0.72},
			},
		},
	}
	require.NoError(t, SaveJSON(path, blocks))

	loaded, err := LoadBlocks(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "B001", loaded[0].BlockID)
	assert.Equal(t, 4, loaded[0].DistinctDimensions())
}

func TestLoadResponsesSingleAndArray(t *testing.T) {
	dir := t.TempDir()

	single := schema.ResponseSet{
		RespondentID: "r-001",
		Responses: []schema.ForcedChoiceResponse{
			{BlockID: "B001", MostLikeIndex: 0, LeastLikeIndex: 2},
		},
	}
	singlePath := filepath.Join(dir, "single.json")
	require.NoError(t, SaveJSON(singlePath, single))

	corpus, err := LoadResponses(singlePath)
	require.NoError(t, err)
	require.Len(t, corpus, 1)
	assert.Equal(t, "r-001", corpus[0].RespondentID)

	arrayPath := filepath.Join(dir, "array.json")
	require.NoError(t, SaveJSON(arrayPath, []schema.ResponseSet{single, {RespondentID: "r-002"}}))

	corpus, err = LoadResponses(arrayPath)
	require.NoError(t, err)
	require.Len(t, corpus, 2)
	assert.Equal(t, "r-002", corpus[1].RespondentID)
}

func TestLoadResponsesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.csv")
	data := "respondent_id,block_id,most_like_index,least_like_index,response_time_ms\n" +
		"r-001,B001,0,2,3500\n" +
		"r-001,B002,1,3,\n" +
		"r-002,B001,2,0,4100\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	corpus, err := LoadResponses(path)
	require.NoError(t, err)
	require.Len(t, corpus, 2)

	assert.Equal(t, "r-001", corpus[0].RespondentID)
	require.Len(t, corpus[0].Responses, 2)
	assert.Equal(t, "B001", corpus[0].Responses[0].BlockID)
	assert.Equal(t, int64(3500), corpus[0].Responses[0].ResponseTimeMs)
	assert.Equal(t, int64(0), corpus[0].Responses[1].ResponseTimeMs)

	assert.Equal(t, "r-002", corpus[1].RespondentID)
	require.Len(t, corpus[1].Responses, 1)
	assert.Equal(t, 2, corpus[1].Responses[0].MostLikeIndex)
}

func TestParseResponsesCSVErrors(t *testing.T) {
	t.Run("header only", func(t *testing.T) {
		_, err := ParseResponsesCSV([]byte("respondent_id,block_id,most_like_index,least_like_index\n"))
		assert.ErrorContains(t, err, "no data rows")
	})

	t.Run("short row", func(t *testing.T) {
		_, err := ParseResponsesCSV([]byte("h1,h2,h3,h4\nr-001,B001,0\n"))
		assert.ErrorContains(t, err, "columns")
	})

	t.Run("bad index", func(t *testing.T) {
		_, err := ParseResponsesCSV([]byte("h1,h2,h3,h4\nr-001,B001,x,2\n"))
		assert.ErrorContains(t, err, "most_like_index")
	})
}

func TestLoadNormTable(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		table, err := LoadNormTable("")
		require.NoError(t, err)
		assert.Len(t, table.Dimensions, schema.NumDimensions)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "norms.json")
		table := schema.NormTable{
			Version: 3,
			Dimensions: map[schema.Dimension]schema.NormParameters{
				schema.DimDrive: {Mean: 0.1, SD: 0.9, SampleSize: 500},
			},
		}
		require.NoError(t, SaveJSON(path, table))

		loaded, err := LoadNormTable(path)
		require.NoError(t, err)
		assert.Equal(t, 3, loaded.Version)
		assert.Equal(t, 0.9, loaded.Dimensions[schema.DimDrive].SD)
	})

	t.Run("rejects non-positive sd", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "norms.json")
		table := schema.NormTable{
			Dimensions: map[schema.Dimension]schema.NormParameters{
				schema.DimDrive: {Mean: 0, SD: 0},
			},
		}
		require.NoError(t, SaveJSON(path, table))

		_, err := LoadNormTable(path)
		assert.Error(t, err)
	})
}
