package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDimension tests dimension naming and validity.
func TestDimension(t *testing.T) {
	assert.Equal(t, "Drive", DimDrive.Name())
	assert.Equal(t, "Vision", DimVision.Name())
	assert.Equal(t, "Unknown", Dimension(0).Name())
	assert.Equal(t, "Unknown", Dimension(13).Name())

	assert.True(t, DimDrive.Valid())
	assert.True(t, DimVision.Valid())
	assert.False(t, Dimension(0).Valid())
	assert.False(t, Dimension(13).Valid())

	require.Len(t, AllDimensions, NumDimensions)
	seen := make(map[Dimension]struct{}, NumDimensions)
	for _, d := range AllDimensions {
		assert.True(t, d.Valid())
		seen[d] = struct{}{}
	}
	assert.Len(t, seen, NumDimensions, "canonical order must not repeat dimensions")
}

// TestDefaultStatementPool tests the shipped catalogue invariants.
func TestDefaultStatementPool(t *testing.T) {
	pool := DefaultStatementPool()
	require.Len(t, pool, NumDimensions*4)

	perDim := make(map[Dimension]int)
	ids := make(map[string]struct{}, len(pool))
	for _, s := range pool {
		assert.True(t, s.Dimension.Valid(), "statement %s", s.ID)
		assert.Greater(t, s.Loading, 0.0, "statement %s", s.ID)
		assert.Less(t, s.Loading, 1.0, "statement %s", s.ID)
		assert.NotEmpty(t, s.Text)
		_, dup := ids[s.ID]
		assert.False(t, dup, "duplicate statement id %s", s.ID)
		ids[s.ID] = struct{}{}
		perDim[s.Dimension]++
	}
	for _, d := range AllDimensions {
		assert.Equal(t, 4, perDim[d], "dimension %s", d.Name())
	}
}

// TestDefaultItemParameters tests the shipped fallback parameter set.
func TestDefaultItemParameters(t *testing.T) {
	params := DefaultItemParameters()
	assert.Equal(t, DefaultParams, params.Source)
	assert.Equal(t, 0, params.Version)
	require.Len(t, params.Dimensions, NumDimensions)
	for _, d := range AllDimensions {
		dp := params.Dimensions[d]
		assert.Equal(t, DefaultDiscrimination, dp.Discrimination)
		assert.Zero(t, dp.Offset)
	}
}

// TestForDimension tests the parameter lookup fallback.
func TestForDimension(t *testing.T) {
	params := DefaultItemParameters()
	dp := params.ForDimension(DimDrive)
	assert.Equal(t, DefaultDiscrimination, dp.Discrimination)
	assert.False(t, dp.Clamped)

	t.Run("missing entries fall back to the clamped default", func(t *testing.T) {
		empty := ItemParameters{}
		dp := empty.ForDimension(DimDrive)
		assert.Equal(t, DefaultDiscrimination, dp.Discrimination)
		assert.True(t, dp.Clamped)
	})
}

// TestDefaultNormTable tests the literature-default norms.
func TestDefaultNormTable(t *testing.T) {
	table := DefaultNormTable()
	require.Len(t, table.Dimensions, NumDimensions)
	for _, d := range AllDimensions {
		np := table.Dimensions[d]
		assert.Zero(t, np.Mean)
		assert.Equal(t, 1.0, np.SD)
	}
}

// TestArchetypeCatalogue tests catalogue shape invariants.
func TestArchetypeCatalogue(t *testing.T) {
	catalogue := ArchetypeCatalogue()
	require.NotEmpty(t, catalogue)

	names := make(map[string]struct{}, len(catalogue))
	for _, arch := range catalogue {
		assert.Len(t, arch.Primary, 2, "archetype %s", arch.Name)
		assert.LessOrEqual(t, len(arch.Secondary), 3, "archetype %s", arch.Name)
		assert.NotEmpty(t, arch.SuggestedRoles)
		_, dup := names[arch.Name]
		assert.False(t, dup, "duplicate archetype %s", arch.Name)
		names[arch.Name] = struct{}{}
		assert.NotEqual(t, BalancedArchetype, arch.Name, "the fallback must stay outside the catalogue")
	}
}

// TestSynergyCatalogue tests synergy pair invariants.
func TestSynergyCatalogue(t *testing.T) {
	for _, pair := range SynergyCatalogue() {
		assert.True(t, pair.A.Valid())
		assert.True(t, pair.B.Valid())
		assert.NotEqual(t, pair.A, pair.B, "synergy %s", pair.Name)
		assert.NotEmpty(t, pair.Name)
	}
}

// TestValidateBlock tests block validation rules.
func TestValidateBlock(t *testing.T) {
	valid := QuartetBlock{
		BlockID: "B001",
		Statements: [4]Statement{
			{ID: "A", Dimension: DimDrive},
			{ID: "B", Dimension: DimEmpathy},
			{ID: "C", Dimension: DimVision},
			{ID: "D", Dimension: DimLearning},
		},
	}
	assert.NoError(t, ValidateBlock(&valid))

	t.Run("missing block id", func(t *testing.T) {
		b := valid
		b.BlockID = ""
		var verr *ValidationError
		require.ErrorAs(t, ValidateBlock(&b), &verr)
		assert.Equal(t, "block_id", verr.Field)
	})

	t.Run("missing statement id", func(t *testing.T) {
		b := valid
		b.Statements[2].ID = ""
		assert.Error(t, ValidateBlock(&b))
	})

	t.Run("out-of-range dimension", func(t *testing.T) {
		b := valid
		b.Statements[0].Dimension = 42
		assert.Error(t, ValidateBlock(&b))
	})
}

// TestValidateResponse tests forced-choice response validation.
func TestValidateResponse(t *testing.T) {
	assert.NoError(t, ValidateResponse(&ForcedChoiceResponse{BlockID: "B001", MostLikeIndex: 0, LeastLikeIndex: 3}))

	cases := []struct {
		name string
		r    ForcedChoiceResponse
	}{
		{"empty block id", ForcedChoiceResponse{MostLikeIndex: 0, LeastLikeIndex: 1}},
		{"most index below range", ForcedChoiceResponse{BlockID: "B001", MostLikeIndex: -1, LeastLikeIndex: 1}},
		{"most index above range", ForcedChoiceResponse{BlockID: "B001", MostLikeIndex: 4, LeastLikeIndex: 1}},
		{"least index above range", ForcedChoiceResponse{BlockID: "B001", MostLikeIndex: 0, LeastLikeIndex: 4}},
		{"equal picks", ForcedChoiceResponse{BlockID: "B001", MostLikeIndex: 2, LeastLikeIndex: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *ValidationError
			assert.ErrorAs(t, ValidateResponse(&tc.r), &verr)
		})
	}
}

// TestValidateResponseSet tests set-level validation against a design.
func TestValidateResponseSet(t *testing.T) {
	blocks := BlockIndex([]QuartetBlock{{
		BlockID: "B001",
		Statements: [4]Statement{
			{ID: "A", Dimension: DimDrive},
			{ID: "B", Dimension: DimEmpathy},
			{ID: "C", Dimension: DimVision},
			{ID: "D", Dimension: DimLearning},
		},
	}})

	ok := ResponseSet{RespondentID: "r1", Responses: []ForcedChoiceResponse{
		{BlockID: "B001", MostLikeIndex: 0, LeastLikeIndex: 1},
	}}
	assert.NoError(t, ValidateResponseSet(&ok, blocks))

	t.Run("unknown block id", func(t *testing.T) {
		bad := ResponseSet{RespondentID: "r1", Responses: []ForcedChoiceResponse{
			{BlockID: "B999", MostLikeIndex: 0, LeastLikeIndex: 1},
		}}
		assert.ErrorIs(t, ValidateResponseSet(&bad, blocks), ErrUnknownBlock)
	})
}

// TestPoolHelpers tests pool grouping and usable-dimension listing.
func TestPoolHelpers(t *testing.T) {
	pool := []Statement{
		{ID: "A", Dimension: DimDrive},
		{ID: "B", Dimension: DimDrive},
		{ID: "C", Dimension: DimVision},
		{ID: "D", Dimension: 99}, // dropped
	}

	byDim := PoolByDimension(pool)
	assert.Len(t, byDim[DimDrive], 2)
	assert.Len(t, byDim[DimVision], 1)
	assert.NotContains(t, byDim, Dimension(99))

	usable := UsableDimensions(pool)
	assert.Equal(t, []Dimension{DimDrive, DimVision}, usable, "canonical order")
}

// TestBlockIndex tests the id lookup construction.
func TestBlockIndex(t *testing.T) {
	blocks := []QuartetBlock{{BlockID: "B001"}, {BlockID: "B002"}}
	idx := BlockIndex(blocks)
	require.Len(t, idx, 2)
	assert.Equal(t, &blocks[0], idx["B001"])
	assert.Equal(t, &blocks[1], idx["B002"])
}

// TestInsufficientDataError tests sentinel unwrapping.
func TestInsufficientDataError(t *testing.T) {
	err := &InsufficientDataError{What: "respondents", Got: 3, Need: 10}
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Contains(t, err.Error(), "got 3, need 10")

	var target *InsufficientDataError
	assert.True(t, errors.As(error(err), &target))
}
