package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap/schema"
)

// TestCreateBlocks tests the block design search.
func TestCreateBlocks(t *testing.T) {
	pool := schema.DefaultStatementPool()

	t.Run("produces the requested number of valid blocks", func(t *testing.T) {
		blocks, err := CreateBlocks(pool, 10, 42)
		require.NoError(t, err)
		require.Len(t, blocks, 10)
		for i := range blocks {
			assert.NoError(t, schema.ValidateBlock(&blocks[i]))
		}
	})

	t.Run("same seed yields the same design", func(t *testing.T) {
		a, err := CreateBlocks(pool, 8, 7)
		require.NoError(t, err)
		b, err := CreateBlocks(pool, 8, 7)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("different seeds yield different designs", func(t *testing.T) {
		a, err := CreateBlocks(pool, 8, 1)
		require.NoError(t, err)
		b, err := CreateBlocks(pool, 8, 2)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("blocks use four distinct dimensions", func(t *testing.T) {
		blocks, err := CreateBlocks(pool, 12, 42)
		require.NoError(t, err)
		for i := range blocks {
			dims := make(map[schema.Dimension]struct{}, 4)
			for _, s := range blocks[i].Statements {
				dims[s.Dimension] = struct{}{}
			}
			assert.Len(t, dims, 4, "block %s repeats a dimension", blocks[i].BlockID)
		}
	})

	t.Run("dimension usage stays near uniform", func(t *testing.T) {
		blocks, err := CreateBlocks(pool, 12, 42)
		require.NoError(t, err)
		usage := make(map[schema.Dimension]int)
		for i := range blocks {
			for _, s := range blocks[i].Statements {
				usage[s.Dimension]++
			}
		}
		minU, maxU := -1, 0
		for _, d := range schema.AllDimensions {
			c := usage[d]
			if minU < 0 || c < minU {
				minU = c
			}
			if c > maxU {
				maxU = c
			}
		}
		// 12 blocks x 4 slots over 12 dimensions targets 4 uses each.
		assert.LessOrEqual(t, maxU-minU, 2, "usage spread too wide: min=%d max=%d", minU, maxU)
	})

	t.Run("rejects a non-positive block count", func(t *testing.T) {
		_, err := CreateBlocks(pool, 0, 42)
		var verr *schema.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("rejects a pool with too few dimensions", func(t *testing.T) {
		small := []schema.Statement{
			{ID: "A-01", Dimension: schema.DimDrive, Loading: 0.7},
			{ID: "B-01", Dimension: schema.DimEmpathy, Loading: 0.7},
			{ID: "C-01", Dimension: schema.DimVision, Loading: 0.7},
		}
		_, err := CreateBlocks(small, 4, 42)
		var ierr *schema.InsufficientDataError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, 3, ierr.Got)
	})
}

// TestDimPair tests canonical pair ordering.
func TestDimPair(t *testing.T) {
	assert.Equal(t, dimPair(schema.DimVision, schema.DimDrive), dimPair(schema.DimDrive, schema.DimVision))
}
