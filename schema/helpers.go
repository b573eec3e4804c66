package schema

import "fmt"

// PoolByDimension groups a statement pool by dimension, dropping statements
// with out-of-range dimensions.
func PoolByDimension(pool []Statement) map[Dimension][]Statement {
	byDim := make(map[Dimension][]Statement)
	for _, s := range pool {
		if !s.Dimension.Valid() {
			continue
		}
		byDim[s.Dimension] = append(byDim[s.Dimension], s)
	}
	return byDim
}

// UsableDimensions returns the dimensions that have at least one statement in
// the pool, in canonical order.
func UsableDimensions(pool []Statement) []Dimension {
	byDim := PoolByDimension(pool)
	var dims []Dimension
	for _, d := range AllDimensions {
		if len(byDim[d]) > 0 {
			dims = append(dims, d)
		}
	}
	return dims
}

// ValidateBlock checks block composition: four statements with ids and
// in-range dimensions.
func ValidateBlock(b *QuartetBlock) error {
	if b.BlockID == "" {
		return NewValidationError("block_id", "must not be empty")
	}
	for i, s := range b.Statements {
		if s.ID == "" {
			return NewValidationError("statements", "statement %d in block %s has no id", i, b.BlockID)
		}
		if !s.Dimension.Valid() {
			return NewValidationError("statements", "statement %s has out-of-range dimension %d", s.ID, s.Dimension)
		}
	}
	return nil
}

// ValidateResponse checks a single forced-choice response: both indices in
// [0,3] and distinct. Equal indices are rejected, never repaired.
func ValidateResponse(r *ForcedChoiceResponse) error {
	if r.BlockID == "" {
		return NewValidationError("block_id", "must not be empty")
	}
	if r.MostLikeIndex < 0 || r.MostLikeIndex > 3 {
		return NewValidationError("most_like_index", "index %d out of range [0,3]", r.MostLikeIndex)
	}
	if r.LeastLikeIndex < 0 || r.LeastLikeIndex > 3 {
		return NewValidationError("least_like_index", "index %d out of range [0,3]", r.LeastLikeIndex)
	}
	if r.MostLikeIndex == r.LeastLikeIndex {
		return NewValidationError("least_like_index", "most and least picks must differ (both %d)", r.MostLikeIndex)
	}
	return nil
}

// BlockIndex builds a lookup from block id to block for a design.
func BlockIndex(blocks []QuartetBlock) map[string]*QuartetBlock {
	idx := make(map[string]*QuartetBlock, len(blocks))
	for i := range blocks {
		idx[blocks[i].BlockID] = &blocks[i]
	}
	return idx
}

// ValidateResponseSet checks every response in the set and verifies each
// references a known block. An unknown block id is a validation error, not a
// silent drop.
func ValidateResponseSet(set *ResponseSet, blocks map[string]*QuartetBlock) error {
	for i := range set.Responses {
		r := &set.Responses[i]
		if err := ValidateResponse(r); err != nil {
			return err
		}
		if _, ok := blocks[r.BlockID]; !ok {
			return fmt.Errorf("%w: response %d references block %q", ErrUnknownBlock, i, r.BlockID)
		}
	}
	return nil
}
