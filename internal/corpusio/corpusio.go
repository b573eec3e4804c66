// Package corpusio loads statement pools, block designs and response corpora
// from files on disk.
package corpusio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/talentmap/talentmap/schema"
)

// LoadStatementPool reads a statement pool from a JSON file. An empty path
// returns the shipped default pool.
func LoadStatementPool(path string) ([]schema.Statement, error) {
	if path == "" {
		return schema.DefaultStatementPool(), nil
	}
	var pool []schema.Statement
	if err := loadJSONFile(path, &pool); err != nil {
		return nil, fmt.Errorf("failed to load statement pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("statement pool file %q contains no statements", path)
	}
	for i := range pool {
		if !pool[i].Dimension.Valid() {
			return nil, schema.NewValidationError("dimension", "statement %s has invalid dimension %d", pool[i].ID, pool[i].Dimension)
		}
		if pool[i].Loading <= 0 || pool[i].Loading >= 1 {
			return nil, schema.NewValidationError("loading", "statement %s has loading %v outside (0,1)", pool[i].ID, pool[i].Loading)
		}
	}
	return pool, nil
}

// LoadBlocks reads a block design from a JSON file.
func LoadBlocks(path string) ([]schema.QuartetBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}
	return ParseBlocks(data)
}

// ParseBlocks decodes and validates a block design from raw JSON.
func ParseBlocks(data []byte) ([]schema.QuartetBlock, error) {
	var blocks []schema.QuartetBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("invalid block JSON: %w", err)
	}
	for i := range blocks {
		if err := schema.ValidateBlock(&blocks[i]); err != nil {
			return nil, err
		}
	}
	return blocks, nil
}

// LoadResponses reads a response corpus from a file. JSON files may hold a
// single respondent object or an array of them; files ending in .csv use the
// flat export layout (one row per answered block).
func LoadResponses(path string) ([]schema.ResponseSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ParseResponsesCSV(data)
	}
	return ParseResponses(data)
}

// ParseResponses decodes a response corpus from raw JSON. The payload may hold
// a single respondent object or an array of them.
func ParseResponses(data []byte) ([]schema.ResponseSet, error) {
	var corpus []schema.ResponseSet
	if err := json.Unmarshal(data, &corpus); err == nil {
		return corpus, nil
	}

	var single schema.ResponseSet
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("failed to decode responses: %w", err)
	}
	return []schema.ResponseSet{single}, nil
}

// ParseResponsesCSV decodes a flat response corpus: one row per answered
// block, grouped by respondent in row order. The expected header is
// respondent_id,block_id,most_like_index,least_like_index,response_time_ms
// (the time column is optional).
func ParseResponsesCSV(data []byte) ([]schema.ResponseSet, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid response CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("response CSV has no data rows")
	}

	var corpus []schema.ResponseSet
	byID := make(map[string]int)
	for i, rec := range records[1:] {
		if len(rec) < 4 {
			return nil, fmt.Errorf("response CSV row %d has %d columns, want at least 4", i+2, len(rec))
		}
		most, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("response CSV row %d: bad most_like_index: %w", i+2, err)
		}
		least, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("response CSV row %d: bad least_like_index: %w", i+2, err)
		}
		resp := schema.ForcedChoiceResponse{BlockID: rec[1], MostLikeIndex: most, LeastLikeIndex: least}
		if len(rec) > 4 && rec[4] != "" {
			ms, err := strconv.ParseInt(rec[4], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("response CSV row %d: bad response_time_ms: %w", i+2, err)
			}
			resp.ResponseTimeMs = ms
		}

		id := rec[0]
		idx, ok := byID[id]
		if !ok {
			idx = len(corpus)
			byID[id] = idx
			corpus = append(corpus, schema.ResponseSet{RespondentID: id})
		}
		corpus[idx].Responses = append(corpus[idx].Responses, resp)
	}
	return corpus, nil
}

// LoadNormTable reads a norm table from a JSON file. An empty path returns the
// shipped literature-default table.
func LoadNormTable(path string) (schema.NormTable, error) {
	if path == "" {
		return schema.DefaultNormTable(), nil
	}
	var table schema.NormTable
	if err := loadJSONFile(path, &table); err != nil {
		return schema.NormTable{}, fmt.Errorf("failed to load norm table: %w", err)
	}
	for dim, np := range table.Dimensions {
		if np.SD <= 0 {
			return schema.NormTable{}, schema.NewValidationError("sd", "norm for %s has non-positive sd %v", dim.Name(), np.SD)
		}
	}
	return table, nil
}

// SaveJSON writes any value to a JSON file with stable indentation. Used by
// the simulator and block designer to persist artifacts for later runs.
func SaveJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// loadJSONFile decodes one JSON file into target.
func loadJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("invalid JSON in %q: %w", path, err)
	}
	return nil
}
