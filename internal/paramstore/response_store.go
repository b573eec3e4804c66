package paramstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/schema"
)

// ResponseStoreImpl persists block designs and the response corpus.
type ResponseStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ResponseStore = &ResponseStoreImpl{} // Compile-time check

// NewResponseStore initializes and returns a new ResponseStore based on the
// backend type.
func NewResponseStore(backend schema.DatabaseBackend, connStr string) (contract.ResponseStore, error) {
	if backend == schema.NoneBackend {
		return &ResponseStoreImpl{db: nil, backend: backend}, nil
	}

	db, _, err := openDatabase(backend, connStr, contract.GetResponseDBFilePath())
	if err != nil {
		return nil, err
	}

	queries := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				design_id VARCHAR(64) NOT NULL,
				block_id VARCHAR(64) NOT NULL,
				position INTEGER NOT NULL,
				payload TEXT NOT NULL,
				PRIMARY KEY (design_id, block_id)
			);
		`, blockDesignsTable),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				respondent_id VARCHAR(64) NOT NULL,
				block_id VARCHAR(64) NOT NULL,
				seq INTEGER NOT NULL,
				most_like_index INTEGER NOT NULL,
				least_like_index INTEGER NOT NULL,
				response_time_ms BIGINT NOT NULL,
				PRIMARY KEY (respondent_id, block_id)
			);
		`, responsesTable),
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create response tables: %w", err)
		}
	}

	return &ResponseStoreImpl{db: db, backend: backend}, nil
}

// SaveBlocks stores a block design under the given design id.
func (s *ResponseStoreImpl) SaveBlocks(designID string, blocks []schema.QuartetBlock) error {
	if s.db == nil {
		return fmt.Errorf("response store is disabled (backend %s)", s.backend)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin design save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := fmt.Sprintf("INSERT INTO %s (design_id, block_id, position, payload) VALUES (%s, %s, %s, %s)",
		blockDesignsTable, s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4))
	for i := range blocks {
		payload, err := json.Marshal(&blocks[i])
		if err != nil {
			return fmt.Errorf("failed to encode block %s: %w", blocks[i].BlockID, err)
		}
		if _, err := tx.Exec(insert, designID, blocks[i].BlockID, i, string(payload)); err != nil {
			return fmt.Errorf("failed to insert block %s: %w", blocks[i].BlockID, err)
		}
	}
	return tx.Commit()
}

// LoadBlocks returns the block design stored under the given design id, in
// original position order.
func (s *ResponseStoreImpl) LoadBlocks(designID string) ([]schema.QuartetBlock, error) {
	if s.db == nil {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT payload FROM %s WHERE design_id = %s ORDER BY position",
		blockDesignsTable, s.placeholder(1))
	rows, err := s.db.Query(query, designID)
	if err != nil {
		return nil, fmt.Errorf("failed to load design %q: %w", designID, err)
	}
	defer func() { _ = rows.Close() }()

	var blocks []schema.QuartetBlock
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var b schema.QuartetBlock
		if err := json.Unmarshal([]byte(payload), &b); err != nil {
			return nil, fmt.Errorf("failed to decode block in design %q: %w", designID, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// SaveResponses stores one respondent's answers.
func (s *ResponseStoreImpl) SaveResponses(set *schema.ResponseSet) error {
	if s.db == nil {
		return fmt.Errorf("response store is disabled (backend %s)", s.backend)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin response save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := fmt.Sprintf("INSERT INTO %s (respondent_id, block_id, seq, most_like_index, least_like_index, response_time_ms) VALUES (%s, %s, %s, %s, %s, %s)",
		responsesTable, s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4), s.placeholder(5), s.placeholder(6))
	for i, r := range set.Responses {
		if _, err := tx.Exec(insert, set.RespondentID, r.BlockID, i, r.MostLikeIndex, r.LeastLikeIndex, r.ResponseTimeMs); err != nil {
			return fmt.Errorf("failed to insert response for block %s: %w", r.BlockID, err)
		}
	}
	return tx.Commit()
}

// LoadCorpus returns every stored response grouped by respondent, responses
// in submission order, respondents in stable id order.
func (s *ResponseStoreImpl) LoadCorpus() ([]schema.ResponseSet, error) {
	if s.db == nil {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT respondent_id, block_id, seq, most_like_index, least_like_index, response_time_ms FROM %s ORDER BY respondent_id, seq", responsesTable)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byRespondent := make(map[string]*schema.ResponseSet)
	var order []string
	for rows.Next() {
		var respondentID, blockID string
		var seq, most, least int
		var ms int64
		if err := rows.Scan(&respondentID, &blockID, &seq, &most, &least, &ms); err != nil {
			return nil, err
		}
		set, ok := byRespondent[respondentID]
		if !ok {
			set = &schema.ResponseSet{RespondentID: respondentID}
			byRespondent[respondentID] = set
			order = append(order, respondentID)
		}
		set.Responses = append(set.Responses, schema.ForcedChoiceResponse{
			BlockID:        blockID,
			MostLikeIndex:  most,
			LeastLikeIndex: least,
			ResponseTimeMs: ms,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(order)
	corpus := make([]schema.ResponseSet, 0, len(order))
	for _, id := range order {
		corpus = append(corpus, *byRespondent[id])
	}
	return corpus, nil
}

// Close releases the underlying database handle.
func (s *ResponseStoreImpl) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// placeholder returns the positional parameter marker for the backend.
func (s *ResponseStoreImpl) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
