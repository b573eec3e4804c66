package paramstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/schema"
)

// ParamStoreImpl handles versioned parameter storage using various database
// backends.
type ParamStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ParamStore = &ParamStoreImpl{} // Compile-time check

// NewParamStore initializes and returns a new ParamStore based on the backend
// type. The NoneBackend returns a disabled store whose reads report nothing
// published and whose writes fail loudly.
func NewParamStore(backend schema.DatabaseBackend, connStr string) (contract.ParamStore, error) {
	if backend == schema.NoneBackend {
		return &ParamStoreImpl{db: nil, backend: backend}, nil
	}

	db, _, err := openDatabase(backend, connStr, contract.GetParamDBFilePath())
	if err != nil {
		return nil, err
	}

	for _, table := range []string{itemParamsTable, normTablesTable} {
		if _, err := db.Exec(createVersionedTableQuery(table)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}

	return &ParamStoreImpl{db: db, backend: backend}, nil
}

// PublishItemParameters writes a new parameter version inside a transaction.
// The version is assigned at publish time (max+1); a single committed INSERT
// makes the publish atomic, so readers see the old version or the new one,
// never a partial write.
func (s *ParamStoreImpl) PublishItemParameters(params *schema.ItemParameters) (int, error) {
	return s.publishVersioned(itemParamsTable, func(version int) (any, error) {
		stamped := *params
		stamped.Version = version
		return &stamped, nil
	})
}

// LatestItemParameters returns the most recently published parameter set, or
// nil when nothing has been published yet. Callers substitute the shipped
// default set in that case.
func (s *ParamStoreImpl) LatestItemParameters() (*schema.ItemParameters, error) {
	payload, err := s.latestPayload(itemParamsTable)
	if err != nil || payload == nil {
		return nil, err
	}
	var params schema.ItemParameters
	if err := json.Unmarshal(payload, &params); err != nil {
		return nil, fmt.Errorf("failed to decode item parameters: %w", err)
	}
	return &params, nil
}

// PublishNormTable writes a new norm table version atomically.
func (s *ParamStoreImpl) PublishNormTable(table *schema.NormTable) (int, error) {
	return s.publishVersioned(normTablesTable, func(version int) (any, error) {
		stamped := *table
		stamped.Version = version
		return &stamped, nil
	})
}

// LatestNormTable returns the most recently published norm table, or nil when
// nothing has been published yet.
func (s *ParamStoreImpl) LatestNormTable() (*schema.NormTable, error) {
	payload, err := s.latestPayload(normTablesTable)
	if err != nil || payload == nil {
		return nil, err
	}
	var table schema.NormTable
	if err := json.Unmarshal(payload, &table); err != nil {
		return nil, fmt.Errorf("failed to decode norm table: %w", err)
	}
	return &table, nil
}

// GetStatus reports connection and version-count information.
func (s *ParamStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{Backend: s.backend}
	if s.db == nil {
		return status, nil
	}
	status.Connected = true

	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", itemParamsTable)).Scan(&status.ParamVersions); err != nil {
		return status, fmt.Errorf("failed to count parameter versions: %w", err)
	}
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", normTablesTable)).Scan(&status.NormVersions); err != nil {
		return status, fmt.Errorf("failed to count norm versions: %w", err)
	}

	var lastUnix sql.NullInt64
	if err := s.db.QueryRow(fmt.Sprintf("SELECT MAX(created_at) FROM %s", itemParamsTable)).Scan(&lastUnix); err == nil && lastUnix.Valid {
		status.LastPublished = time.Unix(lastUnix.Int64, 0).UTC()
	}
	return status, nil
}

// Close releases the underlying database handle.
func (s *ParamStoreImpl) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// publishVersioned assigns the next version inside a transaction and inserts
// the JSON payload in the same transaction.
func (s *ParamStoreImpl) publishVersioned(table string, stamp func(version int) (any, error)) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("parameter store is disabled (backend %s)", s.backend)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin publish transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var maxVersion sql.NullInt64
	if err := tx.QueryRow(fmt.Sprintf("SELECT MAX(version) FROM %s", table)).Scan(&maxVersion); err != nil {
		return 0, fmt.Errorf("failed to read latest version from %s: %w", table, err)
	}
	version := int(maxVersion.Int64) + 1

	value, err := stamp(version)
	if err != nil {
		return 0, err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("failed to encode payload: %w", err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (version, payload, created_at) VALUES (%s, %s, %s)",
		table, s.placeholder(1), s.placeholder(2), s.placeholder(3))
	if _, err := tx.Exec(insert, version, string(payload), time.Now().UTC().Unix()); err != nil {
		return 0, fmt.Errorf("failed to insert version %d into %s: %w", version, table, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit publish: %w", err)
	}
	return version, nil
}

// latestPayload returns the payload of the highest version, or nil when the
// table is empty.
func (s *ParamStoreImpl) latestPayload(table string) ([]byte, error) {
	if s.db == nil {
		return nil, nil
	}
	var payload string
	query := fmt.Sprintf("SELECT payload FROM %s ORDER BY version DESC LIMIT 1", table)
	err := s.db.QueryRow(query).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest payload from %s: %w", table, err)
	}
	return []byte(payload), nil
}

// placeholder returns the positional parameter marker for the backend.
func (s *ParamStoreImpl) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
