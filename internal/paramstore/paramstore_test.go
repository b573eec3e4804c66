package paramstore

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentmap/talentmap/schema"
)

func TestParamStoreVersioning(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "params.db")
	store, err := NewParamStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Nothing published yet
	latest, err := store.LatestItemParameters()
	require.NoError(t, err)
	assert.Nil(t, latest)

	params := schema.DefaultItemParameters()
	v1, err := store.PublishItemParameters(&params)
	require.NoError(t, err)
	assert.Equal(t, 1, v1)

	v2, err := store.PublishItemParameters(&params)
	require.NoError(t, err)
	assert.Equal(t, 2, v2)

	latest, err = store.LatestItemParameters()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 2, latest.Version)
	assert.Len(t, latest.Dimensions, len(params.Dimensions))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.ParamVersions)
	assert.Equal(t, 0, status.NormVersions)
	assert.False(t, status.LastPublished.IsZero())
}

func TestParamStoreNormTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "params.db")
	store, err := NewParamStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	latest, err := store.LatestNormTable()
	require.NoError(t, err)
	assert.Nil(t, latest)

	table := schema.DefaultNormTable()
	version, err := store.PublishNormTable(&table)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	latest, err = store.LatestNormTable()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 1, latest.Version)
	assert.Len(t, latest.Dimensions, len(table.Dimensions))
}

func TestParamStoreNoneBackend(t *testing.T) {
	store, err := NewParamStore(schema.NoneBackend, "")
	require.NoError(t, err)

	// Reads report nothing published
	latest, err := store.LatestItemParameters()
	require.NoError(t, err)
	assert.Nil(t, latest)

	// Writes fail loudly
	params := schema.DefaultItemParameters()
	_, err = store.PublishItemParameters(&params)
	assert.Error(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestResponseStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "responses.db")
	store, err := NewResponseStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

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
		{
			BlockID: "B002",
			Statements: [4]schema.Statement{
				{ID: "STR-01", Dimension: schema.DimStrategic, Loading: 0.68},
				{ID: "COM-01", Dimension: schema.DimCommunication, Loading: 0.58},
				{ID: "DSC-01", Dimension: schema.DimDiscipline, Loading: 0.66},
				{ID: "RES-01", Dimension: schema.DimResilience, Loading: 0.61},
			},
		},
	}
	require.NoError(t, store.SaveBlocks("design-a", blocks))

	loaded, err := store.LoadBlocks("design-a")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "B001", loaded[0].BlockID)
	assert.Equal(t, schema.DimDrive, loaded[0].Statements[0].Dimension)
	assert.Equal(t, "B002", loaded[1].BlockID)

	// Unknown design id loads nothing
	missing, err := store.LoadBlocks("design-z")
	require.NoError(t, err)
	assert.Empty(t, missing)

	sets := []schema.ResponseSet{
		{
			RespondentID: "r-002",
			Responses: []schema.ForcedChoiceResponse{
				{BlockID: "B001", MostLikeIndex: 3, LeastLikeIndex: 1, ResponseTimeMs: 4200},
			},
		},
		{
			RespondentID: "r-001",
			Responses: []schema.ForcedChoiceResponse{
				{BlockID: "B001", MostLikeIndex: 0, LeastLikeIndex: 2, ResponseTimeMs: 3100},
				{BlockID: "B002", MostLikeIndex: 1, LeastLikeIndex: 3, ResponseTimeMs: 2800},
			},
		},
	}
	for i := range sets {
		require.NoError(t, store.SaveResponses(&sets[i]))
	}

	corpus, err := store.LoadCorpus()
	require.NoError(t, err)
	require.Len(t, corpus, 2)

	// Respondents come back in stable id order, responses in submission order
	assert.Equal(t, "r-001", corpus[0].RespondentID)
	require.Len(t, corpus[0].Responses, 2)
	assert.Equal(t, "B001", corpus[0].Responses[0].BlockID)
	assert.Equal(t, "B002", corpus[0].Responses[1].BlockID)
	assert.Equal(t, "r-002", corpus[1].RespondentID)
	assert.Equal(t, int64(4200), corpus[1].Responses[0].ResponseTimeMs)
}

func TestInitStores(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		dir := t.TempDir()
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(
			schema.SQLiteBackend, filepath.Join(dir, "params.db"),
			schema.SQLiteBackend, filepath.Join(dir, "responses.db"),
		)
		require.NoError(t, err)
		assert.NotNil(t, Manager.GetParamStore())
		assert.NotNil(t, Manager.GetResponseStore())

		CloseStores()
	})

	t.Run("idempotent setup", func(t *testing.T) {
		dir := t.TempDir()
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		connStr := filepath.Join(dir, "params.db")
		require.NoError(t, InitStores(schema.SQLiteBackend, connStr, "", ""))
		require.NoError(t, InitStores(schema.SQLiteBackend, connStr, "", ""))

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
	})

	t.Run("skipped backends", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		require.NoError(t, InitStores("", "", "", ""))
		assert.Nil(t, Manager.GetParamStore())
		assert.Nil(t, Manager.GetResponseStore())

		CloseStores()
	})
}

func TestMigrateStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Up to latest, then all the way back down
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))

	// Migrations are not supported without a backend
	assert.Error(t, MigrateStore(schema.NoneBackend, "", -1))
}
