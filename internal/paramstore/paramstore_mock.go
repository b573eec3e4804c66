package paramstore

import (
	"github.com/stretchr/testify/mock"
	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetParamStore implements the StoreManager interface.
func (m *MockStoreManager) GetParamStore() contract.ParamStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ParamStore)
	return store
}

// GetResponseStore implements the StoreManager interface.
func (m *MockStoreManager) GetResponseStore() contract.ResponseStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ResponseStore)
	return store
}

// MockParamStore is a mock implementation of ParamStore for testing.
type MockParamStore struct {
	mock.Mock
}

var _ contract.ParamStore = &MockParamStore{} // Compile-time check

// PublishItemParameters implements the ParamStore interface.
func (m *MockParamStore) PublishItemParameters(params *schema.ItemParameters) (int, error) {
	args := m.Called(params)
	return args.Int(0), args.Error(1)
}

// LatestItemParameters implements the ParamStore interface.
func (m *MockParamStore) LatestItemParameters() (*schema.ItemParameters, error) {
	args := m.Called()
	params, _ := args.Get(0).(*schema.ItemParameters)
	return params, args.Error(1)
}

// PublishNormTable implements the ParamStore interface.
func (m *MockParamStore) PublishNormTable(table *schema.NormTable) (int, error) {
	args := m.Called(table)
	return args.Int(0), args.Error(1)
}

// LatestNormTable implements the ParamStore interface.
func (m *MockParamStore) LatestNormTable() (*schema.NormTable, error) {
	args := m.Called()
	table, _ := args.Get(0).(*schema.NormTable)
	return table, args.Error(1)
}

// GetStatus implements the ParamStore interface.
func (m *MockParamStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the ParamStore interface.
func (m *MockParamStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockResponseStore is a mock implementation of ResponseStore for testing.
type MockResponseStore struct {
	mock.Mock
}

var _ contract.ResponseStore = &MockResponseStore{} // Compile-time check

// SaveBlocks implements the ResponseStore interface.
func (m *MockResponseStore) SaveBlocks(designID string, blocks []schema.QuartetBlock) error {
	args := m.Called(designID, blocks)
	return args.Error(0)
}

// LoadBlocks implements the ResponseStore interface.
func (m *MockResponseStore) LoadBlocks(designID string) ([]schema.QuartetBlock, error) {
	args := m.Called(designID)
	blocks, _ := args.Get(0).([]schema.QuartetBlock)
	return blocks, args.Error(1)
}

// SaveResponses implements the ResponseStore interface.
func (m *MockResponseStore) SaveResponses(set *schema.ResponseSet) error {
	args := m.Called(set)
	return args.Error(0)
}

// LoadCorpus implements the ResponseStore interface.
func (m *MockResponseStore) LoadCorpus() ([]schema.ResponseSet, error) {
	args := m.Called()
	corpus, _ := args.Get(0).([]schema.ResponseSet)
	return corpus, args.Error(1)
}

// Close implements the ResponseStore interface.
func (m *MockResponseStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
