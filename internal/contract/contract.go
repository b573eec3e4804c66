// Package contract provides interfaces and shared utilities for the talentmap
// CLI's internal architecture.
package contract

import (
	"github.com/talentmap/talentmap/schema"
)

// StoreManager defines the interface for reaching the parameter and response
// stores. This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetParamStore() ParamStore
	GetResponseStore() ResponseStore
}

// ParamStore persists versioned item-parameter sets and norm tables. Publish
// operations are single-writer and atomic: readers either see the previous
// version or the fully-written new one, never a partial write.
type ParamStore interface {
	PublishItemParameters(params *schema.ItemParameters) (version int, err error)
	LatestItemParameters() (*schema.ItemParameters, error)
	PublishNormTable(table *schema.NormTable) (version int, err error)
	LatestNormTable() (*schema.NormTable, error)
	GetStatus() (schema.StoreStatus, error)
	Close() error
}

// ResponseStore persists the response corpus used for batch calibration,
// along with the block designs the responses refer to.
type ResponseStore interface {
	SaveBlocks(designID string, blocks []schema.QuartetBlock) error
	LoadBlocks(designID string) ([]schema.QuartetBlock, error)
	SaveResponses(set *schema.ResponseSet) error
	LoadCorpus() ([]schema.ResponseSet, error)
	Close() error
}
