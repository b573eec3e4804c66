// Package paramstore persists versioned item parameters, norm tables and the
// response corpus across SQLite, MySQL and PostgreSQL backends.
package paramstore

import (
	"fmt"
	"sync"

	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/schema"
)

// StoreManagerImpl manages the parameter and response store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	params       contract.ParamStore
	responses    contract.ResponseStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetParamStore returns the parameter store.
func (mgr *StoreManagerImpl) GetParamStore() contract.ParamStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.params
}

// GetResponseStore returns the response store.
func (mgr *StoreManagerImpl) GetResponseStore() contract.ResponseStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.responses
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager. Either backend can be
// empty to skip that store. This function body runs exactly once, even with
// concurrent calls.
func InitStores(paramBackend schema.DatabaseBackend, paramConnStr string, responseBackend schema.DatabaseBackend, responseConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var paramStore contract.ParamStore
		var err error
		if paramBackend != "" {
			paramStore, err = NewParamStore(paramBackend, paramConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize parameter store: %w", err)
				return
			}
		}

		var responseStore contract.ResponseStore
		if responseBackend != "" {
			responseStore, err = NewResponseStore(responseBackend, responseConnStr)
			if err != nil {
				if paramStore != nil {
					_ = paramStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize response store: %w", err)
				return
			}
		}

		Manager.params = paramStore
		Manager.responses = responseStore
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.params != nil {
			_ = Manager.params.Close()
		}
		if Manager.responses != nil {
			_ = Manager.responses.Close()
		}
	})
}
