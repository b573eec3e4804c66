package core

import (
	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/internal/paramstore"
	"github.com/talentmap/talentmap/schema"
)

// resolveItemParameters returns the latest published parameter set, falling
// back to the shipped defaults when no store is configured, the store is
// empty, or the read fails. The fallback is explicit: the returned set carries
// ParamSource default so reports can say which parameters scored a respondent.
func resolveItemParameters(mgr contract.StoreManager) *schema.ItemParameters {
	if store := mgr.GetParamStore(); store != nil {
		params, err := store.LatestItemParameters()
		if err != nil {
			contract.LogWarn("reading item parameters; using defaults", err)
		} else if params != nil {
			return params
		}
	}
	defaults := schema.DefaultItemParameters()
	return &defaults
}

// resolveNormTable returns the norm table to score against: an explicit file
// wins, then the latest published table, then the shipped literature defaults.
func resolveNormTable(mgr contract.StoreManager, fromFile *schema.NormTable) *schema.NormTable {
	if fromFile != nil {
		return fromFile
	}
	if store := mgr.GetParamStore(); store != nil {
		table, err := store.LatestNormTable()
		if err != nil {
			contract.LogWarn("reading norm table; using defaults", err)
		} else if table != nil {
			return table
		}
	}
	defaults := schema.DefaultNormTable()
	return &defaults
}

// storeManager returns the process-wide store manager. Indirection keeps core
// testable against mocks.
var storeManager = func() contract.StoreManager {
	return paramstore.Manager
}
