package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/internal/paramstore"
	"github.com/talentmap/talentmap/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("param-backend"))
	connStr := viper.GetString("param-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the parameter store only (no response tracking for store commands)
	if err := paramstore.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg.ParamBackend = backend
	cfg.ParamDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on parameter store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by scoring commands. This avoids corpus file
// handling and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the parameter and norm store",
	Long: `Manage the versioned store that holds published item parameters and
norm tables.

Scoring always reads the latest published version; publishing a new version
never disturbs in-flight reads.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status  - Show version counts and connection info
  migrate - Run schema migrations

Examples:
  # Check store status
  talentmap store status

  # Bring the schema up to the latest version
  talentmap store migrate`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store version counts and connection details",
	Long: `Show detailed information about the parameter store.

Displays:
- Backend type and connection status
- Published item parameter version count
- Published norm table version count
- Last publication timestamp

Examples:
  # Check store status
  talentmap store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := paramstore.Manager.GetParamStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		paramstore.PrintStoreStatus(status)
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	Long: `Apply or roll back the store's database schema migrations.

Use --target-version to control the migration target:
  -1 (default) migrates to the latest version
   0 rolls back all migrations
   N migrates to the specific version N

Examples:
  # Migrate to the latest schema
  talentmap store migrate

  # Roll everything back
  talentmap store migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations open their own connection; only config loading is needed.
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.DatabaseBackend(viper.GetString("param-backend"))
		connStr := viper.GetString("param-db-connect")
		targetVersion := viper.GetInt("target-version")
		if err := paramstore.MigrateStore(backend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
