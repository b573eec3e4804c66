// Package cmd defines the command-line interface for talentmap.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(normsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("blocks", "b", contract.DefaultBlocks, "Number of quartet blocks to design")
	rootCmd.PersistentFlags().Int64P("seed", "s", contract.DefaultSeed, "RNG seed for reproducible designs and simulations")
	rootCmd.PersistentFlags().Int("max-iter", contract.DefaultMaxIter, "Iteration cap for estimation and calibration loops")
	rootCmd.PersistentFlags().Float64("tol", contract.DefaultTol, "Convergence tolerance")
	rootCmd.PersistentFlags().String("pool-file", "", "Statement catalogue file (JSON); empty = shipped pool")
	rootCmd.PersistentFlags().String("blocks-file", "", "Block design file (JSON); empty = design from pool and seed")
	rootCmd.PersistentFlags().StringP("responses", "r", "", "Respondent answers / corpus file (JSON)")
	rootCmd.PersistentFlags().String("norms-file", "", "Norm table file (JSON)")
	rootCmd.PersistentFlags().Bool("publish", false, "Publish calibrate/norms output to the parameter store")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-dimension metadata (theta, standard error, label)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("param-backend", string(schema.SQLiteBackend), "Parameter store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("param-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("response-backend", "", "Response store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("response-db-connect", "", "Database connection string for the response store (must differ from param-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in status output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of simulateCmd to Viper
	simulateCmd.Flags().IntP("respondents", "n", contract.DefaultRespondents, "Number of synthetic respondents to generate")
	if err := viper.BindPFlags(simulateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding simulate flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
