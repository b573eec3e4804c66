package contract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/talentmap/talentmap/schema"
)

// Default values for configuration.
const (
	DefaultBlocks      = 20
	DefaultSeed        = 1
	DefaultRespondents = 100
	DefaultMaxIter     = 50
	DefaultTol         = 0.001
	DefaultPrecision   = 1
	MaxBlocks          = 500
	MaxPrecision       = 2
)

// Config holds the runtime configuration for assessment operations.
// This struct remains the "final, validated" config.
type Config struct {
	Blocks      int     // Number of quartet blocks to design
	Seed        int64   // RNG seed for reproducible designs and simulations
	MaxIter     int     // Iteration cap for estimation/calibration loops
	Tol         float64 // Convergence tolerance
	Respondents int     // Synthetic respondent count for simulate

	PoolFile      string // Optional statement catalogue file (JSON); empty = shipped pool
	BlocksFile    string // Optional block design file (JSON); empty = design from pool+seed
	ResponsesFile string // Respondent answers / corpus file (JSON)
	NormsFile     string // Optional norm table file (JSON) for publishing

	Publish bool // Publish calibration/norm output to the parameter store

	Detail    bool // Include theta and SE columns in reports
	Precision int  // Decimal precision for numeric columns (1 or 2)

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	ParamBackend      schema.DatabaseBackend
	ParamDBConnect    string // Please use env var as this is plaintext
	ResponseBackend   schema.DatabaseBackend
	ResponseDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a copy of the config for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Blocks      int     `mapstructure:"blocks"`
	Seed        int64   `mapstructure:"seed"`
	MaxIter     int     `mapstructure:"max-iter"`
	Tol         float64 `mapstructure:"tol"`
	Respondents int     `mapstructure:"respondents"`

	PoolFile      string `mapstructure:"pool-file"`
	BlocksFile    string `mapstructure:"blocks-file"`
	ResponsesFile string `mapstructure:"responses"`
	NormsFile     string `mapstructure:"norms-file"`

	Publish bool `mapstructure:"publish"`

	Detail    bool   `mapstructure:"detail"`
	Precision int    `mapstructure:"precision"`
	Output    string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width     int    `mapstructure:"width"`

	ParamBackend      string `mapstructure:"param-backend"`
	ParamDBConnect    string `mapstructure:"param-db-connect"`
	ResponseBackend   string `mapstructure:"response-backend"`
	ResponseDBConnect string `mapstructure:"response-db-connect"`

	Emoji string `mapstructure:"emoji"`
	Color string `mapstructure:"color"`
}

// ProcessAndValidate turns raw input into a validated Config, failing fast on
// malformed values instead of surfacing them deep inside scoring.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Blocks < 1 || input.Blocks > MaxBlocks {
		return fmt.Errorf("blocks must be between 1 and %d, got %d", MaxBlocks, input.Blocks)
	}
	cfg.Blocks = input.Blocks
	cfg.Seed = input.Seed

	if input.MaxIter < 1 {
		return fmt.Errorf("max-iter must be at least 1, got %d", input.MaxIter)
	}
	cfg.MaxIter = input.MaxIter

	if input.Tol <= 0 {
		return fmt.Errorf("tol must be positive, got %g", input.Tol)
	}
	cfg.Tol = input.Tol

	if input.Respondents < 1 {
		return fmt.Errorf("respondents must be at least 1, got %d", input.Respondents)
	}
	cfg.Respondents = input.Respondents

	cfg.PoolFile = input.PoolFile
	cfg.BlocksFile = input.BlocksFile
	cfg.ResponsesFile = input.ResponsesFile
	cfg.NormsFile = input.NormsFile
	cfg.Publish = input.Publish
	cfg.Detail = input.Detail
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	precision := input.Precision
	if precision < 1 {
		precision = 1
	}
	if precision > MaxPrecision {
		precision = MaxPrecision
	}
	cfg.Precision = precision

	output := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q (valid: text, csv, json, parquet)", input.Output)
	}
	cfg.Output = output

	paramBackend := schema.DatabaseBackend(strings.ToLower(input.ParamBackend))
	if _, ok := schema.ValidDatabaseBackends[paramBackend]; !ok {
		return fmt.Errorf("invalid param backend %q (valid: sqlite, mysql, postgresql, none)", input.ParamBackend)
	}
	if err := ValidateDatabaseConnectionString(paramBackend, input.ParamDBConnect); err != nil {
		return err
	}
	cfg.ParamBackend = paramBackend
	cfg.ParamDBConnect = input.ParamDBConnect

	responseBackend := schema.DatabaseBackend(strings.ToLower(input.ResponseBackend))
	if input.ResponseBackend == "" {
		responseBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[responseBackend]; !ok {
		return fmt.Errorf("invalid response backend %q (valid: sqlite, mysql, postgresql, none)", input.ResponseBackend)
	}
	if err := ValidateDatabaseConnectionString(responseBackend, input.ResponseDBConnect); err != nil {
		return err
	}
	cfg.ResponseBackend = responseBackend
	cfg.ResponseDBConnect = input.ResponseDBConnect

	cfg.UseEmojis = parseBoolFlag(input.Emoji, true)
	cfg.UseColors = parseBoolFlag(input.Color, true)
	return nil
}

// ValidateDatabaseConnectionString checks that networked backends got a
// connection string. SQLite and none work without one.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if strings.TrimSpace(connStr) == "" {
			return fmt.Errorf("%s backend requires a connection string", backend)
		}
	}
	return nil
}

// parseBoolFlag accepts yes/no/true/false/1/0 with a default for anything
// unrecognized.
func parseBoolFlag(value string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y":
		return true
	case "no", "n":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return def
}
