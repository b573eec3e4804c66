// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints respondent score reports using the configured output format.
func (ow *OutWriter) WriteScores(results []schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	return WriteScoreResults(results, cfg, duration)
}

// WriteBlocks prints a block design using the configured output format.
func (ow *OutWriter) WriteBlocks(blocks []schema.QuartetBlock, cfg *contract.Config) error {
	return WriteBlockResults(blocks, cfg)
}

// WriteCalibration prints calibration output using the configured output format.
func (ow *OutWriter) WriteCalibration(result *schema.CalibrationResult, cfg *contract.Config, duration time.Duration) error {
	return WriteCalibrationResults(result, cfg, duration)
}

// WriteNorms prints a norm table using the configured output format.
func (ow *OutWriter) WriteNorms(table *schema.NormTable, cfg *contract.Config) error {
	return WriteNormResults(table, cfg)
}
