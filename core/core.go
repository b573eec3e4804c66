// Package core has core logic for block design, calibration, scoring and
// normative reporting.
package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/internal/corpusio"
	"github.com/talentmap/talentmap/internal/outwriter"
	"github.com/talentmap/talentmap/internal/parquet"
	"github.com/talentmap/talentmap/schema"
)

// ExecutorFunc defines the function signature for executing different assessment modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// GetBlockDesignResults designs a quartet block set from the statement pool
// and persists it to the response store when one is wired.
func GetBlockDesignResults(ctx context.Context, cfg *contract.Config) ([]schema.QuartetBlock, error) {
	logHeader(ctx, cfg, "🧩", fmt.Sprintf("Designing %d blocks with seed %d", cfg.Blocks, cfg.Seed))

	pool, err := corpusio.LoadStatementPool(cfg.PoolFile)
	if err != nil {
		return nil, err
	}
	blocks, err := CreateBlocks(pool, cfg.Blocks, cfg.Seed)
	if err != nil {
		return nil, err
	}

	// Persist the design when a response store is wired, so later score runs
	// can reference it by seed.
	if store := storeManager().GetResponseStore(); store != nil {
		if err := store.SaveBlocks(designID(cfg.Seed), blocks); err != nil {
			contract.LogWarn("saving block design", err)
		}
	}
	return blocks, nil
}

// ExecuteDesignBlocks designs a quartet block set from the statement pool and
// prints it. It serves as the main entry point for the 'blocks' mode.
func ExecuteDesignBlocks(ctx context.Context, cfg *contract.Config) error {
	blocks, err := GetBlockDesignResults(ctx, cfg)
	if err != nil {
		return err
	}
	writer := outwriter.NewOutWriter()
	return writer.WriteBlocks(blocks, cfg)
}

// GetScoreResults scores a response corpus and returns the per-respondent
// talent reports along with the elapsed scoring time.
func GetScoreResults(ctx context.Context, cfg *contract.Config) ([]schema.ScoreResult, time.Duration, error) {
	start := time.Now()

	blocks, err := loadBlocksForRun(cfg)
	if err != nil {
		return nil, 0, err
	}
	corpus, err := loadCorpus(cfg)
	if err != nil {
		return nil, 0, err
	}

	mgr := storeManager()
	params := resolveItemParameters(mgr)
	normsFromFile, err := loadNormsFile(cfg)
	if err != nil {
		return nil, 0, err
	}
	norms := resolveNormTable(mgr, normsFromFile)

	logHeader(ctx, cfg, "🎯", fmt.Sprintf("Scoring %d respondents against %d blocks (%s parameters)",
		len(corpus), len(blocks), params.Source))

	results, err := scoreCorpus(corpus, blocks, params, norms, cfg)
	if err != nil {
		return nil, 0, err
	}
	return results, time.Since(start), nil
}

// scoreCorpus runs the scoring pipeline over every respondent in the corpus.
func scoreCorpus(corpus []schema.ResponseSet, blocks []schema.QuartetBlock, params *schema.ItemParameters, norms *schema.NormTable, cfg *contract.Config) ([]schema.ScoreResult, error) {
	index := schema.BlockIndex(blocks)
	opts := EstimateOptions{MaxIter: cfg.MaxIter, Tol: cfg.Tol, UsePrior: true}

	results := make([]schema.ScoreResult, 0, len(corpus))
	for i := range corpus {
		result, err := ScoreRespondent(&corpus[i], index, params, norms, opts)
		if err != nil {
			return nil, fmt.Errorf("scoring respondent %s: %w", corpus[i].RespondentID, err)
		}
		if result.Theta.BlocksUsed < MinRecommendedBlocks {
			contract.LogWarn(fmt.Sprintf("respondent %s answered %d blocks; standard errors will be large",
				corpus[i].RespondentID, result.Theta.BlocksUsed), nil)
		}
		results = append(results, *result)
	}
	return results, nil
}

// ExecuteScore scores a response corpus and prints per-respondent talent
// reports. It serves as the main entry point for the 'score' mode.
func ExecuteScore(ctx context.Context, cfg *contract.Config) error {
	results, duration, err := GetScoreResults(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return errors.New("parquet output requires --output-file")
		}
		if err := parquet.WriteScoresParquet(results, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	}
	writer := outwriter.NewOutWriter()
	return writer.WriteScores(results, cfg, duration)
}

// ExecuteCalibrate fits item parameters from a response corpus, optionally
// publishing them to the parameter store. It serves as the main entry point
// for the 'calibrate' mode.
func ExecuteCalibrate(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	blocks, err := loadBlocksForRun(cfg)
	if err != nil {
		return err
	}
	corpus, err := loadCorpus(cfg)
	if err != nil {
		return err
	}

	logHeader(ctx, cfg, "📐", fmt.Sprintf("Calibrating from %d respondents over %d blocks", len(corpus), len(blocks)))

	result, err := Calibrate(corpus, blocks, CalibrateOptions{MaxIter: cfg.MaxIter, Tol: cfg.Tol})
	if err != nil {
		return err
	}

	if cfg.Publish {
		if !result.Diagnostics.Converged {
			return errors.New("refusing to publish parameters from a non-converged calibration")
		}
		store := storeManager().GetParamStore()
		if store == nil {
			return errors.New("publish requested but no parameter store is configured")
		}
		version, err := store.PublishItemParameters(&result.Parameters)
		if err != nil {
			return fmt.Errorf("publishing parameters: %w", err)
		}
		fmt.Fprintf(os.Stderr, "📦 Published parameter version %d\n", version)
	}

	duration := time.Since(start)
	writer := outwriter.NewOutWriter()
	return writer.WriteCalibration(result, cfg, duration)
}

// ExecuteSimulate generates a synthetic response corpus with known latent
// traits. It serves as the main entry point for the 'simulate' mode.
func ExecuteSimulate(ctx context.Context, cfg *contract.Config) error {
	blocks, err := loadBlocksForRun(cfg)
	if err != nil {
		return err
	}
	params := resolveItemParameters(storeManager())

	logHeader(ctx, cfg, "🎲", fmt.Sprintf("Simulating %d respondents with seed %d", cfg.Respondents, cfg.Seed))

	rng := rand.New(rand.NewSource(cfg.Seed))
	sim := SimulateCorpus(blocks, params, cfg.Respondents, rng)

	// Persist the corpus when a response store is wired, so calibrate can run
	// against it without re-reading files.
	if store := storeManager().GetResponseStore(); store != nil {
		for i := range sim.Responses {
			if err := store.SaveResponses(&sim.Responses[i]); err != nil {
				contract.LogWarn("saving simulated responses", err)
				break
			}
		}
	}

	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return errors.New("parquet output requires --output-file")
		}
		if err := parquet.WriteResponsesParquet(sim.Responses, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	}
	return outwriter.WriteResponseResults(sim.Responses, cfg)
}

// ScoreParsedCorpus scores an already-parsed corpus with the effective
// parameters and norms. A nil block design falls back to the configured one.
// This is the entry point for callers that carry responses in memory rather
// than in files, such as the MCP server.
func ScoreParsedCorpus(ctx context.Context, cfg *contract.Config, corpus []schema.ResponseSet, blocks []schema.QuartetBlock) ([]schema.ScoreResult, error) {
	if len(corpus) == 0 {
		return nil, errors.New("no responses to score")
	}
	if blocks == nil {
		var err error
		blocks, err = loadBlocksForRun(cfg)
		if err != nil {
			return nil, err
		}
	}

	mgr := storeManager()
	params := resolveItemParameters(mgr)
	norms := resolveNormTable(mgr, nil)

	logHeader(ctx, cfg, "🎯", fmt.Sprintf("Scoring %d respondents against %d blocks (%s parameters)",
		len(corpus), len(blocks), params.Source))

	return scoreCorpus(corpus, blocks, params, norms, cfg)
}

// GetNormReportResults returns the norm table scoring currently reports
// against: the latest published table, or the shipped literature defaults.
func GetNormReportResults() *schema.NormTable {
	return resolveNormTable(storeManager(), nil)
}

// ExecuteNorms derives or publishes a norm table. With a norms file the table
// is taken verbatim; with a responses file the table is derived from the
// corpus theta distribution; otherwise the currently effective table is shown.
func ExecuteNorms(ctx context.Context, cfg *contract.Config) error {
	mgr := storeManager()

	var table *schema.NormTable
	switch {
	case cfg.NormsFile != "":
		loaded, err := corpusio.LoadNormTable(cfg.NormsFile)
		if err != nil {
			return err
		}
		table = &loaded

	case cfg.ResponsesFile != "":
		blocks, err := loadBlocksForRun(cfg)
		if err != nil {
			return err
		}
		corpus, err := loadCorpus(cfg)
		if err != nil {
			return err
		}
		logHeader(ctx, cfg, "📊", fmt.Sprintf("Deriving norms from %d respondents", len(corpus)))
		derived, err := DeriveNorms(corpus, blocks, resolveItemParameters(mgr), EstimateOptions{MaxIter: cfg.MaxIter, Tol: cfg.Tol, UsePrior: true})
		if err != nil {
			return err
		}
		table = derived

	default:
		table = GetNormReportResults()
	}

	if cfg.Publish {
		store := mgr.GetParamStore()
		if store == nil {
			return errors.New("publish requested but no parameter store is configured")
		}
		version, err := store.PublishNormTable(table)
		if err != nil {
			return fmt.Errorf("publishing norm table: %w", err)
		}
		fmt.Fprintf(os.Stderr, "📦 Published norm table version %d\n", version)
	}

	writer := outwriter.NewOutWriter()
	return writer.WriteNorms(table, cfg)
}

// loadBlocksForRun returns the block design to run against: an explicit file
// wins, then the stored design for this seed, then a fresh deterministic
// design from the pool and seed.
func loadBlocksForRun(cfg *contract.Config) ([]schema.QuartetBlock, error) {
	if cfg.BlocksFile != "" {
		return corpusio.LoadBlocks(cfg.BlocksFile)
	}
	if store := storeManager().GetResponseStore(); store != nil {
		blocks, err := store.LoadBlocks(designID(cfg.Seed))
		if err != nil {
			contract.LogWarn("loading stored block design", err)
		} else if len(blocks) > 0 {
			return blocks, nil
		}
	}
	pool, err := corpusio.LoadStatementPool(cfg.PoolFile)
	if err != nil {
		return nil, err
	}
	return CreateBlocks(pool, cfg.Blocks, cfg.Seed)
}

// loadCorpus returns the response corpus: an explicit file wins, then the
// response store.
func loadCorpus(cfg *contract.Config) ([]schema.ResponseSet, error) {
	if cfg.ResponsesFile != "" {
		return corpusio.LoadResponses(cfg.ResponsesFile)
	}
	if store := storeManager().GetResponseStore(); store != nil {
		corpus, err := store.LoadCorpus()
		if err != nil {
			return nil, err
		}
		if len(corpus) > 0 {
			return corpus, nil
		}
	}
	return nil, errors.New("no responses available: pass --responses or store a corpus first")
}

// loadNormsFile loads the norm table file when one was given.
func loadNormsFile(cfg *contract.Config) (*schema.NormTable, error) {
	if cfg.NormsFile == "" {
		return nil, nil
	}
	table, err := corpusio.LoadNormTable(cfg.NormsFile)
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// designID names a stored block design by its seed.
func designID(seed int64) string {
	return fmt.Sprintf("seed-%d", seed)
}

// logHeader prints a status line to stderr unless suppressed (MCP stdio mode
// must keep stdout/stderr clean of decorations).
func logHeader(ctx context.Context, cfg *contract.Config, emoji, msg string) {
	if ShouldSuppressHeader(ctx) {
		return
	}
	if cfg.UseEmojis {
		fmt.Fprintf(os.Stderr, "%s %s\n", emoji, msg)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", msg)
	}
}
