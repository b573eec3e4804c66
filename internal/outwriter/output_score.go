package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScoreResults outputs respondent score reports, dispatching based on the
// output format configured.
func WriteScoreResults(results []schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForScores(w, results, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			for i := range results {
				if err := writeScoreTable(&results[i], cfg, fmtFloat, duration, w); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote table")
	}
}

// writeScoreTable generates and writes the human-readable report for one respondent.
func writeScoreTable(result *schema.ScoreResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Talent profile for %s\n", result.RespondentID); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Dimension", "Pct", "T", "Stanine", "Sten", "Tier", "Confidence"}
	if cfg.Detail {
		headers = append(headers, "Theta", "SE", "Label")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows, one per dimension in canonical order
	var data [][]string
	for _, dim := range schema.AllDimensions {
		ns, ok := result.NormScores[dim]
		if !ok {
			continue
		}
		tier := result.Tiers[dim]
		tierLabel := contract.GetPlainTierLabel(tier.Tier)
		if cfg.UseColors {
			tierLabel = contract.GetColorTierLabel(tier.Tier)
		}
		row := []string{
			dim.Name(),
			fmtFloat(ns.Percentile),
			fmtFloat(ns.TScore),
			strconv.Itoa(ns.Stanine),
			strconv.Itoa(ns.Sten),
			tierLabel,
			tier.Confidence,
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(result.Theta.Theta[dim]), // Latent estimate
				fmtFloat(result.Theta.SE[dim]),    // Standard error
				ns.Label,                          // Interpretation label
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary footer
	archetype := result.Archetype.Primary
	if result.Archetype.Secondary != "" {
		archetype = fmt.Sprintf("%s / %s", archetype, result.Archetype.Secondary)
	}
	if _, err := fmt.Fprintf(writer, "Archetype: %s (confidence %s)\n", archetype, fmtFloat(result.Archetype.Confidence)); err != nil {
		return err
	}
	for _, syn := range result.Archetype.Synergies {
		if _, err := fmt.Fprintf(writer, "Synergy: %s - %s\n", syn.Name, syn.Note); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Profile: %s (%d dominant, %d supporting, %d developing)\n",
		result.Summary.ProfileType, result.Summary.Dominant, result.Summary.Supporting, result.Summary.Developing); err != nil {
		return err
	}
	if result.Summary.Anomalous {
		if _, err := fmt.Fprintln(writer, "Note: tier distribution is outside expected population ranges"); err != nil {
			return err
		}
	}
	if !result.Theta.Converged {
		if _, err := fmt.Fprintln(writer, "Note: estimation did not converge; scores may be unstable"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Scored in %v from %d blocks (%s parameters, norm table v%d)\n",
		duration, result.Theta.BlocksUsed, result.Theta.ParamSource, result.NormVersion); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForScores writes score reports in CSV format, one row per
// respondent-dimension pair.
func writeCSVResultsForScores(w io.Writer, results []schema.ScoreResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"respondent",
		"dimension",
		"theta",
		"se",
		"percentile",
		"t_score",
		"stanine",
		"sten",
		"tier",
		"confidence",
		"label",
		"archetype",
		"param_source",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i := range results {
			r := &results[i]
			for _, dim := range schema.AllDimensions {
				ns, ok := r.NormScores[dim]
				if !ok {
					continue
				}
				tier := r.Tiers[dim]
				rec := []string{
					r.RespondentID,
					dim.Name(),
					fmtFloat(r.Theta.Theta[dim]),
					fmtFloat(r.Theta.SE[dim]),
					fmtFloat(ns.Percentile),
					fmtFloat(ns.TScore),
					fmt.Sprintf(intFmt, ns.Stanine),
					fmt.Sprintf(intFmt, ns.Sten),
					contract.GetPlainTierLabel(tier.Tier),
					tier.Confidence,
					ns.Label,
					r.Archetype.Primary,
					string(r.Theta.ParamSource),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
