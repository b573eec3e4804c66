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

// WriteCalibrationResults outputs calibration parameters and diagnostics,
// dispatching based on the output format configured.
func WriteCalibrationResults(result *schema.CalibrationResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCalibration(w, result, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCalibrationTable(result, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeCalibrationTable generates and writes the human-readable calibration report.
func writeCalibrationTable(result *schema.CalibrationResult, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Dimension", "Disc", "Offset", "Obs", "Alpha", "Clamped"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, dim := range schema.AllDimensions {
		dp, ok := result.Parameters.Dimensions[dim]
		if !ok {
			continue
		}
		data = append(data, []string{
			dim.Name(),
			fmtFloat(dp.Discrimination),
			fmtFloat(dp.Offset),
			strconv.Itoa(dp.Observations),
			fmtFloat(result.Diagnostics.Consistency[dim]),
			strconv.FormatBool(dp.Clamped),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	d := result.Diagnostics
	if _, err := fmt.Fprintf(writer, "Mean discrimination: %s, mean offset: %s\n",
		fmtFloat(d.MeanDiscrimination), fmtFloat(d.MeanOffset)); err != nil {
		return err
	}
	status := "converged"
	if !d.Converged {
		status = "did not converge"
	}
	_, err := fmt.Fprintf(writer, "Calibration %s after %d iterations over %d respondents in %v (log-likelihood %s)\n",
		status, d.Iterations, result.Parameters.Respondents, duration, fmtFloat(d.LogLikelihood))
	return err
}

// writeCSVResultsForCalibration writes calibration output in CSV format.
func writeCSVResultsForCalibration(w io.Writer, result *schema.CalibrationResult, fmtFloat func(float64) string) error {
	header := []string{
		"dimension",
		"discrimination",
		"offset",
		"observations",
		"alpha",
		"clamped",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, dim := range schema.AllDimensions {
			dp, ok := result.Parameters.Dimensions[dim]
			if !ok {
				continue
			}
			rec := []string{
				dim.Name(),
				fmtFloat(dp.Discrimination),
				fmtFloat(dp.Offset),
				strconv.Itoa(dp.Observations),
				fmtFloat(result.Diagnostics.Consistency[dim]),
				strconv.FormatBool(dp.Clamped),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteNormResults outputs a norm table, dispatching based on the output
// format configured.
func WriteNormResults(normTable *schema.NormTable, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, normTable)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"dimension", "mean", "sd", "sample_size"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, dim := range schema.AllDimensions {
					np, ok := normTable.Dimensions[dim]
					if !ok {
						continue
					}
					rec := []string{dim.Name(), fmtFloat(np.Mean), fmtFloat(np.SD), strconv.Itoa(np.SampleSize)}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNormTableOutput(normTable, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeNormTableOutput generates and writes the human-readable norm listing.
func writeNormTableOutput(normTable *schema.NormTable, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Dimension", "Mean", "SD", "N"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, dim := range schema.AllDimensions {
		np, ok := normTable.Dimensions[dim]
		if !ok {
			continue
		}
		data = append(data, []string{dim.Name(), fmtFloat(np.Mean), fmtFloat(np.SD), strconv.Itoa(np.SampleSize)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Norm table version %d\n", normTable.Version)
	return err
}
