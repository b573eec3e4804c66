package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/schema"
)

// WriteResponseResults outputs a response corpus, dispatching based on the
// output format configured. The table mode is intentionally absent: a corpus
// is machine-facing data, so text falls back to JSON.
func WriteResponseResults(corpus []schema.ResponseSet, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForResponses(w, corpus)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, corpus)
		}, "Wrote JSON")
	}
}

// writeCSVResultsForResponses writes the corpus in CSV format, one row per
// respondent-block pair.
func writeCSVResultsForResponses(w io.Writer, corpus []schema.ResponseSet) error {
	header := []string{
		"respondent",
		"block",
		"most_like_index",
		"least_like_index",
		"response_time_ms",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i := range corpus {
			set := &corpus[i]
			for _, r := range set.Responses {
				rec := []string{
					set.RespondentID,
					r.BlockID,
					strconv.Itoa(r.MostLikeIndex),
					strconv.Itoa(r.LeastLikeIndex),
					fmt.Sprintf("%d", r.ResponseTimeMs),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
