package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/talentmap/talentmap/internal/contract"
	"github.com/talentmap/talentmap/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBlockResults outputs a block design, dispatching based on the output
// format configured.
func WriteBlockResults(blocks []schema.QuartetBlock, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, blocks)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForBlocks(w, blocks, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBlockTable(blocks, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeBlockTable generates and writes the human-readable block listing.
func writeBlockTable(blocks []schema.QuartetBlock, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Block", "Pos", "ID", "Dimension", "Statement"}
	if cfg.Detail {
		headers = append(headers, "Loading", "Desirability")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := getMaxStatementWidth(cfg)
	var data [][]string
	for i := range blocks {
		b := &blocks[i]
		for pos, s := range b.Statements {
			row := []string{
				b.BlockID,
				strconv.Itoa(pos),
				s.ID,
				s.Dimension.Name(),
				contract.TruncateText(s.Text, maxWidth),
			}
			if cfg.Detail {
				row = append(row, fmtFloat(s.Loading), fmtFloat(s.SocialDesirability))
			}
			data = append(data, row)
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Dimension coverage summary
	usage := make(map[schema.Dimension]int)
	for i := range blocks {
		for _, d := range blocks[i].Dimensions() {
			usage[d]++
		}
	}
	minUse, maxUse := -1, 0
	for _, d := range schema.AllDimensions {
		n := usage[d]
		if minUse < 0 || n < minUse {
			minUse = n
		}
		if n > maxUse {
			maxUse = n
		}
	}
	_, err := fmt.Fprintf(writer, "Showing %d blocks (dimension usage min %d, max %d)\n", len(blocks), minUse, maxUse)
	return err
}

// writeCSVResultsForBlocks writes the block design in CSV format, one row per
// block-statement pair.
func writeCSVResultsForBlocks(w io.Writer, blocks []schema.QuartetBlock, fmtFloat func(float64) string) error {
	header := []string{
		"block",
		"position",
		"statement_id",
		"dimension",
		"text",
		"loading",
		"social_desirability",
		"context",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i := range blocks {
			b := &blocks[i]
			for pos, s := range b.Statements {
				rec := []string{
					b.BlockID,
					strconv.Itoa(pos),
					s.ID,
					s.Dimension.Name(),
					s.Text,
					fmtFloat(s.Loading),
					fmtFloat(s.SocialDesirability),
					s.Context,
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
