package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVTables writes each table with its header, separated by a blank line.
func writeCSVTables(w io.Writer, tables []table, fmtFloat func(float64) string) error {
	csvWriter := csv.NewWriter(w)

	for i, t := range tables {
		if i > 0 {
			if err := csvWriter.Write(nil); err != nil {
				return err
			}
		}
		if err := csvWriter.Write(t.header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, row := range t.rows {
			rec := make([]string, len(row))
			for j, cell := range row {
				rec[j] = cellString(cell, fmtFloat)
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeTextTables prints each table under its title.
func writeTextTables(w io.Writer, doc *document, fmtFloat func(float64) string, useColors bool) error {
	var bold, green, yellow, red func(...any) string
	if useColors {
		bold = color.New(color.Bold).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
		red = color.New(color.FgRed).SprintFunc()
	} else {
		bold = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
		red = fmt.Sprint
	}

	for i, t := range doc.tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, bold(t.title))

		table := tablewriter.NewWriter(w)
		table.Header(t.header)
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
			cfg.Header.Formatting.AutoFormat = tw.Off
		})

		var data [][]string
		for _, row := range t.rows {
			rec := make([]string, len(row))
			for j, cell := range row {
				s := cellString(cell, fmtFloat)
				if st, ok := cell.(statusCell); ok {
					switch st {
					case "ok":
						s = green(s)
					case "insufficient_data":
						s = yellow(s)
					default:
						s = red(s)
					}
				}
				rec[j] = s
			}
			data = append(data, rec)
		}

		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if doc.footer != "" {
		fmt.Fprintln(w, doc.footer)
	}
	return nil
}

// writeXLSX writes one sheet per table and a report sheet with metadata.
func writeXLSX(w io.Writer, doc *document, precision int) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	first := true
	for _, t := range doc.tables {
		sheet := t.name
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		header := make([]any, len(t.header))
		for i, h := range t.header {
			header[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return err
		}

		for r, row := range t.rows {
			cells := make([]any, len(row))
			for i, cell := range row {
				cells[i] = xlsxCell(cell, precision)
			}
			cellName, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cellName, &cells); err != nil {
				return err
			}
		}
	}

	if first {
		return fmt.Errorf("nothing to write")
	}

	if len(doc.info) > 0 {
		if _, err := f.NewSheet("report"); err != nil {
			return err
		}
		for r, kv := range doc.info {
			cellName, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			row := []any{kv[0], kv[1]}
			if err := f.SetSheetRow("report", cellName, &row); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func xlsxCell(v any, precision int) any {
	switch c := v.(type) {
	case float64:
		return roundFloat(c, precision)
	case int, string:
		return c
	case statusCell:
		return string(c)
	case time.Time:
		return formatTime(c)
	default:
		return ""
	}
}

// writeParquet writes records with a schema derived from the Record struct tags.
func writeParquet(w io.Writer, records []Record) error {
	writer := parquet.NewGenericWriter[Record](w)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
