package outwriter

import (
	"strconv"
	"time"
)

// document is the format-independent form of one output.
type document struct {
	kind    string  // used in status messages
	report  any     // JSON body
	tables  []table // text, CSV and XLSX
	records []Record
	footer  string      // text only
	info    [][2]string // XLSX report sheet
}

// table is a titled grid. Cells are string, int, float64, time.Time or
// statusCell values.
type table struct {
	name   string // sheet name
	title  string
	header []string
	rows   [][]any
}

// statusCell is a fit or trend status, colored in terminal output.
type statusCell string

// Record is one value of a report in long form, as written to Parquet.
type Record struct {
	ReportID    string    `parquet:"report_id,snappy"`
	GeneratedAt time.Time `parquet:"generated_at,snappy"`
	Source      string    `parquet:"source,snappy"`
	Field       string    `parquet:"field,snappy"`
	Section     string    `parquet:"section,snappy"`
	Key         string    `parquet:"key,snappy"`
	Name        string    `parquet:"name,snappy"`
	Value       float64   `parquet:"value,snappy"`
}

// cellString renders a cell for text and CSV output.
func cellString(v any, fmtFloat func(float64) string) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case statusCell:
		return string(c)
	case int:
		return strconv.Itoa(c)
	case float64:
		return fmtFloat(c)
	case time.Time:
		return formatTime(c)
	default:
		return ""
	}
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}
