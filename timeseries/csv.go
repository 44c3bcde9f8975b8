package timeseries

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for loading station records from CSV or XLSX.
type CSVOptions struct {
	DateColumn    string // Column name for dates (default: auto-detect)
	StationColumn string // Column name for station id (optional, for filtering)
	Station       string // Value to filter by station column
	DateFormat    string // Preferred date format (default: "2006-01-02")
	Delimiter     rune   // Field delimiter (default: ',')
	SkipRows      int    // Number of rows to skip before the header
	Sheet         string // Worksheet name for XLSX input (default: first sheet)
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02",
		Delimiter:  ',',
	}
}

// dateFormats are tried after the configured format.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/1/2",
	"2006/1/2 15:04",
	"01/02/2006",
	"1/2/06",
	"1/2/06 15:04",
	"02-Jan-2006",
	"2006-01",
	"2006",
}

// missingTokens are cell values treated as a missing reading.
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"-":    true,
}

// LoadCSV loads a frame from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Frame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a frame from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Frame, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return frameFromRows(records, opts)
}

// frameFromRows turns header + data rows into a frame. Every column other
// than the date and station columns becomes a numeric field; cells that do
// not parse become missing readings. Rows whose date cannot be parsed are
// skipped.
func frameFromRows(rows [][]string, opts *CSVOptions) (*Frame, error) {
	if opts.SkipRows >= len(rows) {
		return nil, errors.New("no header row found")
	}
	rows = rows[opts.SkipRows:]

	header := rows[0]
	dateIdx, stationIdx := -1, -1
	for i, h := range header {
		h = cleanCell(h)
		header[i] = h
		switch {
		case opts.DateColumn != "" && h == opts.DateColumn:
			dateIdx = i
		case opts.DateColumn == "" && isDateHeader(h):
			if dateIdx == -1 {
				dateIdx = i
			}
		case opts.StationColumn != "" && h == opts.StationColumn:
			stationIdx = i
		}
	}
	if dateIdx == -1 {
		return nil, errors.New("date column not found")
	}

	var fieldIdx []int
	for i, h := range header {
		if i == dateIdx || i == stationIdx || h == "" {
			continue
		}
		fieldIdx = append(fieldIdx, i)
	}

	var timestamps []time.Time
	columns := make([][]float64, len(fieldIdx))

	for _, record := range rows[1:] {
		if stationIdx >= 0 && opts.Station != "" {
			if stationIdx >= len(record) || cleanCell(record[stationIdx]) != opts.Station {
				continue
			}
		}
		if dateIdx >= len(record) {
			continue
		}
		ts, ok := parseDate(cleanCell(record[dateIdx]), opts.DateFormat)
		if !ok {
			continue
		}
		timestamps = append(timestamps, ts)
		for j, idx := range fieldIdx {
			v := Missing()
			if idx < len(record) {
				v = parseValue(record[idx])
			}
			columns[j] = append(columns[j], v)
		}
	}

	if len(timestamps) == 0 {
		return nil, errors.New("no valid data found")
	}

	frame := NewFrame(timestamps)
	for j, idx := range fieldIdx {
		if err := frame.AddField(header[idx], columns[j]); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func cleanCell(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func isDateHeader(h string) bool {
	switch strings.ToLower(h) {
	case "ds", "date", "time", "datetime", "timestamp", "month", "year":
		return true
	}
	return false
}

func parseValue(cell string) float64 {
	cell = cleanCell(cell)
	if missingTokens[cell] {
		return Missing()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return Missing()
	}
	return v
}

func parseDate(s, preferred string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
