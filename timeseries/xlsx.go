package timeseries

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX loads a frame from a spreadsheet file.
func LoadXLSX(filename string, opts *CSVOptions) (*Frame, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return frameFromWorkbook(f, opts)
}

// LoadXLSXFromReader loads a frame from a spreadsheet stream.
func LoadXLSXFromReader(r io.Reader, opts *CSVOptions) (*Frame, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return frameFromWorkbook(f, opts)
}

func frameFromWorkbook(f *excelize.File, opts *CSVOptions) (*Frame, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	// Date cells without a display format come back as serial numbers.
	if dateIdx := dateColumnIndex(rows, opts); dateIdx >= 0 {
		for i := opts.SkipRows + 1; i < len(rows); i++ {
			row := rows[i]
			if dateIdx >= len(row) {
				continue
			}
			cell := cleanCell(row[dateIdx])
			if _, ok := parseDate(cell, opts.DateFormat); ok {
				continue
			}
			if serial, err := strconv.ParseFloat(cell, 64); err == nil {
				if ts, err := excelize.ExcelDateToTime(serial, false); err == nil {
					row[dateIdx] = ts.Format("2006-01-02 15:04:05")
				}
			}
		}
	}

	return frameFromRows(rows, opts)
}

// dateColumnIndex finds the date column in the header row, or -1.
func dateColumnIndex(rows [][]string, opts *CSVOptions) int {
	if opts.SkipRows >= len(rows) {
		return -1
	}
	for i, h := range rows[opts.SkipRows] {
		h = cleanCell(h)
		if opts.DateColumn != "" {
			if h == opts.DateColumn {
				return i
			}
			continue
		}
		if isDateHeader(h) {
			return i
		}
	}
	return -1
}
