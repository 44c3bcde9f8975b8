// Package outwriter renders analysis, smoothing and frequency-factor results
// as terminal tables, CSV, JSON, XLSX workbooks or Parquet files.
package outwriter

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/sartorproj/goextreme/internal/config"
)

// Writer writes results in the configured output format.
type Writer struct {
	cfg    *config.Config
	clock  clockwork.Clock
	stdout io.Writer
	stderr io.Writer
	newID  func() string
}

// New creates a writer for cfg that prints to stdout and stderr.
func New(cfg *config.Config) *Writer {
	return &Writer{
		cfg:    cfg,
		clock:  clockwork.NewRealClock(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		newID:  uuid.NewString,
	}
}

// WithClock replaces the clock used for report timestamps.
func (w *Writer) WithClock(clock clockwork.Clock) *Writer {
	w.clock = clock
	return w
}

// WithOutput redirects terminal output.
func (w *Writer) WithOutput(stdout, stderr io.Writer) *Writer {
	w.stdout = stdout
	w.stderr = stderr
	return w
}

// meta identifies one written report.
type meta struct {
	ID          string
	GeneratedAt time.Time
}

func (w *Writer) newMeta() meta {
	return meta{ID: w.newID(), GeneratedAt: w.clock.Now().UTC()}
}

// emit dispatches a document to the configured format.
func (w *Writer) emit(doc *document) error {
	fmtFloat := createFormatters(w.cfg.Precision)

	switch w.cfg.Output {
	case config.JSONOut:
		if err := w.writeWithFile(func(out io.Writer) error {
			return writeJSON(out, doc.report)
		}, "Wrote JSON "+doc.kind); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case config.CSVOut:
		if err := w.writeWithFile(func(out io.Writer) error {
			return writeCSVTables(out, doc.tables, fmtFloat)
		}, "Wrote CSV "+doc.kind); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case config.XLSXOut:
		if err := w.writeWithFile(func(out io.Writer) error {
			return writeXLSX(out, doc, w.cfg.Precision)
		}, "Wrote XLSX "+doc.kind); err != nil {
			return fmt.Errorf("error writing XLSX output: %w", err)
		}
	case config.ParquetOut:
		if err := w.writeWithFile(func(out io.Writer) error {
			return writeParquet(out, doc.records)
		}, "Wrote Parquet "+doc.kind); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := w.writeWithFile(func(out io.Writer) error {
			return writeTextTables(out, doc, fmtFloat, w.cfg.UseColors)
		}, "Wrote "+doc.kind); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// An empty output file writes to stdout.
func (w *Writer) writeWithFile(writer func(io.Writer) error, successMsg string) error {
	if w.cfg.OutputFile == "" {
		return writer(w.stdout)
	}

	file, err := os.Create(w.cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if err := writer(file); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	fmt.Fprintf(w.stderr, "💾 %s to %s\n", successMsg, w.cfg.OutputFile)
	return nil
}

// createFormatters returns the fixed-precision float formatter used by the
// tabular outputs.
func createFormatters(precision int) func(float64) string {
	return func(v float64) string {
		switch {
		case math.IsNaN(v):
			return "NaN"
		case math.IsInf(v, 1):
			return "+Inf"
		case math.IsInf(v, -1):
			return "-Inf"
		}
		return decimal.NewFromFloat(v).StringFixed(int32(precision))
	}
}

// roundFloat rounds v half away from zero to precision decimal places.
func roundFloat(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(int32(precision)).Float64()
	return f
}
