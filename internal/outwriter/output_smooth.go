package outwriter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sartorproj/goextreme/analysis"
)

// SmoothReport is the JSON form of a smoothing run.
type SmoothReport struct {
	ID           string        `json:"id"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Source       string        `json:"source"`
	Field        string        `json:"field"`
	Degree       int           `json:"degree,omitempty"`
	Method       string        `json:"method,omitempty"`
	PolyStatus   string        `json:"poly_status,omitempty"`
	Coefficients []float64     `json:"coefficients,omitempty"`
	Window       int           `json:"window,omitempty"`
	Points       []SmoothPoint `json:"points"`
}

// SmoothPoint is one observation with its smoothed values.
type SmoothPoint struct {
	Index         int        `json:"index"`
	Time          *time.Time `json:"time,omitempty"`
	Value         float64    `json:"value"`
	Poly          *float64   `json:"poly,omitempty"`
	MovingAverage *float64   `json:"moving_average,omitempty"`
}

// WriteSmooth writes the smoothed curves of one field.
func (w *Writer) WriteSmooth(source string, result *analysis.SmoothResult, window int) error {
	m := w.newMeta()
	doc := buildSmoothDocument(m, source, result, window)
	return w.emit(doc)
}

func buildSmoothDocument(m meta, source string, result *analysis.SmoothResult, window int) *document {
	s := result.Series
	hasTime := s.HasTimestamps()
	hasMA := result.MovingAverage != nil

	report := SmoothReport{
		ID:          m.ID,
		GeneratedAt: m.GeneratedAt,
		Source:      source,
		Field:       result.Field,
		PolyStatus:  result.PolyStatus,
		Points:      make([]SmoothPoint, s.Len()),
	}
	if hasMA {
		report.Window = window
	}

	header := []string{"#"}
	if hasTime {
		header = append(header, "Date")
	}
	header = append(header, "Value")
	if result.Poly != nil {
		report.Degree = result.Poly.Degree
		report.Method = result.Poly.Method.String()
		report.Coefficients = result.Poly.Coeffs
		header = append(header, fmt.Sprintf("Poly (deg %d)", result.Poly.Degree))
	}
	if hasMA {
		header = append(header, fmt.Sprintf("MA (%d)", window))
	}

	t := table{
		name:   "smooth",
		title:  fmt.Sprintf("Smoothed %s", result.Field),
		header: header,
	}

	var records []Record
	record := func(key, name string, value float64) {
		records = append(records, Record{
			ReportID:    m.ID,
			GeneratedAt: m.GeneratedAt,
			Source:      source,
			Field:       result.Field,
			Section:     "smooth",
			Key:         key,
			Name:        name,
			Value:       value,
		})
	}

	for i, v := range s.Values {
		p := SmoothPoint{Index: i, Value: v}
		row := []any{i}
		key := strconv.Itoa(i)
		if hasTime {
			ts := s.Timestamps[i]
			p.Time = &ts
			row = append(row, ts)
			key = formatTime(ts)
		}
		row = append(row, v)
		record(key, "value", v)

		if result.Poly != nil {
			fitted := result.Poly.Fitted[i]
			p.Poly = &fitted
			row = append(row, fitted)
			record(key, "poly", fitted)
		}
		if hasMA {
			ma := result.MovingAverage.Values[i]
			p.MovingAverage = &ma
			row = append(row, ma)
			record(key, "moving_average", ma)
		}

		report.Points[i] = p
		t.rows = append(t.rows, row)
	}

	doc := &document{
		kind:    "smoothing",
		report:  report,
		tables:  []table{t},
		records: records,
		info: [][2]string{
			{"report_id", m.ID},
			{"generated_at", m.GeneratedAt.Format(time.RFC3339)},
			{"source", source},
			{"field", result.Field},
		},
	}
	if result.PolyStatus != "" && result.Poly == nil {
		doc.footer = "Polynomial fit: " + result.PolyStatus
	}
	return doc
}
