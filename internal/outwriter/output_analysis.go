package outwriter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sartorproj/goextreme/analysis"
)

// AnalysisReport is the JSON form of an analysis run.
type AnalysisReport struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Source      string        `json:"source"`
	Fields      []FieldReport `json:"fields"`
}

// FieldReport is the JSON form of one analyzed field.
type FieldReport struct {
	Field        string              `json:"field"`
	Granularity  string              `json:"granularity"`
	Selector     string              `json:"selector"`
	Status       string              `json:"status"`
	Message      string              `json:"message,omitempty"`
	Samples      []SampleReport      `json:"samples"`
	Params       *ParamsReport       `json:"params,omitempty"`
	ReturnValues []ReturnValueReport `json:"return_values,omitempty"`
	Independence *IndependenceReport `json:"independence,omitempty"`
	Trend        []float64           `json:"trend,omitempty"`
	TrendStatus  string              `json:"trend_status,omitempty"`
}

// SampleReport is one period extreme.
type SampleReport struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
	Count  int     `json:"count"`
}

// ParamsReport holds the fitted Pearson III parameters.
type ParamsReport struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Skewness float64 `json:"skewness"`
}

// IndependenceReport is the Ljung-Box check on the samples.
type IndependenceReport struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Lags      int     `json:"lags"`
}

// ReturnValueReport is one return-period row.
type ReturnValueReport struct {
	Period     float64 `json:"period"`
	Exceedance float64 `json:"exceedance"`
	Factor     float64 `json:"factor"`
	Value      float64 `json:"value"`
}

// WriteAnalysis writes the results of an analysis run over source.
func (w *Writer) WriteAnalysis(source string, results []*analysis.Result, duration time.Duration) error {
	m := w.newMeta()
	doc := buildAnalysisDocument(m, source, results)
	doc.footer = fmt.Sprintf("Analyzed %d field(s) from %s in %v.", len(results), source, duration.Round(time.Millisecond))
	return w.emit(doc)
}

func buildAnalysisDocument(m meta, source string, results []*analysis.Result) *document {
	report := AnalysisReport{
		ID:          m.ID,
		GeneratedAt: m.GeneratedAt,
		Source:      source,
		Fields:      make([]FieldReport, 0, len(results)),
	}

	hasTrend := false
	for _, r := range results {
		if r.Trend != nil {
			hasTrend = true
		}
	}

	samples := table{
		name:   "samples",
		title:  "Extreme samples",
		header: []string{"Field", "Period", "Value", "Count"},
	}
	if hasTrend {
		samples.header = append(samples.header, "Trend")
	}
	params := table{
		name:   "parameters",
		title:  "Pearson III parameters",
		header: []string{"Field", "Granularity", "Selector", "N", "Mean", "Std Dev", "Skewness", "Status"},
	}
	returns := table{
		name:   "return_periods",
		title:  "Return-period values",
		header: []string{"Field", "Return Period", "Exceedance", "K", "Value"},
	}

	var records []Record
	record := func(field, section, key, name string, value float64) {
		records = append(records, Record{
			ReportID:    m.ID,
			GeneratedAt: m.GeneratedAt,
			Source:      source,
			Field:       field,
			Section:     section,
			Key:         key,
			Name:        name,
			Value:       value,
		})
	}

	for _, r := range results {
		fr := FieldReport{
			Field:       r.Field,
			Granularity: r.Granularity.String(),
			Selector:    r.Selector.String(),
			Status:      string(r.Status),
			Message:     r.Message,
			Samples:     make([]SampleReport, len(r.Samples)),
			TrendStatus: r.TrendStatus,
		}

		for i, s := range r.Samples {
			period := s.Period.String()
			fr.Samples[i] = SampleReport{Period: period, Value: s.Value, Count: s.Count}

			row := []any{r.Field, period, s.Value, s.Count}
			if hasTrend {
				if r.Trend != nil {
					row = append(row, r.Trend.Fitted[i])
				} else {
					row = append(row, nil)
				}
			}
			samples.rows = append(samples.rows, row)

			record(r.Field, "sample", period, "value", s.Value)
			if r.Trend != nil {
				record(r.Field, "trend", period, "value", r.Trend.Fitted[i])
			}
		}
		if r.Trend != nil {
			fr.Trend = r.Trend.Fitted
		}
		if lb := r.Independence; lb != nil {
			fr.Independence = &IndependenceReport{Statistic: lb.Statistic, PValue: lb.PValue, Lags: lb.Lags}
		}

		if r.Params == nil {
			params.rows = append(params.rows, []any{
				r.Field, fr.Granularity, fr.Selector, len(r.Samples), nil, nil, nil, statusCell(r.Status),
			})
			report.Fields = append(report.Fields, fr)
			continue
		}

		p := r.Params
		fr.Params = &ParamsReport{N: p.N, Mean: p.Mean, StdDev: p.StdDev, Skewness: p.Skewness}
		params.rows = append(params.rows, []any{
			r.Field, fr.Granularity, fr.Selector, p.N, p.Mean, p.StdDev, p.Skewness, statusCell(r.Status),
		})
		record(r.Field, "parameter", "", "n", float64(p.N))
		record(r.Field, "parameter", "", "mean", p.Mean)
		record(r.Field, "parameter", "", "std_dev", p.StdDev)
		record(r.Field, "parameter", "", "skewness", p.Skewness)

		for _, rv := range r.ReturnValues {
			fr.ReturnValues = append(fr.ReturnValues, ReturnValueReport(rv))
			key := formatPeriod(rv.Period)
			returns.rows = append(returns.rows, []any{r.Field, key, rv.Exceedance, rv.Factor, rv.Value})

			record(r.Field, "return_period", key, "factor", rv.Factor)
			record(r.Field, "return_period", key, "value", rv.Value)
		}
		report.Fields = append(report.Fields, fr)
	}

	return &document{
		kind:    "analysis",
		report:  report,
		tables:  []table{samples, params, returns},
		records: records,
		info: [][2]string{
			{"report_id", m.ID},
			{"generated_at", m.GeneratedAt.Format(time.RFC3339)},
			{"source", source},
		},
	}
}

// formatPeriod renders a return period without trailing zeros ("100", "2.5").
func formatPeriod(period float64) string {
	return strconv.FormatFloat(period, 'f', -1, 64)
}
