package outwriter

import (
	"time"

	"github.com/sartorproj/goextreme/pearson"
)

// FactorRow is one row of a frequency-factor table.
type FactorRow struct {
	Period         float64 `json:"period"`
	Exceedance     float64 `json:"exceedance"`
	ReducedVariate float64 `json:"reduced_variate"`
	Factor         float64 `json:"factor"`
}

// PeriodsReport is the JSON form of a frequency-factor table.
type PeriodsReport struct {
	ID          string      `json:"id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Skewness    float64     `json:"skewness"`
	Rows        []FactorRow `json:"rows"`
}

// WritePeriods writes the frequency factors K for skewness over periods.
func (w *Writer) WritePeriods(skew float64, periods []float64) error {
	m := w.newMeta()
	doc, err := buildPeriodsDocument(m, skew, periods)
	if err != nil {
		return err
	}
	return w.emit(doc)
}

func buildPeriodsDocument(m meta, skew float64, periods []float64) (*document, error) {
	if len(periods) == 0 {
		periods = pearson.StandardReturnPeriods
	}

	report := PeriodsReport{ID: m.ID, GeneratedAt: m.GeneratedAt, Skewness: skew}
	t := table{
		name:   "frequency_factors",
		title:  "Frequency factors for Cs = " + createFormatters(3)(skew),
		header: []string{"Return Period", "Exceedance", "z", "K"},
	}

	var records []Record
	for _, period := range periods {
		z, err := pearson.ReducedVariate(period)
		if err != nil {
			return nil, err
		}
		k, err := pearson.FrequencyFactor(skew, period)
		if err != nil {
			return nil, err
		}

		key := formatPeriod(period)
		report.Rows = append(report.Rows, FactorRow{Period: period, Exceedance: 1 / period, ReducedVariate: z, Factor: k})
		t.rows = append(t.rows, []any{key, 1 / period, z, k})
		for _, kv := range []struct {
			name  string
			value float64
		}{{"reduced_variate", z}, {"factor", k}} {
			records = append(records, Record{
				ReportID:    m.ID,
				GeneratedAt: m.GeneratedAt,
				Section:     "frequency_factor",
				Key:         key,
				Name:        kv.name,
				Value:       kv.value,
			})
		}
	}

	return &document{
		kind:    "frequency factors",
		report:  report,
		tables:  []table{t},
		records: records,
		info: [][2]string{
			{"report_id", m.ID},
			{"generated_at", m.GeneratedAt.Format(time.RFC3339)},
		},
	}, nil
}
