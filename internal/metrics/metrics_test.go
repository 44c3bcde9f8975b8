package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goextreme/analysis"
	"github.com/sartorproj/goextreme/extreme"
	"github.com/sartorproj/goextreme/pearson"
)

func fittedResult(t *testing.T) *analysis.Result {
	t.Helper()
	params, err := pearson.Fit([]float64{2.1, 2.8, 3.7, 2.2, 4.9})
	require.NoError(t, err)
	table, err := params.Table(nil)
	require.NoError(t, err)
	return &analysis.Result{
		Field:        "wave_height",
		Samples:      make([]extreme.Sample, 5),
		Status:       analysis.StatusOK,
		Params:       params,
		ReturnValues: table,
	}
}

func TestObserveFitted(t *testing.T) {
	m := New()
	r := fittedResult(t)
	m.Observe(r)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FieldsAnalyzed))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Samples.WithLabelValues("wave_height")))
	assert.InDelta(t, r.ReturnValues[5].Value, testutil.ToFloat64(m.ReturnValue.WithLabelValues("wave_height", "100")), 1e-12)
	assert.Equal(t, 6, testutil.CollectAndCount(m.ReturnValue))
}

func TestObserveNotFitted(t *testing.T) {
	m := New()
	m.Observe(&analysis.Result{Field: "tide", Status: analysis.StatusInsufficientData})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FitFailures.WithLabelValues("tide", "insufficient_data")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.ReturnValue))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(fittedResult(t))
	m.Finish(1500*time.Millisecond, time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "goextreme.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `goextreme_return_value{field="wave_height",period="25"}`)
	assert.Contains(t, body, "goextreme_run_duration_seconds 1.5")
	assert.Contains(t, body, "goextreme_last_run_timestamp_seconds ")
}

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "100", FormatPeriod(100))
	assert.Equal(t, "2.5", FormatPeriod(2.5))
}
