package reports_test

import (
	"math"
	"testing"

	"timelog/internal/models"
	"timelog/internal/reports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResult(entries ...*models.AggregateEntry) *models.AggregateResult {
	result := models.NewAggregateResult()
	for _, e := range entries {
		result.Entries[models.AggregateKey{Endpoint: e.Endpoint, Status: e.Status, Method: e.Method}] = e
	}
	return result
}

func TestBuildReport_Statistics(t *testing.T) {
	t.Parallel()

	result := newResult(&models.AggregateEntry{
		Count:         2,
		Endpoint:      "app.view_a",
		Method:        models.MethodGet,
		Status:        "200",
		ResponseTimes: []float64{0.1, 0.3},
		QueryCounts:   []int64{1, 3},
		QueryTimes:    []float64{0.01, 0.03},
	})

	rows := reports.BuildReport(result)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "app.view_a", row.View)
	assert.Equal(t, models.MethodGet, row.Method)
	assert.Equal(t, "200", row.Status)
	assert.Equal(t, 2, row.Count)
	assert.InDelta(t, 0.1, row.Minimum, 1e-9)
	assert.InDelta(t, 0.3, row.Maximum, 1e-9)
	assert.InDelta(t, 0.2, row.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(0.02), row.Stdev, 1e-9)
	assert.InDelta(t, 2.0, row.Queries, 1e-9)
	assert.InDelta(t, 0.02, row.QueryTime, 1e-9)
}

func TestBuildReport_SingleSampleHasZeroStdev(t *testing.T) {
	t.Parallel()

	rows := reports.BuildReport(newResult(&models.AggregateEntry{
		Count:         1,
		Endpoint:      "/a",
		Method:        models.MethodPost,
		Status:        "201",
		ResponseTimes: []float64{0.5},
		QueryCounts:   []int64{0},
		QueryTimes:    []float64{0},
	}))

	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Stdev)
	assert.Equal(t, 0.5, rows[0].Minimum)
	assert.Equal(t, 0.5, rows[0].Maximum)
}

func TestBuildReport_IdenticalSamplesHaveZeroStdev(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
	}{
		{name: "tenth", value: 0.1},
		{name: "three tenths", value: 0.3},
		{name: "milliseconds", value: 0.123},
		{name: "tiny", value: 1e-7},
		{name: "seconds", value: 7.77},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rows := reports.BuildReport(newResult(&models.AggregateEntry{
				Count:         2,
				Endpoint:      "app.view_a",
				Method:        models.MethodGet,
				Status:        "200",
				ResponseTimes: []float64{tt.value, tt.value},
				QueryCounts:   []int64{1, 1},
				QueryTimes:    []float64{0.01, 0.01},
			}))

			require.Len(t, rows, 1)
			assert.Equal(t, 0.0, rows[0].Stdev)
			assert.Equal(t, tt.value, rows[0].Minimum)
			assert.Equal(t, tt.value, rows[0].Maximum)
		})
	}
}

func TestBuildReport_SortedByKey(t *testing.T) {
	t.Parallel()

	entry := func(endpoint, status string, method models.Method) *models.AggregateEntry {
		return &models.AggregateEntry{
			Count: 1, Endpoint: endpoint, Method: method, Status: status,
			ResponseTimes: []float64{1}, QueryCounts: []int64{1}, QueryTimes: []float64{1},
		}
	}
	rows := reports.BuildReport(newResult(
		entry("b", "200", models.MethodGet),
		entry("a", "500", models.MethodGet),
		entry("a", "200", models.MethodPost),
		entry("a", "200", models.MethodGet),
	))

	var got []string
	for _, r := range rows {
		got = append(got, r.View+" "+r.Status+" "+string(r.Method))
	}
	assert.Equal(t, []string{"a 200 GET", "a 200 POST", "a 500 GET", "b 200 GET"}, got)
}

func TestBuildReport_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, reports.BuildReport(models.NewAggregateResult()))
	assert.Nil(t, reports.BuildReport(nil))
}
