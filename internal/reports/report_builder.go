package reports

import (
	"math"

	"timelog/internal/models"
)

// BuildReport summarises every entry of result into one row, in key order.
func BuildReport(result *models.AggregateResult) []models.ReportRow {
	if result == nil {
		return nil
	}

	keys := result.SortedKeys()
	rows := make([]models.ReportRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, buildRow(result.Entries[key]))
	}
	return rows
}

func buildRow(entry *models.AggregateEntry) models.ReportRow {
	n := float64(entry.Count)

	minimum, maximum := math.Inf(1), math.Inf(-1)
	var sum, sumQueries, sumQueryTime float64
	for i, t := range entry.ResponseTimes {
		minimum = math.Min(minimum, t)
		maximum = math.Max(maximum, t)
		sum += t
		sumQueries += float64(entry.QueryCounts[i])
		sumQueryTime += entry.QueryTimes[i]
	}
	mean := sum / n

	return models.ReportRow{
		View:      entry.Endpoint,
		Method:    entry.Method,
		Status:    entry.Status,
		Count:     entry.Count,
		Minimum:   minimum,
		Maximum:   maximum,
		Mean:      mean,
		Stdev:     sampleStdev(entry.ResponseTimes, mean),
		Queries:   sumQueries / n,
		QueryTime: sumQueryTime / n,
	}
}

// sampleStdev is the n-1 standard deviation; a single sample has none and yields 0.
func sampleStdev(samples []float64, mean float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	var sq float64
	for _, s := range samples {
		sq += (s - mean) * (s - mean)
	}
	return math.Sqrt(sq / float64(len(samples)-1))
}
