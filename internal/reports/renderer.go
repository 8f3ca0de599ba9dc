package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"timelog/internal/models"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrUnsupportedFormat is returned for a format other than table or json.
var ErrUnsupportedFormat = errors.New("unsupported report format")

var columns = []string{"view", "method", "status", "count", "minimum", "maximum", "mean", "stdev", "queries", "querytime"}

// ValidateFormat reports whether Render accepts format. Empty means table.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatTable, FormatJSON, "":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Render writes rows in the given format.
func Render(w io.Writer, format string, rows []models.ReportRow) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if strings.ToLower(format) == FormatJSON {
		return RenderJSON(w, rows)
	}
	return RenderTable(w, rows)
}

// RenderTable writes an aligned text table: two decimals for minimum, maximum and stdev,
// three for mean, queries and querytime.
func RenderTable(w io.Writer, rows []models.ReportRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.3f\t%.2f\t%.3f\t%.3f\n",
			r.View, r.Method, r.Status, r.Count,
			r.Minimum, r.Maximum, r.Mean, r.Stdev, r.Queries, r.QueryTime)
	}
	return tw.Flush()
}

// RenderJSON writes rows as a JSON array, numbers rounded to the table precision.
func RenderJSON(w io.Writer, rows []models.ReportRow) error {
	rounded := make([]models.ReportRow, 0, len(rows))
	for _, r := range rows {
		rounded = append(rounded, RoundRow(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rounded)
}

// RoundRow applies the table precision to a row.
func RoundRow(r models.ReportRow) models.ReportRow {
	r.Minimum = round(r.Minimum, 2)
	r.Maximum = round(r.Maximum, 2)
	r.Stdev = round(r.Stdev, 2)
	r.Mean = round(r.Mean, 3)
	r.Queries = round(r.Queries, 3)
	r.QueryTime = round(r.QueryTime, 3)
	return r
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
