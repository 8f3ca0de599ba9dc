package models

// ReportRow is the summary of one AggregateEntry.
type ReportRow struct {
	View      string  `json:"view"`
	Method    Method  `json:"method"`
	Status    string  `json:"status"`
	Count     int     `json:"count"`
	Minimum   float64 `json:"minimum"`
	Maximum   float64 `json:"maximum"`
	Mean      float64 `json:"mean"`
	Stdev     float64 `json:"stdev"`
	Queries   float64 `json:"queries"`
	QueryTime float64 `json:"querytime"`
}
