package models

import (
	"sort"
	"strings"
)

// AggregateKey is the composite identity records are grouped under. Components are
// compared individually, so ("a-b", "c") and ("a", "b-c") never collide.
type AggregateKey struct {
	Endpoint string
	Status   string
	Method   Method
}

// Less orders keys by endpoint, then status, then method.
func (k AggregateKey) Less(other AggregateKey) bool {
	if c := strings.Compare(k.Endpoint, other.Endpoint); c != 0 {
		return c < 0
	}
	if c := strings.Compare(k.Status, other.Status); c != 0 {
		return c < 0
	}
	return k.Method < other.Method
}

// AggregateEntry accumulates the samples of every record that shares one AggregateKey.
//
// Endpoint, Method and Status are copied from the first record seen for the key and never
// updated afterwards; since they are part of the key, later records always agree.
// The three sample slices always have length Count.
type AggregateEntry struct {
	Count         int       `json:"count"`
	Endpoint      string    `json:"view"`
	Method        Method    `json:"method"`
	Status        string    `json:"status"`
	ResponseTimes []float64 `json:"times"`
	QueryCounts   []int64   `json:"sql"`
	QueryTimes    []float64 `json:"sqltime"`
}

// NewAggregateEntry seeds an entry from the first record of its key.
func NewAggregateEntry(endpoint string, record *LogRecord) *AggregateEntry {
	return &AggregateEntry{
		Count:         1,
		Endpoint:      endpoint,
		Method:        record.Method,
		Status:        record.Status,
		ResponseTimes: []float64{record.ResponseTime},
		QueryCounts:   []int64{record.QueryCount},
		QueryTimes:    []float64{record.QueryTime},
	}
}

// Append folds one more record into the entry.
func (e *AggregateEntry) Append(record *LogRecord) {
	e.Count++
	e.ResponseTimes = append(e.ResponseTimes, record.ResponseTime)
	e.QueryCounts = append(e.QueryCounts, record.QueryCount)
	e.QueryTimes = append(e.QueryTimes, record.QueryTime)
}

// AggregateResult is the output of one analysis run.
type AggregateResult struct {
	Entries map[AggregateKey]*AggregateEntry
}

func NewAggregateResult() *AggregateResult {
	return &AggregateResult{Entries: make(map[AggregateKey]*AggregateEntry)}
}

// IsEmpty reports whether no record qualified during the run.
func (r *AggregateResult) IsEmpty() bool {
	return len(r.Entries) == 0
}

// SortedKeys returns the keys in ascending order.
func (r *AggregateResult) SortedKeys() []AggregateKey {
	keys := make([]AggregateKey, 0, len(r.Entries))
	for k := range r.Entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// ResponseTimes flattens the response time samples of every entry, in key order.
func (r *AggregateResult) ResponseTimes() []float64 {
	var times []float64
	for _, k := range r.SortedKeys() {
		times = append(times, r.Entries[k].ResponseTimes...)
	}
	return times
}

// RecordCount is the number of qualifying records across all keys.
func (r *AggregateResult) RecordCount() int {
	total := 0
	for _, e := range r.Entries {
		total += e.Count
	}
	return total
}
