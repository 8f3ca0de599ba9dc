package aggregators_test

import (
	"sort"
	"testing"
	"time"

	"timelog/internal/aggregators"
	"timelog/internal/filters"
	"timelog/internal/models"
	"timelog/internal/parsers"
	"timelog/internal/resolvers"
	resolvermocks "timelog/internal/resolvers/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	lineA1 = `2019-05-01 12:00:00,000 GET "/a" (200) 0.100 (1q, 0.010)`
	lineA2 = `2019-05-01 12:00:01,000 GET "/a" (200) 0.300 (3q, 0.030)`
)

func mustParse(t *testing.T, lines ...string) []*models.LogRecord {
	t.Helper()
	parser := parsers.NewLineParser()
	records := make([]*models.LogRecord, 0, len(lines))
	for _, line := range lines {
		record, err := parser.Parse(line)
		require.NoError(t, err)
		records = append(records, record)
	}
	return records
}

func newRouteTable(t *testing.T) resolvers.EndpointResolver {
	t.Helper()
	table, err := resolvers.NewRouteTable([]resolvers.Route{
		{Pattern: "/a", Module: "app", Handler: "view_a"},
		{Pattern: "/b/{id}", Module: "app", Handler: "view_b"},
	})
	require.NoError(t, err)
	return resolvers.NewEndpointResolver(table)
}

func ingestAll(t *testing.T, agg aggregators.Aggregator, records []*models.LogRecord) []aggregators.Outcome {
	t.Helper()
	outcomes := make([]aggregators.Outcome, 0, len(records))
	for _, record := range records {
		outcome, err := agg.Ingest(record)
		require.NoError(t, err)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func TestAggregator_Ingest_GroupsByResolvedEndpoint(t *testing.T) {
	t.Parallel()

	agg, err := aggregators.NewAggregator(nil, newRouteTable(t), aggregators.Options{ResolveNames: true})
	require.NoError(t, err)

	ingestAll(t, agg, mustParse(t, lineA1, lineA2))

	result := agg.Result()
	require.Len(t, result.Entries, 1)

	entry := result.Entries[models.AggregateKey{Endpoint: "app.view_a", Status: "200", Method: models.MethodGet}]
	require.NotNil(t, entry)
	assert.Equal(t, &models.AggregateEntry{
		Count:         2,
		Endpoint:      "app.view_a",
		Method:        models.MethodGet,
		Status:        "200",
		ResponseTimes: []float64{0.1, 0.3},
		QueryCounts:   []int64{1, 3},
		QueryTimes:    []float64{0.01, 0.03},
	}, entry)
}

func TestAggregator_Ingest_WindowStartSkipsEarlierRecords(t *testing.T) {
	t.Parallel()

	windowStart := time.Date(2019, 5, 1, 12, 0, 0, 500_000_000, time.UTC)
	agg, err := aggregators.NewAggregator(nil, newRouteTable(t), aggregators.Options{ResolveNames: true, WindowStart: &windowStart})
	require.NoError(t, err)

	outcomes := ingestAll(t, agg, mustParse(t, lineA1, lineA2))

	assert.Equal(t, []aggregators.Outcome{aggregators.OutcomeBeforeWindow, aggregators.OutcomeAggregated}, outcomes)
	entry := agg.Result().Entries[models.AggregateKey{Endpoint: "app.view_a", Status: "200", Method: models.MethodGet}]
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Count)
	assert.Equal(t, []float64{0.3}, entry.ResponseTimes)
}

func TestAggregator_Ingest_WindowStartIsInclusive(t *testing.T) {
	t.Parallel()

	windowStart := time.Date(2019, 5, 1, 12, 0, 1, 0, time.UTC)
	agg, err := aggregators.NewAggregator(nil, nil, aggregators.Options{WindowStart: &windowStart})
	require.NoError(t, err)

	outcomes := ingestAll(t, agg, mustParse(t, lineA1, lineA2))
	assert.Equal(t, []aggregators.Outcome{aggregators.OutcomeBeforeWindow, aggregators.OutcomeAggregated}, outcomes)
}

func TestAggregator_Ingest_SkippedRecordsDoNotTouchResolver(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	// no expectations: any call fails the test
	endpointResolver := resolvermocks.NewMockEndpointResolver(ctrl)

	windowStart := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	filter, err := filters.NewPathFilter([]string{"/static/"})
	require.NoError(t, err)

	agg, err := aggregators.NewAggregator(filter, endpointResolver, aggregators.Options{ResolveNames: true, WindowStart: &windowStart})
	require.NoError(t, err)

	outcomes := ingestAll(t, agg, mustParse(t,
		lineA1,
		`2020-01-01 00:00:00,000 GET "/static/app.js" (200) 0.001 (0q, 0)`,
	))

	assert.Equal(t, []aggregators.Outcome{aggregators.OutcomeBeforeWindow, aggregators.OutcomeIgnored}, outcomes)
	assert.True(t, agg.Result().IsEmpty())
}

func TestAggregator_Ingest_UnroutableRecordsAreDropped(t *testing.T) {
	t.Parallel()

	agg, err := aggregators.NewAggregator(nil, newRouteTable(t), aggregators.Options{ResolveNames: true})
	require.NoError(t, err)

	outcomes := ingestAll(t, agg, mustParse(t,
		`2019-05-01 12:00:00,000 GET "/wp-login.php" (404) 0.002 (0q, 0)`,
		lineA1,
	))

	assert.Equal(t, []aggregators.Outcome{aggregators.OutcomeUnroutable, aggregators.OutcomeAggregated}, outcomes)
	assert.Len(t, agg.Result().Entries, 1)
}

func TestAggregator_Ingest_RawPathsWhenNotResolving(t *testing.T) {
	t.Parallel()

	agg, err := aggregators.NewAggregator(nil, nil, aggregators.Options{ResolveNames: false})
	require.NoError(t, err)

	ingestAll(t, agg, mustParse(t,
		lineA1,
		`2019-05-01 12:00:00,000 GET "/b/1" (200) 0.2 (2q, 0.02)`,
		`2019-05-01 12:00:00,000 GET "/b/2" (200) 0.2 (2q, 0.02)`,
		`2019-05-01 12:00:00,000 POST "/b/2" (200) 0.2 (2q, 0.02)`,
		`2019-05-01 12:00:00,000 POST "/b/2" (500) 0.2 (2q, 0.02)`,
		`2019-05-01 12:00:00,000 GET "/wp-login.php" (404) 0.002 (0q, 0)`,
	))

	keys := agg.Result().SortedKeys()
	assert.Equal(t, []models.AggregateKey{
		{Endpoint: "/a", Status: "200", Method: models.MethodGet},
		{Endpoint: "/b/1", Status: "200", Method: models.MethodGet},
		{Endpoint: "/b/2", Status: "200", Method: models.MethodGet},
		{Endpoint: "/b/2", Status: "200", Method: models.MethodPost},
		{Endpoint: "/b/2", Status: "500", Method: models.MethodPost},
		{Endpoint: "/wp-login.php", Status: "404", Method: models.MethodGet},
	}, keys)
}

func TestAggregator_Ingest_ResolvedPathsShareOneKey(t *testing.T) {
	t.Parallel()

	agg, err := aggregators.NewAggregator(nil, newRouteTable(t), aggregators.Options{ResolveNames: true})
	require.NoError(t, err)

	ingestAll(t, agg, mustParse(t,
		`2019-05-01 12:00:00,000 GET "/b/1" (200) 0.2 (2q, 0.02)`,
		`2019-05-01 12:00:00,000 GET "/b/2" (200) 0.4 (4q, 0.04)`,
		`2019-05-01 12:00:00,000 GET "/b/3" (500) 0.9 (1q, 0.01)`,
	))

	result := agg.Result()
	assert.Len(t, result.Entries, 2)
	assert.Equal(t, 2, result.Entries[models.AggregateKey{Endpoint: "app.view_b", Status: "200", Method: models.MethodGet}].Count)
	assert.Equal(t, 1, result.Entries[models.AggregateKey{Endpoint: "app.view_b", Status: "500", Method: models.MethodGet}].Count)
}

func TestAggregator_Ingest_CountMatchesSeriesLengths(t *testing.T) {
	t.Parallel()

	agg, err := aggregators.NewAggregator(nil, nil, aggregators.Options{})
	require.NoError(t, err)

	lines := []string{lineA1, lineA2}
	for i := 0; i < 25; i++ {
		lines = append(lines, `2019-05-01 12:00:02,000 PUT "/a" (204) 0.05 (2q, 0.005)`)
	}
	ingestAll(t, agg, mustParse(t, lines...))

	total := 0
	for key, entry := range agg.Result().Entries {
		assert.Equal(t, entry.Count, len(entry.ResponseTimes), "key %v", key)
		assert.Equal(t, entry.Count, len(entry.QueryCounts), "key %v", key)
		assert.Equal(t, entry.Count, len(entry.QueryTimes), "key %v", key)
		total += entry.Count
	}
	assert.Equal(t, len(lines), total)
}

func TestAggregator_Ingest_OrderIndependentSamples(t *testing.T) {
	t.Parallel()

	lines := []string{
		lineA1,
		lineA2,
		`2019-05-01 12:00:02,000 GET "/a" (200) 0.200 (2q, 0.020)`,
		`2019-05-01 12:00:03,000 GET "/b/9" (200) 1.5 (9q, 0.9)`,
	}
	reversed := []string{lines[3], lines[2], lines[1], lines[0]}

	forward, err := aggregators.NewAggregator(nil, newRouteTable(t), aggregators.Options{ResolveNames: true})
	require.NoError(t, err)
	backward, err := aggregators.NewAggregator(nil, newRouteTable(t), aggregators.Options{ResolveNames: true})
	require.NoError(t, err)

	ingestAll(t, forward, mustParse(t, lines...))
	ingestAll(t, backward, mustParse(t, reversed...))

	require.Equal(t, forward.Result().SortedKeys(), backward.Result().SortedKeys())
	for key, entry := range forward.Result().Entries {
		other := backward.Result().Entries[key]
		assert.Equal(t, entry.Count, other.Count)
		assert.Equal(t, sorted(entry.ResponseTimes), sorted(other.ResponseTimes))
	}
}

func TestAggregator_Ingest_ResolverFailureAbortsRecord(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	endpointResolver := resolvermocks.NewMockEndpointResolver(ctrl)
	endpointResolver.EXPECT().Resolve("/a").Return("", assert.AnError)

	agg, err := aggregators.NewAggregator(nil, endpointResolver, aggregators.Options{ResolveNames: true})
	require.NoError(t, err)

	_, err = agg.Ingest(mustParse(t, lineA1)[0])
	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, agg.Result().IsEmpty())
}

func TestNewAggregator_RequiresResolverWhenResolving(t *testing.T) {
	t.Parallel()

	_, err := aggregators.NewAggregator(nil, nil, aggregators.Options{ResolveNames: true})
	assert.Error(t, err)
}

func sorted(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}
