package aggregators

import (
	"errors"
	"fmt"
	"time"

	"timelog/internal/filters"
	"timelog/internal/models"
	"timelog/internal/resolvers"
)

// Outcome tells what Ingest did with a record.
type Outcome string

const (
	OutcomeAggregated   Outcome = "aggregated"
	OutcomeBeforeWindow Outcome = "before_window"
	OutcomeIgnored      Outcome = "ignored"
	OutcomeUnroutable   Outcome = "unroutable"
)

// Options control which records qualify and how they are keyed.
type Options struct {
	// ResolveNames keys records by logical endpoint; when false the raw path is used
	// and the endpoint resolver is never consulted.
	ResolveNames bool
	// WindowStart, when set, skips records timestamped strictly before it.
	WindowStart *time.Time
}

// Aggregator folds log records into per-key sample series. It is not safe for
// concurrent use; one Aggregator belongs to one analysis run.
type Aggregator interface {
	Ingest(record *models.LogRecord) (Outcome, error)
	Result() *models.AggregateResult
}

type aggregator struct {
	pathFilter       filters.PathFilter
	endpointResolver resolvers.EndpointResolver
	options          Options
	result           *models.AggregateResult
}

// NewAggregator creates an empty aggregator. pathFilter may be nil (nothing ignored);
// endpointResolver is required when options.ResolveNames is set.
func NewAggregator(pathFilter filters.PathFilter, endpointResolver resolvers.EndpointResolver, options Options) (Aggregator, error) {
	if options.ResolveNames && endpointResolver == nil {
		return nil, errors.New("endpoint resolver is required when resolving names")
	}
	return &aggregator{
		pathFilter:       pathFilter,
		endpointResolver: endpointResolver,
		options:          options,
		result:           models.NewAggregateResult(),
	}, nil
}

// Ingest applies, in order: the window check, the ignore patterns, endpoint resolution,
// then folds the record into its key. Skipped records leave no trace in the result.
// The only error is an unexpected resolver failure; the run should then be aborted.
func (a *aggregator) Ingest(record *models.LogRecord) (Outcome, error) {
	if a.options.WindowStart != nil && record.Timestamp.Before(*a.options.WindowStart) {
		return a.count(OutcomeBeforeWindow), nil
	}

	if a.pathFilter != nil && a.pathFilter.Ignore(record.Path) {
		return a.count(OutcomeIgnored), nil
	}

	endpoint := record.Path
	if a.options.ResolveNames {
		resolved, err := a.endpointResolver.Resolve(record.Path)
		if err != nil {
			if errors.Is(err, resolvers.ErrNoRouteMatch) {
				return a.count(OutcomeUnroutable), nil
			}
			return "", fmt.Errorf("resolve endpoint: %w", err)
		}
		endpoint = resolved
	}

	key := models.AggregateKey{Endpoint: endpoint, Status: record.Status, Method: record.Method}
	if entry, ok := a.result.Entries[key]; ok {
		entry.Append(record)
	} else {
		a.result.Entries[key] = models.NewAggregateEntry(endpoint, record)
		metricAggregateKeysCreatedTotal.Inc()
	}
	return a.count(OutcomeAggregated), nil
}

func (a *aggregator) Result() *models.AggregateResult {
	return a.result
}

func (a *aggregator) count(outcome Outcome) Outcome {
	metricRecordsTotal.WithLabelValues(string(outcome)).Inc()
	return outcome
}
