package schedulers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/shopspring/decimal"
)

const (
	MetricAveragePageResponseTime = "AveragePageResponseTime"
	MetricMaxPageResponseTime     = "MaxPageResponseTime"

	DimensionEnv    = "Env"
	DimensionServer = "Server"

	defaultPushTimeout = 10 * time.Second
)

// ResponseTimeMetrics are the two values pushed per run, in seconds. -1 means no traffic.
type ResponseTimeMetrics struct {
	Average decimal.Decimal
	Max     decimal.Decimal
}

//go:generate mockgen -source=metrics_publisher.go -destination=./mocks/metrics_publisher_mock.go -package=mocks
type MetricsPublisher interface {
	Publish(ctx context.Context, m ResponseTimeMetrics) error
}

// PublisherOptions locate the Pushgateway and tag the pushed group.
type PublisherOptions struct {
	GatewayURL string
	Job        string
	Env        string
	Server     string
	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient push.HTTPDoer
}

type pushgatewayPublisher struct {
	opts PublisherOptions
}

// NewPushgatewayPublisher returns a publisher that replaces the job's group on every push.
func NewPushgatewayPublisher(opts PublisherOptions) (MetricsPublisher, error) {
	u, err := url.ParseRequestURI(opts.GatewayURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid pushgateway url %q", opts.GatewayURL)
	}
	if opts.Job == "" {
		return nil, fmt.Errorf("pushgateway job is required")
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultPushTimeout}
	}
	return &pushgatewayPublisher{opts: opts}, nil
}

func (p *pushgatewayPublisher) Publish(ctx context.Context, m ResponseTimeMetrics) error {
	average := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: MetricAveragePageResponseTime,
		Help: "Average page response time in seconds since the previous push, -1 without traffic.",
	})
	maximum := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: MetricMaxPageResponseTime,
		Help: "Maximum page response time in seconds since the previous push, -1 without traffic.",
	})
	average.Set(m.Average.InexactFloat64())
	maximum.Set(m.Max.InexactFloat64())

	// a fresh registry per push keeps the default one (and its /metrics) out of the group
	registry := prometheus.NewRegistry()
	registry.MustRegister(average, maximum)

	err := push.New(p.opts.GatewayURL, p.opts.Job).
		Gatherer(registry).
		Grouping(DimensionEnv, p.opts.Env).
		Grouping(DimensionServer, p.opts.Server).
		Client(p.opts.HTTPClient).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push to %s: %w", p.opts.GatewayURL, err)
	}
	return nil
}
