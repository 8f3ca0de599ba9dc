package schedulers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"timelog/internal/schedulers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPushgatewayPublisher_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    schedulers.PublisherOptions
		wantErr bool
	}{
		{name: "valid", opts: schedulers.PublisherOptions{GatewayURL: "http://pushgateway:9091", Job: "timelog"}},
		{name: "https", opts: schedulers.PublisherOptions{GatewayURL: "https://pushgateway.example.com", Job: "timelog"}},
		{name: "empty url", opts: schedulers.PublisherOptions{Job: "timelog"}, wantErr: true},
		{name: "no scheme", opts: schedulers.PublisherOptions{GatewayURL: "pushgateway:9091", Job: "timelog"}, wantErr: true},
		{name: "wrong scheme", opts: schedulers.PublisherOptions{GatewayURL: "ftp://pushgateway", Job: "timelog"}, wantErr: true},
		{name: "missing job", opts: schedulers.PublisherOptions{GatewayURL: "http://pushgateway:9091"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			publisher, err := schedulers.NewPushgatewayPublisher(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, publisher)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, publisher)
		})
	}
}

func TestPushgatewayPublisher_Publish(t *testing.T) {
	t.Parallel()

	var (
		gotMethod string
		gotPath   string
		gotBody   []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher, err := schedulers.NewPushgatewayPublisher(schedulers.PublisherOptions{
		GatewayURL: server.URL,
		Job:        "timelog",
		Env:        "prod",
		Server:     "web-1",
	})
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), schedulers.ResponseTimeMetrics{
		Average: decimal.RequireFromString("0.2"),
		Max:     decimal.RequireFromString("0.3"),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/metrics/job/timelog/Env/prod/Server/web-1", gotPath)
	assert.Contains(t, string(gotBody), schedulers.MetricAveragePageResponseTime)
	assert.Contains(t, string(gotBody), schedulers.MetricMaxPageResponseTime)
}

func TestPushgatewayPublisher_Publish_GatewayError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher, err := schedulers.NewPushgatewayPublisher(schedulers.PublisherOptions{
		GatewayURL: server.URL,
		Job:        "timelog",
		Env:        "prod",
		Server:     "web-1",
	})
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), schedulers.ResponseTimeMetrics{
		Average: decimal.NewFromInt(-1),
		Max:     decimal.NewFromInt(-1),
	})
	assert.Error(t, err)
}
