package app

import (
	"context"
	"fmt"

	"timelog/internal/analyzers"
	"timelog/internal/filters"
	"timelog/internal/parsers"
	"timelog/internal/resolvers"
	"timelog/internal/shared/configs"
	"timelog/internal/shared/filestorages"
	"timelog/internal/stores"
)

// NewAnalysisService wires the parse, filter, resolve and aggregate pipeline from config.
// The returned service shares one endpoint cache across all of its runs.
func NewAnalysisService(config *configs.Config) (analyzers.AnalysisService, error) {
	pathFilter, err := filters.NewPathFilter(config.Timelog.IgnoreURIs)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path filter: %w", err)
	}

	routes := make([]resolvers.Route, 0, len(config.Routes))
	for _, r := range config.Routes {
		routes = append(routes, resolvers.Route{Pattern: r.Pattern, Module: r.Module, Handler: r.Handler})
	}
	routeTable, err := resolvers.NewRouteTable(routes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize route table: %w", err)
	}

	return analyzers.NewAnalysisService(parsers.NewLineParser(), pathFilter, resolvers.NewEndpointResolver(routeTable)), nil
}

// stateStores are the lock and checkpoint used by the push job.
type stateStores struct {
	locker          stores.Locker
	checkpointStore stores.CheckpointStore
	close           func() error
}

func newStateStores(ctx context.Context, config configs.StateConfig, checkpointName string) (*stateStores, error) {
	switch config.Backend {
	case configs.BackendRedis:
		client, err := stores.NewRedisClient(ctx, config.Redis)
		if err != nil {
			return nil, err
		}
		return &stateStores{
			locker:          stores.NewRedisLocker(client),
			checkpointStore: stores.NewRedisCheckpointStore(client, checkpointName),
			close:           client.Close,
		}, nil

	case configs.BackendFile:
		fileStorage, err := filestorages.NewFileStorage(config.FileRootDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return &stateStores{
			locker:          stores.NewFileLocker(fileStorage),
			checkpointStore: stores.NewFileCheckpointStore(fileStorage, checkpointName),
			close:           func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported state backend %q", config.Backend)
	}
}
