package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	internalhttp "timelog/internal/http"
	"timelog/internal/schedulers"
	"timelog/internal/shared/configs"
	"timelog/internal/shared/loggers"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	// nil when push is disabled
	pushScheduler schedulers.PushScheduler
	state         *stateStores

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	if err := config.ValidateServer(); err != nil {
		return nil, err
	}

	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger = appLogger.With().
		Str(loggers.FieldApp, "timelog").
		Logger()

	analysisService, err := NewAnalysisService(config)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:    config,
		appLogger: appLogger,
	}

	// Initialize scheduled push
	var pushJob schedulers.MetricsPushJob
	if config.Push.Enabled {
		app.state, err = newStateStores(context.Background(), config.State, schedulers.CheckpointName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize state stores: %w", err)
		}
		publisher, err := schedulers.NewPushgatewayPublisher(schedulers.PublisherOptions{
			GatewayURL: config.Push.GatewayURL,
			Job:        config.Push.Job,
			Env:        config.Push.Env,
			Server:     config.Push.Server,
		})
		if err != nil {
			_ = app.state.close()
			return nil, fmt.Errorf("failed to initialize metrics publisher: %w", err)
		}
		pushJob = schedulers.NewMetricsPushJob(config.Timelog.LogFile, analysisService, app.state.locker, app.state.checkpointStore, publisher)

		schedulerLogger := appLogger.With().Str(loggers.FieldComponent, "push").Logger()
		app.pushScheduler = schedulers.NewPushScheduler(pushJob, time.Duration(config.Push.IntervalSeconds)*time.Second, schedulerLogger)
	}

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(config.Timelog, analysisService, pushJob, httpLogger)

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Str(loggers.FieldLogFile, app.config.Timelog.LogFile).
		Bool("push_enabled", app.config.Push.Enabled).
		Msgf("Starting timelog service on port %d (log_level=%s, state_backend=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.State.Backend)

	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	if app.pushScheduler != nil {
		app.pushScheduler.Start(app.backgroundCtx)
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel the scheduler and wait for an in-flight push, which releases its lock
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}
	if app.pushScheduler != nil {
		app.pushScheduler.Stop()
		app.appLogger.Info().Msg("Push scheduler stopped")
	}

	// 3) Close state backend
	if app.state != nil {
		if err := app.state.close(); err != nil {
			return fmt.Errorf("state backend close failed: %w", err)
		}
	}
	return nil
}
