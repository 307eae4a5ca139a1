package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"weather-backcast/config"
	v1 "weather-backcast/internal/controllers/http/v1"
	"weather-backcast/internal/repositories"
	"weather-backcast/internal/services/backcast"
	"weather-backcast/internal/services/preferences"
	"weather-backcast/pkg/httpserver"
	"weather-backcast/pkg/logger"
	"weather-backcast/pkg/observe"
)

// @title Weather Backcast API
// @version 1.0.0
// @description Noon-nearest historical weather for the five days before today, built with Go and Fiber.
// @description Observations come from the Open-Meteo archive and are reduced to one reading per day.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Backcast
// @tag.description Five-day historical lookups
// @tag.name Users
// @tag.description Per-user backcast views
// @tag.name Preferences
// @tag.description Units, favorites and dark mode
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// .env is optional
	_ = godotenv.Load()

	cnf, err := config.NewConfig()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	writers := []io.Writer{os.Stdout}
	sentryHook, err := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.IsDevelopment(), cnf.Sentry.DSN)
	if err != nil {
		panic(err)
	}
	if sentryHook != nil {
		writers = append(writers, sentryHook)
	}

	l := logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Writers: writers,
	})

	var ready atomic.Bool
	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  cnf.Server.ReadTimeout,
		WriteTimeout: cnf.Server.WriteTimeout,
		IdleTimeout:  cnf.Server.IdleTimeout,
		Ready:        ready.Load,
	})

	metrics := observe.NewMetrics()

	archive := repositories.NewOpenMeteoArchiveRepository(l, &http.Client{Timeout: cnf.Archive.Timeout}, repositories.OpenMeteoArchiveOptions{
		BaseURL: cnf.Archive.BaseURL,
		Retry: repositories.RetryPolicy{
			MaxRetries:      cnf.Archive.MaxRetries,
			InitialInterval: cnf.Archive.RetryInitialInterval,
			MaxInterval:     cnf.Archive.RetryMaxInterval,
		},
		Breaker: repositories.BreakerSettings{
			MaxRequests:         cnf.Archive.Breaker.MaxRequests,
			Interval:            cnf.Archive.Breaker.Interval,
			Timeout:             cnf.Archive.Breaker.Timeout,
			ConsecutiveFailures: cnf.Archive.Breaker.ConsecutiveFailures,
		},
	})

	opts := []backcast.Option{backcast.WithMetrics(metrics)}
	if cnf.Timezone.Lookup {
		zones, err := repositories.NewTimezoneResolver()
		if err != nil {
			l.Warning("timezone lookup disabled", map[string]any{"err": err.Error()})
		} else {
			opts = append(opts, backcast.WithTimezoneResolver(zones))
		}
	}
	backcastService := backcast.NewService(archive, l, opts...)

	prefsRepo, closePrefs, err := openPreferencesRepository(cnf.Preferences)
	if err != nil {
		l.Fatal("cannot open preferences store", map[string]any{"err": err.Error(), "driver": cnf.Preferences.Driver})
	}
	preferencesService := preferences.NewPreferencesService(prefsRepo, l)

	v1.NewRouter(
		app,
		backcastService,
		preferencesService,
		metrics,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	ready.Store(true)
	l.Info("application started successfully", map[string]any{
		"port":        cnf.Server.Port,
		"archive":     archive.Name(),
		"preferences": cnf.Preferences.Driver,
		"version":     cnf.App.Version,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		ready.Store(false)
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if err := closePrefs(); err != nil {
			l.Error(err, map[string]any{"driver": cnf.Preferences.Driver})
		}
		if sentryHook != nil {
			sentryHook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}

func openPreferencesRepository(cnf config.PreferencesConfig) (repositories.PreferencesRepository, func() error, error) {
	switch cnf.Driver {
	case config.PreferencesDriverSQLite:
		repo, err := repositories.OpenSQLitePreferencesRepository(cnf.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return repositories.NewMemoryPreferencesRepository(), func() error { return nil }, nil
	}
}
