package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"darksky-forecast/config"
	v1 "darksky-forecast/internal/controllers/http/v1"
	"darksky-forecast/internal/providers"
	"darksky-forecast/internal/services/requests"
	"darksky-forecast/pkg/forecast"
	"darksky-forecast/pkg/httpserver"
	"darksky-forecast/pkg/observe"
)

// @title Forecast Request API
// @version 1.0.0
// @description Builds validated Dark Sky compatible forecast request URLs.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Forecast
// @tag.description Forecast request URL construction
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.SentryDSN != "" {
		if hook, err = observe.NewSentryHook(cnf.AppEnv, cnf.AppName, cnf.SentryDSN, cnf.LogLevel == "debug"); err != nil {
			fmt.Fprintln(os.Stderr, "sentry disabled:", err)
		} else {
			writers = append(writers, hook)
		}
	}

	l := observe.NewZapLoggerWithOptions(
		cnf.AppName,
		[]observe.Option{observe.WithEnv(cnf.AppEnv), observe.WithLevel(cnf.LogLevel)},
		writers...,
	)

	ps := providers.InitProviders(cnf, l)
	if len(ps) == 0 {
		l.Fatal("no forecast providers configured")
	}

	service := requests.NewRequestService(ps, requests.Defaults{
		Language: forecast.Language(cnf.Forecast.Language),
		Units:    forecast.Units(cnf.Forecast.Units),
	}, l)

	app := httpserver.InitFiberServer(cnf.AppName)

	v1.NewRouter(
		app,
		service,
		l,
		cnf.ExposeAPIKey,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":      cnf.Port,
		"providers": service.Providers(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
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
