// Package server boots the storefront HTTP service.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/swaad/app/routes"
	"github.com/shashiranjanraj/swaad/config"
	"github.com/shashiranjanraj/swaad/pkg/cache"
	"github.com/shashiranjanraj/swaad/pkg/logger"
	"github.com/shashiranjanraj/swaad/pkg/router"
)

// shutdownTimeout bounds how long in-flight requests get to finish once a
// stop signal arrives.
const shutdownTimeout = 15 * time.Second

// Build assembles the production router: config, Redis, route table.
func Build() (*router.Router, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	// Sessions fall back to process memory when Redis is down, so a failed
	// connect is a warning, not a fatal.
	cache.Connect()
	if !cache.Available() {
		logger.Warn("redis unavailable, sessions held in process memory")
	}

	r := router.New()
	routes.Register(r, routes.NewBackendClient(), routes.NewPaymentClient())
	return r, nil
}

// Start runs the HTTP server until SIGINT or SIGTERM, then drains.
func Start() error {
	r, err := Build()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("swaad storefront listening",
			"port", config.AppPort(),
			"backend", config.BackendURL(),
			"env", config.AppEnv(),
		)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
