package cli

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	httpapi "github.com/NateStaxx/FetchDeck/internal/api/http"
	"github.com/NateStaxx/FetchDeck/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// serve runs the HTTP server until ctx is cancelled, then shuts it down.
func serve(ctx context.Context, rt Runtime) error {
	cfg := rt.Config

	// Weather makes two sequential calls, so a probe may take two timeouts.
	sched := scheduler.New(rt.Service, rt.Statuses, cfg.Status.ProbeInterval, 2*cfg.HTTP.Timeout, rt.Log)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := httpapi.NewApp(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	httpapi.RegisterRoutes(app, rt.Service, rt.Statuses)

	listenErr := make(chan error, 1)
	go func() {
		rt.Log.Info("http server listening", zap.String("port", cfg.Server.Port))
		listenErr <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	rt.Log.Info("shutting down http server")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
