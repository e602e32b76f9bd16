package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/NateStaxx/FetchDeck/internal/cli"
	"github.com/NateStaxx/FetchDeck/internal/config"
	"github.com/NateStaxx/FetchDeck/internal/logging"
	"github.com/NateStaxx/FetchDeck/internal/panel"
	"github.com/NateStaxx/FetchDeck/internal/panel/providers"
	"github.com/NateStaxx/FetchDeck/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	service, err := panel.NewService(log, providers.Build(cfg)...)
	if err != nil {
		log.Fatal("failed to register panels", zap.Error(err))
	}

	cmd := cli.New(cli.Runtime{
		Config:   cfg,
		Log:      log,
		Service:  service,
		Statuses: store.NewMemoryStore(cfg.Status.MaxHistory),
	})

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error("command failed", zap.Error(err))
		stop()
		_ = log.Sync()
		os.Exit(1)
	}
}
