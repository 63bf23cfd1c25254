package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/orion-pdv/internal/bootstrap"
	"github.com/jhoicas/orion-pdv/internal/interfaces/cli"
	"github.com/jhoicas/orion-pdv/pkg/config"
	"github.com/jhoicas/orion-pdv/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	open := func(ctx context.Context) (*bootstrap.Container, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})
		return bootstrap.New(ctx, cfg, log.Named("posctl"))
	}

	if err := cli.NewRootCommand(open).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
