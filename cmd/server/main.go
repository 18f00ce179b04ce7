package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/config"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/transport/ws"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/usecase/bot"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/usecase/game"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/usecase/hub"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	var (
		bot    = bot.New(logger.Named("bot"))
		game   = game.New(bot, cfg.Game, logger.Named("game"))
		hub    = hub.New(game, logger.Named("hub"))
		server = ws.New(hub, cfg.Server, logger.Named("ws"))
	)
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup, groupCtx := errgroup.WithContext(context.Background())
	errGroup.Go(func() error {
		var cause error
		select {
		case s := <-sigChan:
			cause = errors.Errorf("captured signal: %v", s)
		case <-groupCtx.Done():
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Info("failed to shutdown http server: " + err.Error())
		}
		return cause
	})
	errGroup.Go(server.ListenAndServe)
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the server: " + err.Error())
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, errors.WithMessage(err, "parse log level")
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	return zapCfg.Build()
}
