package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"oska/internal/config"
	"oska/internal/engine"
	"oska/internal/logging"
	"oska/internal/server/game"
	httpserver "oska/internal/server/http"
)

func main() {
	cfgPath := flag.String("config", "", "optional config file (.env, yaml, json or toml)")
	addr := flag.String("addr", "", "listen address, overrides SERVER_ADDR")
	webDir := flag.String("web", "", "directory served under /web/, overrides WEB_DIR")
	flag.Parse()

	cfg, err := config.Setup(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if *addr != "" {
		cfg.ServerAddr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleShutdown(cancel, logger)

	e := engine.NewEngine(engine.WithWorkers(cfg.Workers), engine.WithLogger(logger))
	h := httpserver.NewHandler(e, game.NewManager(cfg.MatchHistory), logger, httpserver.Options{
		MaxDepth:      cfg.MaxDepth,
		DefaultDepth:  cfg.SearchDepth,
		MaxPlies:      cfg.MaxPlies,
		MatchMaxDepth: cfg.MatchMaxDepth,
		MatchTimeout:  cfg.MatchTimeout,
		MaxBodyBytes:  cfg.MaxBodyBytes,
		StaticDir:     cfg.WebDir,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("server is running",
		zap.String("addr", cfg.ServerAddr),
		zap.Int("workers", e.Workers()),
		zap.Int("search_depth", cfg.SearchDepth))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	logger.Info("server stopped")
}

func handleShutdown(cancel context.CancelFunc, logger *zap.Logger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info("received shutdown signal")
	cancel()
}
