package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/prithvianilk/my-besto-friendo/internal/api"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/usecase"
	"github.com/prithvianilk/my-besto-friendo/internal/conf"
	"github.com/prithvianilk/my-besto-friendo/internal/data"
	"github.com/prithvianilk/my-besto-friendo/internal/server"
	"github.com/prithvianilk/my-besto-friendo/internal/service"
	"github.com/prithvianilk/my-besto-friendo/internal/wideevent"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	repos, err := data.NewRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Commitment.Close()

	prompts := usecase.NewPromptBuilder(cfg.ToPromptConfig())
	resolver := usecase.NewCommitmentResolver(
		repos.Window,
		repos.Commitment,
		repos.Calendar,
		repos.Completion,
		prompts,
		cfg.ToResolverConfig(),
	)
	admin := usecase.NewCommitmentUsecase(repos.Commitment, repos.Calendar, logger)

	sink := wideevent.NewLogSink(logger)
	dispatcher := service.NewDispatcher(repos.Window, sink, logger, resolver)

	ingestSrv := server.NewIngestServer(cfg.Ingest.Addr, dispatcher, cfg.Ingest.WhitelistedParticipants, logger)
	adminSrv := api.NewAdminServer(cfg.Admin.Addr, admin, repos.Window, logger)

	errCh := make(chan error, 2)
	go func() { errCh <- ingestSrv.Start() }()
	go func() { errCh <- adminSrv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := ingestSrv.Stop(shutdownCtx); err != nil {
		logger.Error("ingest shutdown failed", slog.Any("error", err))
	}
	dispatcher.Close()
	if err := adminSrv.Stop(shutdownCtx); err != nil {
		logger.Error("admin shutdown failed", slog.Any("error", err))
	}
}
