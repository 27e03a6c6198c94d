package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/bootstrap"
	"github.com/osse101/KnightlyTreasures_Go/internal/character"
	"github.com/osse101/KnightlyTreasures_Go/internal/concurrency"
	"github.com/osse101/KnightlyTreasures_Go/internal/config"
	"github.com/osse101/KnightlyTreasures_Go/internal/handler"
	"github.com/osse101/KnightlyTreasures_Go/internal/scheduler"
	"github.com/osse101/KnightlyTreasures_Go/internal/server"
	"github.com/osse101/KnightlyTreasures_Go/internal/shop"
	"github.com/osse101/KnightlyTreasures_Go/internal/sse"
	"github.com/osse101/KnightlyTreasures_Go/internal/worker"
)

const (
	shutdownTimeout = 15 * time.Second
	jobQueueSize    = 16
)

// @title Knightly Treasures API
// @version 1.0
// @description Weekly magic item shop and party ledger for a tabletop campaign.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}
	handler.InitValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	content, err := bootstrap.LoadContent(cfg)
	if err != nil {
		return err
	}

	handle, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	if err := bootstrap.SeedWorld(ctx, handle.Store, content.World); err != nil {
		handle.Store.Close()
		return err
	}

	bus := bootstrap.InitializeEventSystem()
	hub := sse.NewHub()
	hub.Start()
	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDeps{Bus: bus, Hub: hub})

	// One lock and shadow set per character, shared by both services
	chars := character.NewStore(handle.Store, concurrency.NewLockManager())

	shopSvc := shop.NewService(handle.Store, content.Catalog.Items(), bootstrap.NewGenerator(cfg, content.Classes),
		bootstrap.NewPricer(content.World), bus, shop.Options{
			CampaignStart: cfg.CampaignStart,
			DepositRate:   cfg.ReservationDepositRate,
			SellRatio:     cfg.SellPriceRatio,
			LocalOnly:     handle.LocalOnly,
			Characters:    chars,
		})
	charSvc := character.NewService(chars, content.Catalog, bus, time.Now, handle.LocalOnly)

	if err := shopSvc.Refresh(ctx, shop.SourceStartup); err != nil {
		slog.Warn("Initial shop load failed, serving catalog defaults", "error", err)
	}

	syncCtx, cancelSync := context.WithCancel(ctx)
	go func() {
		if err := shopSvc.Run(syncCtx); err != nil {
			slog.Error("Change feed stopped", "error", err)
		}
	}()

	pool := worker.NewPool(cfg.WorkerPoolSize, jobQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule("reservation-expiry", cfg.ReservationPollInterval, worker.NewReservationExpiryJob(shopSvc))

	rollover := worker.NewWeekRolloverWorker(shopSvc, cfg.CampaignStart, time.Now)
	rollover.Start()

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		AdminAPIKey:    cfg.AdminAPIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Dependencies{
		DBPool:           handle.Pool,
		ShopService:      shopSvc,
		CharacterService: charSvc,
		Hub:              hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
		slog.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:         srv,
		CancelSync:     cancelSync,
		Scheduler:      sched,
		RolloverWorker: rollover,
		WorkerPool:     pool,
		Hub:            hub,
		Store:          handle.Store,
	})
	return err
}
