package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/thclabs/growroom/internal/config"
	"github.com/thclabs/growroom/internal/event"
	"github.com/thclabs/growroom/internal/handler"
	"github.com/thclabs/growroom/internal/leaderboard"
	"github.com/thclabs/growroom/internal/notify"
	"github.com/thclabs/growroom/internal/persist"
	"github.com/thclabs/growroom/internal/room"
	"github.com/thclabs/growroom/internal/scheduler"
	"github.com/thclabs/growroom/internal/server"
	"github.com/thclabs/growroom/internal/store"
	"github.com/thclabs/growroom/internal/store/postgres"
	"github.com/thclabs/growroom/internal/wallet"
	"github.com/thclabs/growroom/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	handler.InitValidator()

	ctx := context.Background()
	log := slog.Default()

	// Persistence backend
	var (
		kv     store.Store
		pinger handler.Pinger
	)
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		pg, err := postgres.New(ctx, cfg.GetDBConnString())
		if err != nil {
			log.Error("Failed to open postgres store", "error", err)
			os.Exit(1)
		}
		kv = pg
		pinger = pg
	default:
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Error("Failed to open file store", "error", err)
			os.Exit(1)
		}
		kv = fs
	}
	defer kv.Close()

	roomRepo := persist.NewRoomRepository(kv)
	leaderboardRepo := persist.NewLeaderboardRepository(kv)

	// Event bus with resilient publishing for game actions
	bus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(bus, event.ResilientConfig{
		DeadLetterPath: filepath.Join(cfg.DataDir, "events_deadletter.jsonl"),
	})

	// Simulated wallet provider: faucet-seeded balances, in-memory ledger
	provider := wallet.NewSimulated(cfg.FaucetAmount)

	// Notifications: always slog, Discord webhook when configured
	notifiers := notify.Multi{notify.SlogNotifier{}}
	if cfg.DiscordEnabled() {
		discord, err := notify.NewDiscordNotifier(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
		if err != nil {
			log.Warn("Discord notifier disabled", "error", err)
		} else {
			notifiers = append(notifiers, discord)
			log.Info("Discord harvest announcements enabled")
		}
	}

	clock := scheduler.RealClock{}

	leaderboardService, err := leaderboard.NewService(ctx, leaderboardRepo, clock)
	if err != nil {
		log.Error("Failed to create leaderboard service", "error", err)
		os.Exit(1)
	}
	leaderboard.NewEventHandler(leaderboardService).Register(bus)

	roomService, err := room.NewService(roomRepo, provider, publisher, notifiers, clock, room.Options{
		TreasuryAddress:  cfg.TreasuryAddr,
		MaxOfflineCredit: cfg.MaxOfflineCredit,
	})
	if err != nil {
		log.Error("Failed to create room service", "error", err)
		os.Exit(1)
	}

	// Background workers: growth tick and autosave sweep
	pool := worker.NewPool(worker.DefaultPoolWorkers, worker.DefaultPoolQueueSize)
	pool.Start()
	growthWorker := worker.StartGrowthWorker(clock, cfg.TickInterval, roomService)
	autosaveWorker := worker.StartAutosaveWorker(clock, cfg.AutosaveInterval, roomService, pool)

	srv := server.NewServer(cfg.Port, roomService, leaderboardService, provider, pinger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("Server failed", "error", err)
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}

	growthWorker.Stop()
	autosaveWorker.Stop()
	pool.Stop()

	// Final flush so nothing dirty is lost across a restart
	roomService.FlushDirty(shutdownCtx)

	log.Info("Shutdown complete")
}
