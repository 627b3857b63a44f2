package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/streamtips/backend/internal/config"
	"github.com/streamtips/backend/internal/events"
	apphttp "github.com/streamtips/backend/internal/http"
	"github.com/streamtips/backend/internal/http/handlers"
	"github.com/streamtips/backend/internal/repositories"
	"github.com/streamtips/backend/internal/seed"
	"github.com/streamtips/backend/internal/services"
	"github.com/streamtips/backend/internal/storage"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("fatal", zap.Error(err))
	}
}

// run owns the store lifecycle: the deferred Close runs on every exit path,
// error or not.
func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	store, err := storage.Open(cfg.LevelDBPath, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close store", zap.Error(err))
		}
	}()

	// Redis (optional): rate limiting and overlay events
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = storage.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
	}

	// Repositories
	streamerRepo := repositories.NewStreamerRepo(store, log)
	donationRepo := repositories.NewDonationRepo(store, log)

	if cfg.SeedDemoData {
		if err := seed.LoadDemoStreamers(streamerRepo, log); err != nil {
			return fmt.Errorf("load demo streamers: %w", err)
		}
	}

	// Events
	var publisher events.Publisher
	var overlayHub *handlers.OverlayHub
	if rdb != nil {
		publisher = events.NewRedisPublisher(rdb, log)
		subscriber := events.NewRedisSubscriber(rdb, log)
		overlayHub = handlers.NewOverlayHub(subscriber, log)
		overlayHub.Start(ctx)
	}

	// Services
	validation := services.NewValidationService(cfg.MinDonationUSD, cfg.MaxDonationUSD)
	streamerService := services.NewStreamerService(streamerRepo, validation, cfg, log)
	donationService := services.NewDonationService(donationRepo, streamerService, validation, publisher, cfg, log)

	// Handlers
	streamerHandler := handlers.NewStreamerHandler(streamerService, log)
	donationHandler := handlers.NewDonationHandler(donationService, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, store, rdb, streamerHandler, donationHandler, overlayHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server",
		zap.String("addr", addr),
		zap.String("network", cfg.Network),
		zap.Int("chain_id", cfg.ChainID()),
	)
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
