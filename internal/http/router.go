package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/streamtips/backend/internal/config"
	"github.com/streamtips/backend/internal/http/dto"
	"github.com/streamtips/backend/internal/http/handlers"
	"github.com/streamtips/backend/internal/middleware"
	"github.com/streamtips/backend/internal/storage"
	"go.uber.org/zap"
)

// SetupRouter binds all routes. rdb and overlayHub may be nil when redis is
// not configured; rate limiting and the overlay socket are skipped then.
func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	store *storage.Store,
	rdb *redis.Client,
	streamerHandler *handlers.StreamerHandler,
	donationHandler *handlers.DonationHandler,
	overlayHub *handlers.OverlayHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ", "),
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		status := "healthy"
		if _, _, err := store.Get("health:probe"); err != nil {
			log.Error("database health check failed", zap.Error(err))
			dbStatus = "disconnected"
			status = "degraded"
		}
		return c.JSON(dto.HealthResponse{
			Status:   status,
			Network:  cfg.Network,
			ChainID:  cfg.ChainID(),
			Database: dbStatus,
			Testnet:  cfg.IsTestnet(),
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(dto.RootResponse{
			Message: "Streamer Donation System API",
			Health:  "/health",
			Version: "1.0.0",
		})
	})

	api := app.Group("/api")

	if rdb != nil {
		api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))
	}

	// Streamers
	api.Post("/streamer", streamerHandler.CreateStreamer)
	api.Get("/streamers", streamerHandler.ListStreamers)
	api.Get("/streamer/by-wallet/:wallet", streamerHandler.GetStreamerByWallet)
	api.Get("/streamer/:id", streamerHandler.GetStreamer)
	api.Delete("/streamer/:id", streamerHandler.DeleteStreamer)

	// Donations
	api.Post("/streamer/:id/donate", donationHandler.SubmitDonation)
	api.Get("/streamer/:id/donations", donationHandler.ListDonations)
	api.Get("/streamer/:id/stats", donationHandler.GetStats)
	api.Get("/donation/:id", donationHandler.GetDonation)

	// Overlay WebSocket
	if overlayHub != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws/overlay/:streamerId", websocket.New(overlayHub.HandleWS))
	}
}
