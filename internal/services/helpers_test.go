package services

import (
	"testing"

	"github.com/streamtips/backend/internal/config"
	"github.com/streamtips/backend/internal/models"
	"github.com/streamtips/backend/internal/repositories"
	"github.com/streamtips/backend/internal/storage"
	"go.uber.org/zap"
)

func strptr(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{
		MinDonationUSD:   0.01,
		MaxDonationUSD:   1000.0,
		TierTolerance:    0.01,
		MaxMessageLength: 200,
		ListLimitCeiling: 1000,
	}
}

type testEnv struct {
	store           *storage.Store
	streamerRepo    *repositories.StreamerRepo
	donationRepo    *repositories.DonationRepo
	streamerService *StreamerService
	donationService *DonationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zap.NewNop()
	store, err := storage.OpenMemory(log)
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := testConfig()
	streamerRepo := repositories.NewStreamerRepo(store, log)
	donationRepo := repositories.NewDonationRepo(store, log)
	validation := NewValidationService(cfg.MinDonationUSD, cfg.MaxDonationUSD)
	streamerService := NewStreamerService(streamerRepo, validation, cfg, log)
	donationService := NewDonationService(donationRepo, streamerService, validation, nil, cfg, log)

	return &testEnv{
		store:           store,
		streamerRepo:    streamerRepo,
		donationRepo:    donationRepo,
		streamerService: streamerService,
		donationService: donationService,
	}
}

func validCreateRequest() CreateStreamerRequest {
	return CreateStreamerRequest{
		Name:          "Logan",
		WalletAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb7",
		Platforms:     []models.Platform{models.PlatformYouTube, models.PlatformTwitch},
		DonationTiers: []models.DonationTier{
			{AmountUSD: 1.0, PopupMessage: "Thank you! 💙", DurationMS: 3000},
			{AmountUSD: 5.0, PopupMessage: "Amazing support! 🎉", DurationMS: 5000},
			{AmountUSD: 10.0, PopupMessage: "You're a legend! 🌟", DurationMS: 8000},
		},
	}
}
