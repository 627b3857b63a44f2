package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/streamtips/backend/internal/config"
	"github.com/streamtips/backend/internal/models"
	"github.com/streamtips/backend/internal/repositories"
	"go.uber.org/zap"
)

type StreamerService struct {
	streamerRepo *repositories.StreamerRepo
	validation   *ValidationService
	cfg          *config.Config
	log          *zap.Logger
}

func NewStreamerService(
	streamerRepo *repositories.StreamerRepo,
	validation *ValidationService,
	cfg *config.Config,
	log *zap.Logger,
) *StreamerService {
	return &StreamerService{
		streamerRepo: streamerRepo,
		validation:   validation,
		cfg:          cfg,
		log:          log,
	}
}

type CreateStreamerRequest struct {
	Name            string                `json:"name"`
	WalletAddress   string                `json:"wallet_address"`
	Platforms       []models.Platform     `json:"platforms"`
	AvatarURL       *string               `json:"avatar_url,omitempty"`
	DonationTiers   []models.DonationTier `json:"donation_tiers"`
	ThankYouMessage string                `json:"thank_you_message,omitempty"`
}

// CreateStreamer registers a new streamer profile. The wallet address must
// not already be registered (case-insensitive), and the tier list must hold
// the ascending/unique invariant.
func (s *StreamerService) CreateStreamer(req CreateStreamerRequest) (*models.Streamer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len([]rune(name)) > models.MaxNameLength {
		return nil, validationf("name must be between 1 and %d characters", models.MaxNameLength)
	}

	if !s.validation.ValidateWalletAddress(req.WalletAddress) {
		return nil, validationf("invalid wallet address: %s", req.WalletAddress)
	}

	if len(req.Platforms) == 0 {
		return nil, validationf("at least one platform is required")
	}
	for _, p := range req.Platforms {
		if !p.Valid() {
			return nil, validationf("unknown platform: %s", p)
		}
	}

	tiers := make([]models.DonationTier, len(req.DonationTiers))
	copy(tiers, req.DonationTiers)
	for i := range tiers {
		if tiers[i].DurationMS == 0 {
			tiers[i].DurationMS = models.DefaultDurationMS
		}
	}
	if err := models.ValidateTiers(tiers); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	thankYou := req.ThankYouMessage
	if strings.TrimSpace(thankYou) == "" {
		thankYou = models.DefaultThankYouMessage
	}
	if len([]rune(thankYou)) > models.MaxThankYouLength {
		return nil, validationf("thank you message exceeds %d characters", models.MaxThankYouLength)
	}

	existing, err := s.streamerRepo.GetByWallet(req.WalletAddress)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrWalletTaken
	}

	streamer := &models.Streamer{
		ID:              uuid.New().String(),
		Name:            name,
		WalletAddress:   req.WalletAddress,
		Platforms:       req.Platforms,
		AvatarURL:       req.AvatarURL,
		DonationTiers:   tiers,
		ThankYouMessage: thankYou,
	}

	if err := s.streamerRepo.Save(streamer); err != nil {
		return nil, err
	}

	s.log.Info("streamer created",
		zap.String("streamer_id", streamer.ID),
		zap.String("name", streamer.Name),
		zap.Int("tiers", len(streamer.DonationTiers)),
	)
	return streamer, nil
}

func (s *StreamerService) GetByID(id string) (*models.Streamer, error) {
	streamer, err := s.streamerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if streamer == nil {
		return nil, ErrStreamerNotFound
	}
	return streamer, nil
}

func (s *StreamerService) GetByWallet(address string) (*models.Streamer, error) {
	streamer, err := s.streamerRepo.GetByWallet(address)
	if err != nil {
		return nil, err
	}
	if streamer == nil {
		return nil, ErrStreamerNotFound
	}
	return streamer, nil
}

// List returns streamers in store order. The limit is clamped to the
// configured ceiling; non-positive limits fall back to 100.
func (s *StreamerService) List(limit int) ([]models.Streamer, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > s.cfg.ListLimitCeiling {
		limit = s.cfg.ListLimitCeiling
	}
	return s.streamerRepo.ListAll(limit)
}

func (s *StreamerService) Delete(id string) error {
	existed, err := s.streamerRepo.Delete(id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrStreamerNotFound
	}
	s.log.Info("streamer deleted", zap.String("streamer_id", id))
	return nil
}

// FindMatchingTier returns the tier matching amountUSD within the configured
// tolerance, or nil.
func (s *StreamerService) FindMatchingTier(streamer *models.Streamer, amountUSD float64) *models.DonationTier {
	tier := streamer.MatchTier(amountUSD, s.cfg.TierTolerance)
	if tier == nil {
		s.log.Warn("no matching tier",
			zap.Float64("amount_usd", amountUSD),
			zap.String("streamer_id", streamer.ID),
			zap.Float64s("available", streamer.TierAmounts()),
		)
	}
	return tier
}

// ValidateActive reports whether the streamer accepts donations. All
// streamers are active in this phase; the hook exists for future suspension
// logic.
func (s *StreamerService) ValidateActive(streamer *models.Streamer) (bool, string) {
	return true, ""
}
