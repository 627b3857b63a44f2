package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/streamtips/backend/internal/config"
	"github.com/streamtips/backend/internal/events"
	"github.com/streamtips/backend/internal/models"
	"github.com/streamtips/backend/internal/repositories"
	"go.uber.org/zap"
)

type DonationService struct {
	donationRepo    *repositories.DonationRepo
	streamerService *StreamerService
	validation      *ValidationService
	publisher       events.Publisher // nil when redis is not configured
	cfg             *config.Config
	log             *zap.Logger
}

func NewDonationService(
	donationRepo *repositories.DonationRepo,
	streamerService *StreamerService,
	validation *ValidationService,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *DonationService {
	return &DonationService{
		donationRepo:    donationRepo,
		streamerService: streamerService,
		validation:      validation,
		publisher:       publisher,
		cfg:             cfg,
		log:             log,
	}
}

type SubmitDonationRequest struct {
	AmountUSD    float64 `json:"amount_usd"`
	DonorAddress string  `json:"donor_address"`
	TxHash       string  `json:"tx_hash"`
	Message      *string `json:"message,omitempty"`
	ClipURL      *string `json:"clip_url,omitempty"`
}

// DonationReceipt is the popup configuration returned to the frontend after
// a donation is accepted.
type DonationReceipt struct {
	DonationID   string `json:"donation_id"`
	PopupMessage string `json:"popup_message"`
	DurationMS   int    `json:"duration_ms"`
}

// ProcessDonation runs the donation pipeline. The steps are strictly
// sequential and the only side effect, the persist, comes last, so a failure
// at any step leaves nothing to undo.
func (s *DonationService) ProcessDonation(ctx context.Context, streamerID string, req SubmitDonationRequest) (*DonationReceipt, error) {
	// 1. Resolve streamer
	streamer, err := s.streamerService.GetByID(streamerID)
	if err != nil {
		return nil, err
	}

	// 2. Streamer must accept donations
	if active, reason := s.streamerService.ValidateActive(streamer); !active {
		return nil, validationf("streamer is not accepting donations: %s", reason)
	}

	// 3. Donor address shape
	if !s.validation.ValidateWalletAddress(req.DonorAddress) {
		return nil, validationf("invalid donor address: %s", req.DonorAddress)
	}

	// 4. The streamer's own wallet. A registered streamer should always pass
	// this; failing here means our stored data is bad.
	if !s.validation.ValidateWalletAddress(streamer.WalletAddress) {
		s.log.Error("streamer has invalid wallet",
			zap.String("streamer_id", streamer.ID),
			zap.String("wallet_address", streamer.WalletAddress),
		)
		return nil, ErrStreamerWalletInvalid
	}

	// 5. Amount range
	if ok, reason := s.validation.ValidateAmountRange(req.AmountUSD); !ok {
		return nil, &ValidationError{Reason: reason}
	}

	// 6. Tier match
	tier := s.streamerService.FindMatchingTier(streamer, req.AmountUSD)
	if tier == nil {
		return nil, validationf("invalid donation amount: $%v, must match one of: %v",
			req.AmountUSD, streamer.TierAmounts())
	}

	// 7. Sanitize message (may come back absent)
	message := s.validation.SanitizeMessage(req.Message, s.cfg.MaxMessageLength)

	// 8. Persist
	donation := &models.DonationMessage{
		DonationID:   uuid.New().String(),
		StreamerID:   streamerID,
		AmountUSD:    req.AmountUSD,
		DonorAddress: req.DonorAddress,
		TxHash:       req.TxHash,
		Timestamp:    time.Now().Unix(),
		Message:      message,
		ClipURL:      req.ClipURL,
	}
	if err := s.donationRepo.Save(donation); err != nil {
		return nil, err
	}

	s.log.Info("donation processed",
		zap.Float64("amount_usd", donation.AmountUSD),
		zap.String("donation_id", donation.DonationID),
		zap.String("streamer_id", streamerID),
		zap.String("tx_hash", donation.TxHash),
	)

	s.publishAccepted(ctx, streamer, donation, tier)

	// 9. Popup configuration
	return &DonationReceipt{
		DonationID:   donation.DonationID,
		PopupMessage: tier.PopupMessage,
		DurationMS:   tier.DurationMS,
	}, nil
}

// publishAccepted pushes the popup event for overlay pages. Best effort: the
// donation is already persisted, so a publish failure never fails the
// request.
func (s *DonationService) publishAccepted(ctx context.Context, streamer *models.Streamer, donation *models.DonationMessage, tier *models.DonationTier) {
	if s.publisher == nil {
		return
	}

	payload := map[string]any{
		"streamer_id":   streamer.ID,
		"donation_id":   donation.DonationID,
		"amount_usd":    donation.AmountUSD,
		"popup_message": tier.PopupMessage,
		"duration_ms":   tier.DurationMS,
	}
	if donation.Message != nil {
		payload["message"] = *donation.Message
	}

	err := s.publisher.Publish(ctx, events.StreamDonations, events.Event{
		Type:    events.EventDonationAccepted,
		Payload: payload,
	})
	if err != nil {
		s.log.Warn("failed to publish donation event",
			zap.String("donation_id", donation.DonationID),
			zap.Error(err),
		)
	}
}

func (s *DonationService) GetByID(id string) (*models.DonationMessage, error) {
	donation, err := s.donationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, ErrDonationNotFound
	}
	return donation, nil
}

// ListForStreamer returns the streamer's donations, newest first. The limit
// is clamped to the configured ceiling; non-positive limits fall back to 100.
func (s *DonationService) ListForStreamer(streamerID string, limit int) ([]models.DonationMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > s.cfg.ListLimitCeiling {
		limit = s.cfg.ListLimitCeiling
	}
	return s.donationRepo.ListByStreamer(streamerID, limit)
}

func (s *DonationService) GetStats(streamerID string) (*models.DonationStats, error) {
	return s.donationRepo.GetStats(streamerID)
}
