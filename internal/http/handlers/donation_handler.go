package handlers

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/streamtips/backend/internal/http/dto"
	"github.com/streamtips/backend/internal/services"
	"go.uber.org/zap"
)

// 0x-prefixed 32-byte transaction hash. Shape only; the chain is not
// consulted here.
var txHashRe = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

type DonationHandler struct {
	donationService *services.DonationService
	log             *zap.Logger
}

func NewDonationHandler(donationService *services.DonationService, log *zap.Logger) *DonationHandler {
	return &DonationHandler{donationService: donationService, log: log}
}

// SubmitDonation records a paid donation and returns the popup config.
// POST /api/streamer/:id/donate
func (h *DonationHandler) SubmitDonation(c *fiber.Ctx) error {
	streamerID := c.Params("id")

	var req services.SubmitDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	if req.DonorAddress == "" || req.TxHash == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "donor_address and tx_hash are required"})
	}
	if !txHashRe.MatchString(req.TxHash) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid tx_hash: " + req.TxHash})
	}

	receipt, err := h.donationService.ProcessDonation(c.Context(), streamerID, req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrStreamerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "streamer not found: " + streamerID})
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: verr.Reason})
		default:
			h.log.Error("failed to process donation", zap.String("streamer_id", streamerID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to process donation"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// GetDonation returns a single donation record.
// GET /api/donation/:id
func (h *DonationHandler) GetDonation(c *fiber.Ctx) error {
	id := c.Params("id")

	donation, err := h.donationService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrDonationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "donation not found: " + id})
		}
		h.log.Error("failed to get donation", zap.String("donation_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to retrieve donation"})
	}

	return c.JSON(donation)
}

// ListDonations returns a streamer's donations, newest first.
// GET /api/streamer/:id/donations?limit=
func (h *DonationHandler) ListDonations(c *fiber.Ctx) error {
	streamerID := c.Params("id")
	limit := c.QueryInt("limit", 100)

	donations, err := h.donationService.ListForStreamer(streamerID, limit)
	if err != nil {
		h.log.Error("failed to list donations", zap.String("streamer_id", streamerID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to retrieve donations"})
	}

	return c.JSON(donations)
}

// GetStats returns aggregate donation statistics for a streamer. An unknown
// streamer gets empty stats, not a 404.
// GET /api/streamer/:id/stats
func (h *DonationHandler) GetStats(c *fiber.Ctx) error {
	streamerID := c.Params("id")

	stats, err := h.donationService.GetStats(streamerID)
	if err != nil {
		h.log.Error("failed to get donation stats", zap.String("streamer_id", streamerID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to retrieve stats"})
	}

	return c.JSON(stats)
}
