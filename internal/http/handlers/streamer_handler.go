package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/streamtips/backend/internal/http/dto"
	"github.com/streamtips/backend/internal/services"
	"go.uber.org/zap"
)

type StreamerHandler struct {
	streamerService *services.StreamerService
	log             *zap.Logger
}

func NewStreamerHandler(streamerService *services.StreamerService, log *zap.Logger) *StreamerHandler {
	return &StreamerHandler{streamerService: streamerService, log: log}
}

// CreateStreamer registers a new streamer profile.
// POST /api/streamer
func (h *StreamerHandler) CreateStreamer(c *fiber.Ctx) error {
	var req services.CreateStreamerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	streamer, err := h.streamerService.CreateStreamer(req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: verr.Reason})
		case errors.Is(err, services.ErrWalletTaken):
			h.log.Warn("duplicate wallet registration attempted", zap.String("wallet_address", req.WalletAddress))
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "wallet address " + req.WalletAddress + " is already registered"})
		default:
			h.log.Error("failed to create streamer", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to create streamer profile"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(streamer)
}

// GetStreamer returns a streamer profile by id.
// GET /api/streamer/:id
func (h *StreamerHandler) GetStreamer(c *fiber.Ctx) error {
	id := c.Params("id")

	streamer, err := h.streamerService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrStreamerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "streamer not found: " + id})
		}
		h.log.Error("failed to get streamer", zap.String("streamer_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to retrieve streamer"})
	}

	return c.JSON(streamer)
}

// GetStreamerByWallet looks a streamer up by wallet address.
// GET /api/streamer/by-wallet/:wallet
func (h *StreamerHandler) GetStreamerByWallet(c *fiber.Ctx) error {
	wallet := c.Params("wallet")

	streamer, err := h.streamerService.GetByWallet(wallet)
	if err != nil {
		if errors.Is(err, services.ErrStreamerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "no streamer found with wallet: " + wallet})
		}
		h.log.Error("failed to get streamer by wallet", zap.String("wallet_address", wallet), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to retrieve streamer"})
	}

	return c.JSON(streamer)
}

// ListStreamers returns registered streamers in store order.
// GET /api/streamers?limit=
func (h *StreamerHandler) ListStreamers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)

	streamers, err := h.streamerService.List(limit)
	if err != nil {
		h.log.Error("failed to list streamers", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to retrieve streamers"})
	}

	return c.JSON(streamers)
}

// DeleteStreamer removes a streamer profile.
// DELETE /api/streamer/:id
func (h *StreamerHandler) DeleteStreamer(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.streamerService.Delete(id); err != nil {
		if errors.Is(err, services.ErrStreamerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "streamer not found: " + id})
		}
		h.log.Error("failed to delete streamer", zap.String("streamer_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to delete streamer"})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
