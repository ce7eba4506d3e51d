package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/limva/limva-api/internal/models"
	"github.com/limva/limva-api/internal/service"
	"github.com/limva/limva-api/internal/utils"
)

// RankingHandler provides HTTP endpoints for the monthly leaderboards.
type RankingHandler struct {
	service service.RankingService
	logger  zerolog.Logger
}

// NewRankingHandler constructs a handler instance.
func NewRankingHandler(service service.RankingService, logger zerolog.Logger) *RankingHandler {
	return &RankingHandler{
		service: service,
		logger:  logger.With().Str("component", "ranking_handler").Logger(),
	}
}

// Register binds the ranking routes.
func (h *RankingHandler) Register(router fiber.Router) {
	router.Get("/rankings/:type", h.list)
}

// RegisterAdmin binds the admin-only rollover trigger.
func (h *RankingHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/rankings/rollover", h.rollover)
}

func (h *RankingHandler) list(c *fiber.Ctx) error {
	scope := c.Params("type")
	if !models.ValidRankingScope(scope) {
		return utils.SendError(c, fiber.StatusBadRequest, "Bảng xếp hạng không hợp lệ")
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	rankings, err := h.service.List(withRequestContext(c), scope, limit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("ranking request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi tải bảng xếp hạng")
	}

	return utils.SendSuccess(c, "Bảng xếp hạng", rankings)
}

func (h *RankingHandler) rollover(c *fiber.Ctx) error {
	if err := h.service.Rollover(withRequestContext(c)); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("manual rollover failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi chốt bảng xếp hạng")
	}

	return utils.SendSuccess(c, "Đã chốt bảng xếp hạng tháng", nil)
}
