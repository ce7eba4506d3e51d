package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/middleware"
	"github.com/limva/limva-api/internal/service"
	"github.com/limva/limva-api/internal/utils"
)

// EngagementHandler provides HTTP endpoints for likes and ratings.
type EngagementHandler struct {
	service service.EngagementService
	logger  zerolog.Logger
}

// NewEngagementHandler constructs a handler instance.
func NewEngagementHandler(service service.EngagementService, logger zerolog.Logger) *EngagementHandler {
	return &EngagementHandler{
		service: service,
		logger:  logger.With().Str("component", "engagement_handler").Logger(),
	}
}

// Register binds the engagement routes. Like counts and rating averages are
// public; the rest carry the auth guard on the individual route.
func (h *EngagementHandler) Register(router fiber.Router, auth fiber.Handler) {
	router.Post("/likes", auth, h.toggleLike)
	router.Get("/likes/check", auth, h.checkLike)
	router.Get("/likes/count", h.countLikes)
	router.Post("/ratings", auth, h.rate)
	router.Get("/comments/:id/rating", h.averageRating)
}

func (h *EngagementHandler) toggleLike(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	var payload dto.LikeToggleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	response, err := h.service.ToggleLike(withRequestContext(c), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Cập nhật lượt thích", response)
}

func (h *EngagementHandler) countLikes(c *fiber.Ctx) error {
	response, err := h.service.CountLikes(withRequestContext(c), optionalQueryID(c, "post_id"), optionalQueryID(c, "comment_id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Số lượt thích", response)
}

func (h *EngagementHandler) checkLike(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	response, err := h.service.CheckLike(withRequestContext(c), userID, optionalQueryID(c, "post_id"), optionalQueryID(c, "comment_id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Trạng thái lượt thích", response)
}

func (h *EngagementHandler) rate(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	var payload dto.RatingCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	response, err := h.service.Rate(withRequestContext(c), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Đánh giá thành công", response)
}

func (h *EngagementHandler) averageRating(c *fiber.Ctx) error {
	average, err := h.service.AverageRating(withRequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Điểm đánh giá trung bình", fiber.Map{"average": average})
}

func (h *EngagementHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNoEngagementTarget):
		return utils.SendError(c, fiber.StatusBadRequest, "Cần chọn bài viết hoặc bình luận")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("engagement request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi xử lý yêu cầu")
	}
}
