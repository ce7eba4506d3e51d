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

// HomeworkHandler provides HTTP endpoints for the AI homework checker.
type HomeworkHandler struct {
	service service.HomeworkService
	logger  zerolog.Logger
}

// NewHomeworkHandler constructs a handler instance.
func NewHomeworkHandler(service service.HomeworkService, logger zerolog.Logger) *HomeworkHandler {
	return &HomeworkHandler{
		service: service,
		logger:  logger.With().Str("component", "homework_handler").Logger(),
	}
}

// Register binds the homework routes. Every route requires authentication;
// the AI-backed ones additionally pass the rate limiter.
func (h *HomeworkHandler) Register(router fiber.Router, auth, limit fiber.Handler) {
	router.Post("/homework", auth, limit, h.submit)
	router.Get("/homework/:id", auth, h.get)
	router.Post("/homework/:id/chat", auth, limit, h.chat)
}

func (h *HomeworkHandler) submit(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	var payload dto.HomeworkSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	response, err := h.service.Submit(withRequestContext(c), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Đã phân tích bài làm", response)
}

func (h *HomeworkHandler) get(c *fiber.Ctx) error {
	response, err := h.service.Get(withRequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Bài làm", response)
}

func (h *HomeworkHandler) chat(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	var payload dto.HomeworkChatRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	response, err := h.service.Chat(withRequestContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Phản hồi từ trợ lý", response)
}

func (h *HomeworkHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Không tìm thấy bài làm")
	case errors.Is(err, service.ErrAIUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "Hệ thống AI hiện không khả dụng")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("homework request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi phân tích bài làm")
	}
}
