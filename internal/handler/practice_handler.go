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

// PracticeHandler provides HTTP endpoints for the practice quiz lifecycle.
type PracticeHandler struct {
	service service.PracticeService
	logger  zerolog.Logger
}

// NewPracticeHandler constructs a handler instance.
func NewPracticeHandler(service service.PracticeService, logger zerolog.Logger) *PracticeHandler {
	return &PracticeHandler{
		service: service,
		logger:  logger.With().Str("component", "practice_handler").Logger(),
	}
}

// Register binds the practice routes. Every route requires authentication;
// question generation is the only one that calls the AI and carries the
// rate limiter.
func (h *PracticeHandler) Register(router fiber.Router, auth, limit fiber.Handler) {
	router.Post("/homework/:id/practice", auth, limit, h.generate)
	router.Get("/homework/:id/practice", auth, h.list)
	router.Post("/homework/:id/practice/attempts", auth, h.startAttempt)
	router.Post("/practice/attempts/:id/answers", auth, h.submitAnswer)
}

func (h *PracticeHandler) generate(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	questions, err := h.service.Generate(withRequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Đã tạo câu hỏi luyện tập", questions)
}

func (h *PracticeHandler) list(c *fiber.Ctx) error {
	questions, err := h.service.List(withRequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Danh sách câu hỏi luyện tập", questions)
}

func (h *PracticeHandler) startAttempt(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	attempt, err := h.service.StartAttempt(withRequestContext(c), userID, c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Bắt đầu lượt luyện tập", attempt)
}

func (h *PracticeHandler) submitAnswer(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	var payload dto.PracticeAnswerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	result, err := h.service.SubmitAnswer(withRequestContext(c), userID, c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Đã ghi nhận câu trả lời", result)
}

func (h *PracticeHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Không tìm thấy bài làm")
	case errors.Is(err, service.ErrAttemptNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Không tìm thấy lượt luyện tập")
	case errors.Is(err, service.ErrAttemptForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "Không có quyền truy cập")
	case errors.Is(err, service.ErrAttemptCompleted):
		return utils.SendError(c, fiber.StatusConflict, "Lượt luyện tập đã hoàn thành")
	case errors.Is(err, service.ErrNoQuestions):
		return utils.SendError(c, fiber.StatusNotFound, "Chưa có câu hỏi luyện tập")
	case errors.Is(err, service.ErrAIUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "Hệ thống AI hiện không khả dụng")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("practice request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi xử lý luyện tập")
	}
}
