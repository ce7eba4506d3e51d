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

// CommentHandler provides HTTP endpoints for comments.
type CommentHandler struct {
	service service.CommentService
	logger  zerolog.Logger
}

// NewCommentHandler constructs a handler instance.
func NewCommentHandler(service service.CommentService, logger zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		logger:  logger.With().Str("component", "comment_handler").Logger(),
	}
}

// Register binds the comment routes. Reading is public; writing carries the
// auth guard on the individual route.
func (h *CommentHandler) Register(router fiber.Router, auth fiber.Handler) {
	router.Get("/posts/:id/comments", h.listByPost)
	router.Post("/comments", auth, h.create)
	router.Delete("/comments/:id", auth, h.delete)
}

func (h *CommentHandler) listByPost(c *fiber.Ctx) error {
	comments, err := h.service.ListByPost(withRequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Danh sách bình luận", comments)
}

func (h *CommentHandler) create(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	var payload dto.CommentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	comment, err := h.service.Create(withRequestContext(c), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Tạo bình luận thành công", comment)
}

func (h *CommentHandler) delete(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	if err := h.service.Delete(withRequestContext(c), userID, middleware.IsAdmin(c), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Xóa bình luận thành công", nil)
}

func (h *CommentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Không tìm thấy bài viết")
	case errors.Is(err, service.ErrCommentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Không tìm thấy bình luận")
	case errors.Is(err, service.ErrCommentForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "Không có quyền truy cập")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("comment request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi xử lý bình luận")
	}
}
