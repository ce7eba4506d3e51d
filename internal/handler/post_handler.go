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

// PostHandler provides HTTP endpoints for forum posts.
type PostHandler struct {
	service service.PostService
	logger  zerolog.Logger
}

// NewPostHandler constructs a handler instance.
func NewPostHandler(service service.PostService, logger zerolog.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		logger:  logger.With().Str("component", "post_handler").Logger(),
	}
}

// Register binds the post routes. Reading is public; writing carries the
// auth guard on the individual route.
func (h *PostHandler) Register(router fiber.Router, auth fiber.Handler) {
	router.Get("/posts", h.list)
	router.Get("/posts/:id", h.get)
	router.Post("/posts", auth, h.create)
	router.Delete("/posts/:id", auth, h.delete)
}

func (h *PostHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	posts, err := h.service.List(withRequestContext(c), limit, offset)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Danh sách bài viết", posts)
}

func (h *PostHandler) get(c *fiber.Ctx) error {
	post, err := h.service.Get(withRequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Bài viết", post)
}

func (h *PostHandler) create(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	var payload dto.PostCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	post, err := h.service.Create(withRequestContext(c), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Tạo bài viết thành công", post)
}

func (h *PostHandler) delete(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	if err := h.service.Delete(withRequestContext(c), userID, middleware.IsAdmin(c), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Xóa bài viết thành công", nil)
}

func (h *PostHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Không tìm thấy bài viết")
	case errors.Is(err, service.ErrPostForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "Không có quyền truy cập")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("post request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi xử lý bài viết")
	}
}
