package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/service"
	"github.com/limva/limva-api/internal/utils"
)

// AdminHandler provides HTTP endpoints for account administration.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler constructs a handler instance.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register binds the admin routes. The router is expected to carry the
// admin guard already.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/users", h.listUsers)
	router.Post("/users/:id/verify", h.verifyUser)
	router.Post("/admins", h.createAdmin)
}

func (h *AdminHandler) listUsers(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	users, err := h.service.ListUsers(withRequestContext(c), limit, offset)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Danh sách tài khoản", users)
}

func (h *AdminHandler) verifyUser(c *fiber.Ctx) error {
	user, err := h.service.VerifyUser(withRequestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Đã xác minh tài khoản", user)
}

func (h *AdminHandler) createAdmin(c *fiber.Ctx) error {
	var payload dto.AdminCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	admin, err := h.service.CreateAdmin(withRequestContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Đã tạo tài khoản quản trị", admin)
}

func (h *AdminHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Không tìm thấy tài khoản")
	case errors.Is(err, service.ErrUsernameTaken):
		return utils.SendError(c, fiber.StatusConflict, "Tên đăng nhập đã tồn tại")
	case errors.Is(err, service.ErrEmailTaken):
		return utils.SendError(c, fiber.StatusConflict, "Email đã được sử dụng")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("admin request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi xử lý yêu cầu")
	}
}
