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

// ProfileHandler provides HTTP endpoints for account profiles.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

// NewProfileHandler constructs a handler instance.
func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register binds the profile routes. The username lookup is public; the /me
// routes carry the auth guard on the individual route.
func (h *ProfileHandler) Register(router fiber.Router, auth fiber.Handler) {
	router.Get("/me", auth, h.me)
	router.Put("/me", auth, h.update)
	router.Post("/me/avatar", auth, h.uploadAvatar)
	router.Get("/users/:username", h.byUsername)
}

func (h *ProfileHandler) me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	profile, err := h.service.Get(withRequestContext(c), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Thông tin tài khoản", profile)
}

func (h *ProfileHandler) byUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	profile, err := h.service.GetByUsername(withRequestContext(c), username)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Thông tin tài khoản", profile)
}

func (h *ProfileHandler) update(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	profile, err := h.service.Update(withRequestContext(c), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Cập nhật thông tin thành công", profile)
}

func (h *ProfileHandler) uploadAvatar(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Thiếu tệp ảnh đại diện")
	}

	response, err := h.service.UploadAvatar(withRequestContext(c), userID, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Cập nhật ảnh đại diện thành công", response)
}

func (h *ProfileHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Không tìm thấy tài khoản")
	case errors.Is(err, service.ErrAvatarTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "Ảnh đại diện vượt quá kích thước cho phép")
	case errors.Is(err, service.ErrAvatarNotImage):
		return utils.SendError(c, fiber.StatusBadRequest, "Tệp tải lên phải là hình ảnh")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("profile request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi xử lý yêu cầu")
	}
}
