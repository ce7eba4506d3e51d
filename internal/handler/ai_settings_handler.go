package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/limva/limva-api/internal/dto"
	"github.com/limva/limva-api/internal/service"
	"github.com/limva/limva-api/internal/utils"
)

// AISettingsHandler provides HTTP endpoints for the AI model toggles.
type AISettingsHandler struct {
	service service.AISettingsService
	logger  zerolog.Logger
}

// NewAISettingsHandler constructs a handler instance.
func NewAISettingsHandler(service service.AISettingsService, logger zerolog.Logger) *AISettingsHandler {
	return &AISettingsHandler{
		service: service,
		logger:  logger.With().Str("component", "ai_settings_handler").Logger(),
	}
}

// Register binds both routes on the same path: reading the toggles is
// public, updating them is gated per route to authenticated admins.
func (h *AISettingsHandler) Register(router fiber.Router, auth, admin fiber.Handler) {
	router.Get("/ai-settings", h.get)
	router.Put("/ai-settings", auth, admin, h.update)
}

func (h *AISettingsHandler) get(c *fiber.Ctx) error {
	settings, err := h.service.Get(withRequestContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("ai settings read failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi tải cấu hình AI")
	}

	return utils.SendSuccess(c, "Cấu hình AI", settings)
}

func (h *AISettingsHandler) update(c *fiber.Ctx) error {
	var payload dto.AISettingsUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	settings, err := h.service.Update(withRequestContext(c), payload)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("ai settings update failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Lỗi khi cập nhật cấu hình AI")
	}

	return utils.SendSuccess(c, "Đã cập nhật cấu hình AI", settings)
}
