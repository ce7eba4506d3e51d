package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limva/limva-api/internal/utils"
)

// RequireAdmin ensures that the authenticated account has admin rights.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return utils.SendError(c, fiber.StatusForbidden, "Không có quyền truy cập")
		}
		return c.Next()
	}
}
