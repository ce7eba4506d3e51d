package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/limva/limva-api/internal/utils"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and
// binds the account identity to the request.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
		}

		userID := extractUserIDFromClaims(claims)
		if userID == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Yêu cầu đăng nhập")
		}

		c.Locals("user_id", userID)
		c.Locals("is_admin", extractAdminFromClaims(claims))

		return c.Next()
	}
}

func extractUserIDFromClaims(claims jwt.MapClaims) string {
	keys := []string{"sub", "user_id", "id"}
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if id, ok := value.(string); ok && strings.TrimSpace(id) != "" {
				return strings.TrimSpace(id)
			}
		}
	}

	return ""
}

func extractAdminFromClaims(claims jwt.MapClaims) bool {
	if value, ok := claims["is_admin"]; ok {
		if isAdmin, ok := value.(bool); ok {
			return isAdmin
		}
	}

	return false
}

// UserID returns the authenticated account identifier bound to the request.
func UserID(c *fiber.Ctx) string {
	if value := c.Locals("user_id"); value != nil {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// IsAdmin reports whether the authenticated account has admin rights.
func IsAdmin(c *fiber.Ctx) bool {
	if value := c.Locals("is_admin"); value != nil {
		if isAdmin, ok := value.(bool); ok {
			return isAdmin
		}
	}
	return false
}
