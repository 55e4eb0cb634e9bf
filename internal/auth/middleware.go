package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const localsUserID = "userID"

// Middleware guards protected routes. It accepts the session token from
// the cookie first, then from a bearer Authorization header, and stores
// the authenticated user ID in the request locals.
func Middleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required. Please log in.")
		}

		userID, err := ParseToken(secret, raw)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "Session expired. Please log in again.")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authentication token.")
		}

		c.Locals(localsUserID, userID)
		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) string {
	if v := c.Cookies(SessionCookie); v != "" {
		return v
	}
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// UserID returns the authenticated user ID set by Middleware.
func UserID(c *fiber.Ctx) (string, error) {
	v, ok := c.Locals(localsUserID).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", errors.New("user not authenticated")
	}
	return v, nil
}
