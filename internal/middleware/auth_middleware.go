package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/pkg/utils/jwt"
)

// TokenVerifier turns a session token into the caller's claims.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware resolves the caller from the session cookie or a Bearer
// header and stores the claims under "user". Requests without a valid token
// are rejected with 401.
func AuthMiddleware(verifier TokenVerifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c, cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// UserID returns the authenticated caller's user ID.
func UserID(c *fiber.Ctx) (uint, bool) {
	claims, ok := c.Locals("user").(*jwt.Claims)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.UserID, true
}

func sessionToken(c *fiber.Ctx, cookieName string) string {
	if auth := c.Get(fiber.HeaderAuthorization); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return c.Cookies(cookieName)
}
