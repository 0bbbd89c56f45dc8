package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexfolio_backend/pkg/utils/jwt"
)

func newApp(tokens *jwt.Manager) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthMiddleware(tokens, "sid"), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": id})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewManager("middleware-test-secret-0123456789abcdef", time.Hour)
	other := jwt.NewManager("a-completely-different-secret-0123456789", time.Hour)
	app := newApp(tokens)

	good, err := tokens.GenerateToken(7, "u@example.com")
	require.NoError(t, err)
	forged, err := other.GenerateToken(7, "u@example.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no token", func(r *http.Request) {}, fiber.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+good) }, fiber.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "sid", Value: good}) }, fiber.StatusOK},
		{"wrong secret", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+forged) }, fiber.StatusUnauthorized},
		{"garbage", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "sid", Value: "nope"}) }, fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.setup(req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.JSONEq(t, `{"id":7}`, string(body))
			}
		})
	}
}
