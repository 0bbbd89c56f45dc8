package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/internal/service"
)

const recentLoginsLimit = 10

type AuthController struct {
	auth         *service.AuthService
	cookieName   string
	cookieTTL    time.Duration
	secureCookie bool
}

func NewAuthController(auth *service.AuthService, cookieName string, cookieTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		auth:         auth,
		cookieName:   cookieName,
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, err)
	}

	user, token, err := ac.auth.Register(c.UserContext(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return respondError(c, err)
	}

	ac.setSession(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"userId":  user.ID,
		"token":   token,
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, err)
	}

	user, token, err := ac.auth.Login(c.UserContext(), req.Email, req.Password, service.LoginMeta{
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return respondError(c, err)
	}

	ac.setSession(c, token)
	return c.JSON(fiber.Map{
		"success": true,
		"userId":  user.ID,
		"token":   token,
	})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.ClearCookie(ac.cookieName)
	return c.JSON(fiber.Map{"success": true})
}

// Me returns the authenticated user.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := ac.auth.User(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newUserResponse(user))
}

func (ac *AuthController) RecentLogins(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	logins, err := ac.auth.RecentLogins(c.UserContext(), userID, recentLoginsLimit)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]LoginEntryResponse, 0, len(logins))
	for _, l := range logins {
		out = append(out, LoginEntryResponse{Device: l.Device, IP: l.IP, CreatedAt: l.CreatedAt})
	}
	return c.JSON(out)
}

func (ac *AuthController) setSession(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     ac.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ac.cookieTTL),
		HTTPOnly: true,
		Secure:   ac.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
