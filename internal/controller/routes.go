package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every controller the API exposes.
type Handlers struct {
	Auth         *AuthController
	Profile      *ProfileController
	Provider     *ProviderController
	Portfolio    *PortfolioController
	Booking      *BookingController
	Review       *ReviewController
	Subscription *SubscriptionController
	Upload       *UploadController
	Health       *HealthController
}

// SetupRoutes mounts the API under /api. requireAuth guards every route that
// needs a caller identity.
func SetupRoutes(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api")

	api.Get("/health", h.Health.Check)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)

	api.Get("/me", requireAuth, h.Auth.Me)
	api.Get("/me/logins", requireAuth, h.Auth.RecentLogins)

	// Profile
	profile := api.Group("/profile", requireAuth)
	profile.Post("/create", h.Profile.Create)
	profile.Get("/", h.Profile.Get)

	// Provider: setup is protected, discovery is public
	api.Post("/provider/setup", requireAuth, h.Provider.Setup)
	api.Get("/provider", h.Provider.List)
	api.Get("/provider/:id", h.Provider.Get)

	// Portfolio
	portfolio := api.Group("/portfolio", requireAuth)
	portfolio.Post("/add", h.Portfolio.Add)
	portfolio.Delete("/:id", h.Portfolio.Delete)

	// Bookings
	api.Post("/booking/create", requireAuth, h.Booking.Create)
	api.Patch("/booking/:id/status", requireAuth, h.Booking.UpdateStatus)
	api.Get("/bookings", requireAuth, h.Booking.List)

	// Reviews
	api.Post("/review/create", requireAuth, h.Review.Create)

	// Uploads
	api.Post("/upload/image", requireAuth, h.Upload.UploadImage)

	// Subscription
	subscriptions := api.Group("/subscription")
	subscriptions.Get("/tiers", h.Subscription.ListTiers)
	subscriptions.Get("/current", requireAuth, h.Subscription.Current)
	subscriptions.Post("/upgrade", requireAuth, h.Subscription.Upgrade)
	subscriptions.Post("/cancel", requireAuth, h.Subscription.Cancel)
	subscriptions.Get("/history", requireAuth, h.Subscription.History)
}

// ErrorHandler reports errors that escape a handler. Fiber errors keep their
// status; anything else is logged and answered with a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}

	log.Printf("%s %s unhandled error: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
