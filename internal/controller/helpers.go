package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/internal/middleware"
	"nexfolio_backend/internal/service"
	"nexfolio_backend/pkg/utils/validation"
)

var (
	errMissingCaller = service.Unauthorized("Unauthorized")
	errInvalidBody   = errors.New("invalid request body")
)

// respondError writes err as {"error": ...}. Internal failures are logged
// and reported with their fixed message only.
func respondError(c *fiber.Ctx, err error) error {
	var se *service.Error
	if !errors.As(err, &se) {
		se = service.Internal("Internal server error", err)
	}

	if se.Kind == service.KindInternal {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), se)
	}

	body := fiber.Map{"error": se.Message}
	for k, v := range se.Details {
		body[k] = v
	}
	return c.Status(statusFor(se.Kind)).JSON(body)
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindUnauthorized:
		return fiber.StatusUnauthorized
	case service.KindForbidden:
		return fiber.StatusForbidden
	case service.KindNotFound:
		return fiber.StatusNotFound
	case service.KindValidation, service.KindConflict:
		// duplicates are reported as 400 like other bad input
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// bindJSON parses the body into dst and runs its validate tags.
func bindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return validation.Struct(dst)
}

// badRequest reports a bindJSON failure.
func badRequest(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid request",
			"issues": verr.Issues,
		})
	}
	if errors.Is(err, errInvalidBody) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	return respondError(c, err)
}

func callerID(c *fiber.Ctx) (uint, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, errMissingCaller
	}
	return id, nil
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
