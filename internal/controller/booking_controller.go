package controller

import (
	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/internal/model"
	"nexfolio_backend/internal/service"
)

type BookingController struct {
	bookings *service.BookingService
}

func NewBookingController(bookings *service.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

func (bc *BookingController) Create(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateBookingRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, err)
	}

	date, err := service.ParseBookingDate(req.BookingDate)
	if err != nil {
		return respondError(c, err)
	}

	booking, err := bc.bookings.Create(c.UserContext(), userID, service.CreateBookingInput{
		ProviderID:  req.ProviderID,
		ServiceType: req.ServiceType,
		BookingDate: date,
		BookingTime: req.BookingTime,
		IsTrial:     *req.IsTrial,
		Price:       *req.Price,
		Notes:       req.Notes,
		Location:    req.Location,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"bookingId": booking.ID,
	})
}

// List returns the provider view or the client view depending on the caller.
func (bc *BookingController) List(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	bookings, err := bc.bookings.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, newBookingResponse(&bookings[i]))
	}
	return c.JSON(out)
}

func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var req UpdateBookingStatusRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, err)
	}

	if err := bc.bookings.UpdateStatus(c.UserContext(), userID, id, model.BookingStatus(req.Status)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
