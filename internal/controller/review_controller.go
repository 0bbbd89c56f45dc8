package controller

import (
	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/internal/service"
)

type ReviewController struct {
	reviews *service.ReviewService
}

func NewReviewController(reviews *service.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

func (rc *ReviewController) Create(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateReviewRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, err)
	}

	review, err := rc.reviews.Create(c.UserContext(), userID, service.CreateReviewInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"reviewId": review.ID,
	})
}
