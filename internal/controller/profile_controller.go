package controller

import (
	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/internal/model"
	"nexfolio_backend/internal/service"
)

type ProfileController struct {
	profiles *service.ProfileService
}

func NewProfileController(profiles *service.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

func (pc *ProfileController) Create(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, err)
	}

	profile, err := pc.profiles.Create(c.UserContext(), userID, service.CreateProfileInput{
		Handle:      req.Handle,
		Role:        model.Role(req.Role),
		Bio:         req.Bio,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"profileId": profile.ID,
	})
}

func (pc *ProfileController) Get(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	profile, err := pc.profiles.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProfileResponse(profile))
}
