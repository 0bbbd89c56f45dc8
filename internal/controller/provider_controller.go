package controller

import (
	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/internal/service"
)

type ProviderController struct {
	providers *service.ProviderService
}

func NewProviderController(providers *service.ProviderService) *ProviderController {
	return &ProviderController{providers: providers}
}

func (pc *ProviderController) Setup(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req SetupProviderRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, err)
	}

	provider, err := pc.providers.Setup(c.UserContext(), userID, service.SetupProviderInput{
		Profession:   req.Profession,
		ServiceTypes: req.ServiceTypes,
		Pricing:      req.Pricing,
		TravelRadius: req.TravelRadius,
		SocialLinks:  req.SocialLinks,
		Availability: req.Availability,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"providerId": provider.ID,
	})
}

// List is public. Filters come from ?search=&serviceType=&location=.
func (pc *ProviderController) List(c *fiber.Ctx) error {
	providers, err := pc.providers.List(c.UserContext(), service.ProviderFilter{
		Search:      c.Query("search"),
		ServiceType: c.Query("serviceType"),
		Location:    c.Query("location"),
	})
	if err != nil {
		return respondError(c, err)
	}

	out := make([]ProviderListItem, 0, len(providers))
	for i := range providers {
		out = append(out, newProviderListItem(&providers[i]))
	}
	return c.JSON(out)
}

func (pc *ProviderController) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid provider ID",
		})
	}

	provider, err := pc.providers.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProviderDetail(provider))
}
