package controller

import (
	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/internal/service"
)

type PortfolioController struct {
	portfolio *service.PortfolioService
}

func NewPortfolioController(portfolio *service.PortfolioService) *PortfolioController {
	return &PortfolioController{portfolio: portfolio}
}

func (pc *PortfolioController) Add(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req AddPortfolioItemRequest
	if err := bindJSON(c, &req); err != nil {
		return badRequest(c, err)
	}

	item, err := pc.portfolio.Add(c.UserContext(), userID, service.AddPortfolioItemInput{
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"itemId":  item.ID,
	})
}

func (pc *PortfolioController) Delete(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	if err := pc.portfolio.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
