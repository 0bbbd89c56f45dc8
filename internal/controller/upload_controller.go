package controller

import (
	"github.com/gofiber/fiber/v2"

	"nexfolio_backend/internal/service"
)

type UploadController struct {
	uploads *service.UploadService
}

func NewUploadController(uploads *service.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// UploadImage accepts a multipart form with a single "image" field.
func (uc *UploadController) UploadImage(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	// a missing field is reported by the service
	file, _ := c.FormFile("image")

	img, err := uc.uploads.UploadImage(c.UserContext(), userID, file)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Image uploaded successfully",
		"url":      img.URL,
		"filename": img.Filename,
	})
}
