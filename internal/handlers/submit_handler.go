package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vaaler2/hirewise-backend/internal/models"
	"github.com/vaaler2/hirewise-backend/internal/repositories"
	"github.com/vaaler2/hirewise-backend/internal/services"
)

type SubmitHandler struct {
	linkRepo       repositories.LinkRepository
	appRepo        repositories.ApplicationRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewSubmitHandler(
	linkRepo repositories.LinkRepository,
	appRepo repositories.ApplicationRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *SubmitHandler {
	return &SubmitHandler{
		linkRepo:       linkRepo,
		appRepo:        appRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleSubmitForm handles POST /submit-form/:link_id
func (h *SubmitHandler) HandleSubmitForm(c *fiber.Ctx) error {
	linkID, err := uuid.Parse(c.Params("link_id"))
	if err != nil {
		// Malformed ids cannot name any link
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invitation link not found",
		})
	}

	link, err := h.linkRepo.FindByID(linkID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invitation link not found",
		})
	}

	if link.Expired(time.Now()) {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": "Invitation link has expired",
		})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	phone := strings.TrimSpace(c.FormValue("phone"))
	email := strings.TrimSpace(c.FormValue("email"))
	about := strings.TrimSpace(c.FormValue("about"))

	for field, value := range map[string]string{
		"name":  name,
		"phone": phone,
		"email": email,
		"about": about,
	} {
		if value == "" {
			verr := &models.ValidationError{Field: field, Reason: "required"}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Error(),
			})
		}
	}

	cvFile, err := c.FormFile("cv_image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv_image file is required",
		})
	}

	if cvFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(cvFile, "cv")
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidFileType) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	app := &models.Application{
		ID:          uuid.New(),
		LinkID:      link.ID,
		Name:        name,
		Phone:       phone,
		Email:       email,
		About:       about,
		CVImagePath: filePath,
		SubmittedAt: time.Now(),
	}

	if err := h.appRepo.Append(app); err != nil {
		// Cleanup the stored CV if the record could not be written
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save application",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.SubmitFormResponse{
		Message: "Application submitted successfully",
	})
}
