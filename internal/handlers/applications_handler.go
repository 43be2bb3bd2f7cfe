package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vaaler2/hirewise-backend/internal/models"
	"github.com/vaaler2/hirewise-backend/internal/repositories"
	"github.com/vaaler2/hirewise-backend/internal/services"
)

type ApplicationsHandler struct {
	linkRepo  repositories.LinkRepository
	evaluator services.EvaluatorService
}

func NewApplicationsHandler(
	linkRepo repositories.LinkRepository,
	evaluator services.EvaluatorService,
) *ApplicationsHandler {
	return &ApplicationsHandler{
		linkRepo:  linkRepo,
		evaluator: evaluator,
	}
}

// HandleGetApplications handles GET /applications/:link_id
func (h *ApplicationsHandler) HandleGetApplications(c *fiber.Ctx) error {
	linkID, err := uuid.Parse(c.Params("link_id"))
	if err != nil {
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

	result, err := h.evaluator.EvaluateLink(c.UserContext(), link)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to evaluate applications",
		})
	}

	return c.JSON(models.ApplicationsResponse{
		LinkID:       link.ID.String(),
		ClientID:     link.ClientID,
		Profession:   link.Profession,
		CompanyEmail: link.CompanyEmail,
		Applications: result.Applications,
		Evaluation:   result.Narrative,
	})
}
