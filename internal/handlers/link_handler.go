package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vaaler2/hirewise-backend/internal/models"
	"github.com/vaaler2/hirewise-backend/internal/repositories"
)

type LinkHandler struct {
	linkRepo repositories.LinkRepository
	baseURL  string
	linkTTL  time.Duration
}

func NewLinkHandler(
	linkRepo repositories.LinkRepository,
	baseURL string,
	linkTTL time.Duration,
) *LinkHandler {
	return &LinkHandler{
		linkRepo: linkRepo,
		baseURL:  strings.TrimRight(baseURL, "/"),
		linkTTL:  linkTTL,
	}
}

// HandleGenerateLink handles POST /generate-link
func (h *LinkHandler) HandleGenerateLink(c *fiber.Ctx) error {
	var req models.GenerateLinkRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ClientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "client_id is required",
		})
	}

	if req.Profession == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "profession is required",
		})
	}

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "a valid email is required",
		})
	}

	now := time.Now()
	link := &models.InvitationLink{
		ID:           uuid.New(),
		ClientID:     req.ClientID,
		Profession:   req.Profession,
		CompanyEmail: req.Email,
		ExpiresAt:    now.Add(h.linkTTL),
		CreatedAt:    now,
	}

	if err := h.linkRepo.Create(link); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create invitation link",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.GenerateLinkResponse{
		Link:      fmt.Sprintf("%s/form/%s", h.baseURL, link.ID),
		LinkID:    link.ID.String(),
		ExpiresAt: link.ExpiresAt,
	})
}
