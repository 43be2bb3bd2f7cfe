package handlers

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vaaler2/hirewise-backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
	cronSecret    string
}

func NewReportHandler(reportService services.ReportService, cronSecret string) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		cronSecret:    cronSecret,
	}
}

// HandleWeeklyReport handles POST /internal/weekly-report, the endpoint an
// external scheduler hits once a week. Guarded by a bearer token.
func (h *ReportHandler) HandleWeeklyReport(c *fiber.Ctx) error {
	if h.cronSecret == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "report trigger is not configured",
		})
	}

	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid token",
		})
	}

	sent, err := h.reportService.SendWeeklyReports()
	if err != nil {
		if errors.Is(err, services.ErrSMTPNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "email delivery is not configured",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send weekly reports",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Weekly reports sent",
		"sent":    sent,
	})
}
