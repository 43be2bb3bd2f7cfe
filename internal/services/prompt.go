package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vaaler2/hirewise-backend/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEvaluationPrompt enumerates every application for one invitation
// link into a single review prompt. cvExcerpts carries extracted CV text
// keyed by application id; entries are optional.
func (pb *PromptBuilder) BuildEvaluationPrompt(profession string, apps []models.Application, cvExcerpts map[uuid.UUID]string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"The following candidates applied for a %s position. Review each one "+
			"and give a short assessment of how suitable they are for the role, "+
			"then name the strongest candidates.\n\n", profession))

	for i, app := range apps {
		sb.WriteString(fmt.Sprintf("Candidate %d:\n", i+1))
		sb.WriteString(fmt.Sprintf("Name: %s\n", app.Name))
		sb.WriteString(fmt.Sprintf("Phone: %s\n", app.Phone))
		sb.WriteString(fmt.Sprintf("Email: %s\n", app.Email))
		sb.WriteString(fmt.Sprintf("Self-pitch: %s\n", app.About))

		if excerpt := strings.TrimSpace(cvExcerpts[app.ID]); excerpt != "" {
			sb.WriteString(fmt.Sprintf("CV excerpt:\n%s\n", truncate(excerpt, 2000)))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("Answer in plain text, one paragraph per candidate.")

	return sb.String()
}

// truncate cuts at a rune boundary; a mid-rune cut would send invalid
// UTF-8 to the model API.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
