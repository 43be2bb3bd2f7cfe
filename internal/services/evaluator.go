package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vaaler2/hirewise-backend/internal/models"
	"github.com/vaaler2/hirewise-backend/internal/repositories"
)

// NoApplicationsNarrative is returned verbatim for links nobody has
// applied to yet.
const NoApplicationsNarrative = "No applications yet"

type EvaluatorService interface {
	// EvaluateLink produces the evaluation for a link's accumulated
	// applications. It never fails because the AI capability is down; that
	// condition is absorbed into a fallback-scored result.
	EvaluateLink(ctx context.Context, link *models.InvitationLink) (*models.EvaluationResult, error)
}

type evaluatorService struct {
	appRepo       repositories.ApplicationRepository
	geminiService GeminiService
	scorer        *LocalScorer
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	timeout       time.Duration
	maxRetries    int
}

func NewEvaluatorService(
	appRepo repositories.ApplicationRepository,
	geminiService GeminiService,
	pdfParser PDFParserService,
	timeout time.Duration,
	maxRetries int,
) EvaluatorService {
	return &evaluatorService{
		appRepo:       appRepo,
		geminiService: geminiService,
		scorer:        NewLocalScorer(),
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
		maxRetries:    maxRetries,
	}
}

func (e *evaluatorService) EvaluateLink(ctx context.Context, link *models.InvitationLink) (*models.EvaluationResult, error) {
	apps, err := e.appRepo.ListByLink(link.ID)
	if err != nil {
		return nil, err
	}

	if len(apps) == 0 {
		return &models.EvaluationResult{
			State:        models.StateNoApplications,
			Narrative:    NoApplicationsNarrative,
			Applications: []models.Application{},
		}, nil
	}

	narrative, err := e.evaluateWithAI(ctx, link, apps)
	if err == nil {
		// AI path: list returned unchanged, no scores, no ranks
		return &models.EvaluationResult{
			State:        models.StateAIEvaluated,
			Narrative:    narrative,
			Applications: apps,
		}, nil
	}

	if !models.IsEvaluationUnavailable(err) {
		return nil, err
	}

	log.Printf("⚠️ %v. Falling back to heuristic scoring for link %s\n", err, link.ID)

	// Fallback path: recompute every score from scratch, resort, rerank,
	// and persist the new stored order.
	scored := e.scorer.ScoreAndRank(apps, link.Profession)
	if saveErr := e.appRepo.SaveEvaluated(link.ID, scored); saveErr != nil {
		return nil, fmt.Errorf("failed to persist fallback evaluation: %w", saveErr)
	}

	narrative = fmt.Sprintf(
		"AI evaluation was unavailable (%s). Applications were scored with the built-in heuristic and ranked by score.",
		unavailableReason(err),
	)

	return &models.EvaluationResult{
		State:        models.StateFallbackEvaluated,
		Narrative:    narrative,
		Applications: scored,
	}, nil
}

func (e *evaluatorService) evaluateWithAI(ctx context.Context, link *models.InvitationLink, apps []models.Application) (string, error) {
	prompt := e.promptBuilder.BuildEvaluationPrompt(link.Profession, apps, e.extractCVTexts(apps))

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	response, err := e.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, e.maxRetries)
	if err != nil {
		return "", &models.EvaluationUnavailableError{Reason: err.Error()}
	}

	return strings.TrimSpace(response), nil
}

// extractCVTexts pulls text out of PDF CVs to enrich the AI prompt.
// Best effort: image CVs and unreadable PDFs are skipped with a warning.
func (e *evaluatorService) extractCVTexts(apps []models.Application) map[uuid.UUID]string {
	texts := make(map[uuid.UUID]string)

	for _, app := range apps {
		if !strings.HasSuffix(strings.ToLower(app.CVImagePath), ".pdf") {
			continue
		}

		text, err := e.pdfParser.ExtractText(app.CVImagePath)
		if err != nil {
			log.Printf("⚠️ Failed to extract CV text for %s: %v\n", app.Email, err)
			continue
		}

		texts[app.ID] = text
	}

	return texts
}

func unavailableReason(err error) string {
	var unavailable *models.EvaluationUnavailableError
	if errors.As(err, &unavailable) {
		return unavailable.Reason
	}
	return err.Error()
}
