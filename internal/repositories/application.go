package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaaler2/hirewise-backend/internal/models"
)

type ApplicationRepository interface {
	// Append stores one submission under its link, at the end of the
	// link's current order. Fails with models.ErrLinkNotFound when the
	// link id is unknown; no partial write happens in that case.
	Append(app *models.Application) error
	// ListByLink returns the link's applications in stored order.
	ListByLink(linkID uuid.UUID) ([]models.Application, error)
	// SaveEvaluated rewrites score, rank and stored order for every
	// application under the link in one transaction. The slice order
	// becomes the new stored order.
	SaveEvaluated(linkID uuid.UUID, apps []models.Application) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Append implements ApplicationRepository.
func (r *applicationRepository) Append(app *models.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var link models.InvitationLink
		if err := tx.Where("id = ?", app.LinkID).First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrLinkNotFound
			}
			return fmt.Errorf("failed to find invitation link: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Application{}).
			Where("link_id = ?", app.LinkID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count applications: %w", err)
		}

		app.Position = int(count) + 1
		if err := tx.Create(app).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}

		return nil
	})
}

// ListByLink implements ApplicationRepository.
func (r *applicationRepository) ListByLink(linkID uuid.UUID) ([]models.Application, error) {
	var link models.InvitationLink
	if err := r.db.Where("id = ?", linkID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to find invitation link: %w", err)
	}

	var apps []models.Application
	if err := r.db.Where("link_id = ?", linkID).
		Order("position ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}

// SaveEvaluated implements ApplicationRepository.
func (r *applicationRepository) SaveEvaluated(linkID uuid.UUID, apps []models.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range apps {
			result := tx.Model(&models.Application{}).
				Where("id = ? AND link_id = ?", apps[i].ID, linkID).
				Updates(map[string]interface{}{
					"position": i + 1,
					"score":    apps[i].Score,
					"rank":     apps[i].Rank,
				})

			if result.Error != nil {
				return fmt.Errorf("failed to save evaluated application: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("application %s not found under link %s", apps[i].ID, linkID)
			}
		}

		return nil
	})
}
