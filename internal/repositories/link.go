package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaaler2/hirewise-backend/internal/models"
)

type LinkRepository interface {
	Create(link *models.InvitationLink) error
	FindByID(id uuid.UUID) (*models.InvitationLink, error)
	FindAll() ([]models.InvitationLink, error)
}

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

// Create implements LinkRepository.
func (r *linkRepository) Create(link *models.InvitationLink) error {
	if err := r.db.Create(link).Error; err != nil {
		return fmt.Errorf("failed to create invitation link: %w", err)
	}

	return nil
}

// FindByID implements LinkRepository.
func (r *linkRepository) FindByID(id uuid.UUID) (*models.InvitationLink, error) {
	var link models.InvitationLink
	if err := r.db.Where("id = ?", id).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrLinkNotFound
		}

		return nil, fmt.Errorf("failed to find invitation link: %w", err)
	}

	return &link, nil
}

// FindAll implements LinkRepository.
func (r *linkRepository) FindAll() ([]models.InvitationLink, error) {
	var links []models.InvitationLink
	if err := r.db.Order("created_at ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list invitation links: %w", err)
	}

	return links, nil
}
