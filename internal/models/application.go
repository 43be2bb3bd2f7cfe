package models

import (
	"time"

	"github.com/google/uuid"
)

// Application is one candidate submission under an invitation link.
// Position records the stored order: submission sequence while unscored,
// descending score order after a fallback evaluation has run.
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	LinkID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position    int       `gorm:"not null" json:"-"`
	Name        string    `gorm:"type:text" json:"name"`
	Phone       string    `gorm:"type:text" json:"phone"`
	Email       string    `gorm:"type:text" json:"email"`
	About       string    `gorm:"type:text" json:"about"`
	CVImagePath string    `gorm:"type:text" json:"cv_image_path"`
	SubmittedAt time.Time `gorm:"type:timestamp;default:now()" json:"submitted_at"`
	Score       *float64  `gorm:"type:decimal(5,1)" json:"score,omitempty"`
	Rank        *int      `json:"rank,omitempty"`

	Link InvitationLink `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
