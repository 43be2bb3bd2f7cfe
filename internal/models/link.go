package models

import (
	"time"

	"github.com/google/uuid"
)

// InvitationLink is a shareable, time-bounded token a company hands to
// candidates. It is immutable after issuance.
type InvitationLink struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"link_id"`
	ClientID     string    `gorm:"type:text;not null" json:"client_id"`
	Profession   string    `gorm:"type:text;not null" json:"profession"`
	CompanyEmail string    `gorm:"type:text;not null" json:"company_email"`
	ExpiresAt    time.Time `gorm:"type:timestamp;not null" json:"expires_at"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (InvitationLink) TableName() string {
	return "invitation_links"
}

// Expired reports whether the link no longer accepts submissions.
func (l *InvitationLink) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
