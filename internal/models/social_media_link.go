package models

import (
	"github.com/google/uuid"
)

// SocialMediaLink is a platform icon shown under the profile header.
// Platform is one of: twitter, telegram, github, instagram, youtube, linkedin.
type SocialMediaLink struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID   uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;index;not null"`
	Platform string    `json:"platform" db:"platform"`
	URL      string    `json:"url" db:"url"`
}

// TableName sets the table name for the SocialMediaLink model
func (SocialMediaLink) TableName() string {
	return "social_media_links"
}
