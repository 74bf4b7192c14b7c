package models

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteApp is a listed link on a profile's "Stack" section.
type FavoriteApp struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;index;not null"`
	AppName   string    `json:"app_name" db:"app_name"`
	URL       string    `json:"url" db:"url"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for the FavoriteApp model
func (FavoriteApp) TableName() string {
	return "favorite_apps"
}
