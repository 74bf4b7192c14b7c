package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a listed link on a profile's "My Projects" section. Name and
// ImageURL are derived from the link's document at add time; URL always
// stores the address the owner typed. Status is a free-form tag
// (ACTIVE/ACQUIRED/DISCONTINUED by convention, never validated).
type Project struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;index;not null"`
	Name      string    `json:"name" db:"name"`
	URL       string    `json:"url" db:"url"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
