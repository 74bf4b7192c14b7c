package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the public-facing profile record, bound one-to-one to an
// external wallet identity via DynamicUserID.
type User struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	DynamicUserID string    `json:"dynamic_user_id" db:"dynamic_user_id" gorm:"uniqueIndex;not null"`
	Username      string    `json:"username" db:"username" gorm:"uniqueIndex;not null"`
	Email         string    `json:"email" db:"email"`
	Bio           string    `json:"bio" db:"bio"`
	Avatar        string    `json:"avatar" db:"avatar"`
	URL           string    `json:"url" db:"url"`
	Published     bool      `json:"published" db:"published" gorm:"default:false"`
	AllowMessages bool      `json:"allow_messages" db:"allow_messages" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	SocialMediaLinks []SocialMediaLink `json:"social_media_links" gorm:"foreignKey:UserID"`
	Projects         []Project         `json:"projects" gorm:"foreignKey:UserID"`
	FavoriteApps     []FavoriteApp     `json:"favorite_apps" gorm:"foreignKey:UserID"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
