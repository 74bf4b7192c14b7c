package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferralPoint is an append-only record of a visitor activating a listed
// link. ItemType is "project" or "app". Rows are written by the tracker and
// never read back by this service.
type ReferralPoint struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;index;not null"`
	ItemID    uuid.UUID `json:"item_id" db:"item_id" gorm:"type:uuid;not null"`
	ItemType  string    `json:"item_type" db:"item_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for the ReferralPoint model
func (ReferralPoint) TableName() string {
	return "referral_points"
}
