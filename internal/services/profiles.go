package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/web3grant/Slushy/internal/models"

	"gorm.io/gorm"
)

// DefaultUsername is used when provisioning a profile with no email hint.
const DefaultUsername = "New User"

// editableColumns maps JSON field names accepted by the mutation layer onto
// their users-table columns. Anything else is rejected.
var editableColumns = map[string]string{
	"username":       "username",
	"bio":            "bio",
	"avatar":         "avatar",
	"url":            "url",
	"published":      "published",
	"allow_messages": "allow_messages",
	"email":          "email",
}

// ProfileService handles identity resolution, provisioning and field-level
// mutation of profile records.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetByIdentityKey loads a profile and its collections by wallet identity key.
func (s *ProfileService) GetByIdentityKey(identityKey string) (*models.User, error) {
	return s.getOne("dynamic_user_id = ?", identityKey)
}

// GetByUsername loads a profile and its collections by username.
func (s *ProfileService) GetByUsername(username string) (*models.User, error) {
	return s.getOne("username = ?", username)
}

func (s *ProfileService) getOne(query string, arg string) (*models.User, error) {
	var user models.User
	err := s.db.
		Preload("SocialMediaLinks").
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("FavoriteApps", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where(query, arg).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	return &user, nil
}

// ResolveOrCreate returns the profile bound to identityKey, provisioning one
// on first login. An existing profile is returned untouched. A new profile
// gets its username from the local part of emailHint, or DefaultUsername when
// no email is available.
func (s *ProfileService) ResolveOrCreate(identityKey, emailHint string) (*models.User, error) {
	user, err := s.GetByIdentityKey(identityKey)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	// Username is the local part of the email hint; a hint with no "@" is
	// taken whole. Only an empty local part falls back to the default.
	username := emailHint
	if at := strings.Index(emailHint, "@"); at >= 0 {
		username = emailHint[:at]
	}
	if username == "" {
		username = DefaultUsername
	}

	newUser := models.User{
		DynamicUserID: identityKey,
		Username:      username,
		Email:         emailHint,
		AllowMessages: true,
	}

	if err := s.db.Create(&newUser).Error; err != nil {
		// A concurrent first login can win the race on dynamic_user_id; the
		// caller has no profile to render either way.
		return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}

	log.Printf("Provisioned new profile %s for identity %s", newUser.ID, identityKey)

	newUser.SocialMediaLinks = []models.SocialMediaLink{}
	newUser.Projects = []models.Project{}
	newUser.FavoriteApps = []models.FavoriteApp{}

	return &newUser, nil
}

// UpdateField applies a single-field update to the profile bound to
// identityKey and returns the updated record. A zero-row update surfaces
// ErrProfileNotFound; a uniqueness violation surfaces ErrConflict.
func (s *ProfileService) UpdateField(identityKey, field string, value interface{}) (*models.User, error) {
	return s.UpdateFields(identityKey, map[string]interface{}{field: value})
}

// UpdateFields applies a partial update of editable fields. Updates are
// column-scoped, never full-record overwrites, so unrelated fields are
// untouched even under concurrent writers.
func (s *ProfileService) UpdateFields(identityKey string, fields map[string]interface{}) (*models.User, error) {
	updates := make(map[string]interface{}, len(fields))
	for field, value := range fields {
		column, ok := editableColumns[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidField, field)
		}
		updates[column] = value
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields given", ErrInvalidField)
	}

	result := s.db.Model(&models.User{}).
		Where("dynamic_user_id = ?", identityKey).
		Updates(updates)

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrProfileNotFound
	}

	return s.GetByIdentityKey(identityKey)
}
