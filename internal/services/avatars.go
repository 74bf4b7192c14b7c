package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/web3grant/Slushy/internal/models"
	"github.com/web3grant/Slushy/internal/storage"

	"github.com/google/uuid"
)

// AvatarService binds uploaded avatar files to generated storage keys and
// writes the resulting public URL into the owner's profile.
type AvatarService struct {
	profiles *ProfileService
	store    storage.Store
}

// NewAvatarService creates a new AvatarService
func NewAvatarService(profiles *ProfileService, store storage.Store) *AvatarService {
	return &AvatarService{profiles: profiles, store: store}
}

// Upload stores the file's bytes under a fresh key scoped to identityKey and
// updates the profile's avatar field with the object's public URL. If the
// field update fails after a successful store write, the object stays
// orphaned and the error is reported; the avatar is unchanged.
func (s *AvatarService) Upload(ctx context.Context, identityKey, filename string, r io.Reader) (*models.User, error) {
	key := fmt.Sprintf("avatars/%s/%s%s", identityKey, uuid.New().String(), filepath.Ext(filename))

	if err := s.store.Put(ctx, key, r); err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	user, err := s.profiles.UpdateField(identityKey, "avatar", s.store.PublicURL(key))
	if err != nil {
		return nil, err
	}

	return user, nil
}
