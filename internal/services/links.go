package services

import (
	"context"
	"fmt"
	"log"

	"github.com/web3grant/Slushy/internal/metadata"
	"github.com/web3grant/Slushy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Default labels substituted when a link's document yields no title.
const (
	UntitledProject = "Untitled Project"
	UntitledApp     = "Untitled App"
)

// SiteFetcher extracts display metadata from a URL's document
type SiteFetcher interface {
	Extract(ctx context.Context, rawURL string) (*metadata.SiteMetadata, error)
}

// LinkService owns the add/remove lifecycle for the two link collections,
// enriching each added entry from its document.
type LinkService struct {
	db      *gorm.DB
	fetcher SiteFetcher
}

// NewLinkService creates a new LinkService
func NewLinkService(db *gorm.DB, fetcher SiteFetcher) *LinkService {
	return &LinkService{db: db, fetcher: fetcher}
}

// AddProject enriches rawURL and persists a new project for userID. The
// stored URL is always rawURL as given, never a resolved or redirected
// address. Enrichment failure is never fatal to the add.
func (s *LinkService) AddProject(ctx context.Context, userID uuid.UUID, rawURL string) (*models.Project, error) {
	meta := s.fetchMetadata(ctx, rawURL)

	name := meta.Name
	if name == "" {
		name = UntitledProject
	}

	project := models.Project{
		UserID:   userID,
		Name:     name,
		URL:      rawURL,
		ImageURL: meta.Favicon,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &project, nil
}

// AddFavoriteApp enriches rawURL and persists a new favorite app for userID.
func (s *LinkService) AddFavoriteApp(ctx context.Context, userID uuid.UUID, rawURL string) (*models.FavoriteApp, error) {
	meta := s.fetchMetadata(ctx, rawURL)

	name := meta.Name
	if name == "" {
		name = UntitledApp
	}

	app := models.FavoriteApp{
		UserID:   userID,
		AppName:  name,
		URL:      rawURL,
		ImageURL: meta.Favicon,
	}

	if err := s.db.Create(&app).Error; err != nil {
		return nil, fmt.Errorf("failed to create favorite app: %w", err)
	}

	return &app, nil
}

// DeleteProject removes a project by id. Deleting an id that no longer
// exists surfaces ErrEntityNotFound rather than silently succeeding.
func (s *LinkService) DeleteProject(id uuid.UUID) error {
	result := s.db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntityNotFound
	}
	return nil
}

// DeleteFavoriteApp removes a favorite app by id.
func (s *LinkService) DeleteFavoriteApp(id uuid.UUID) error {
	result := s.db.Delete(&models.FavoriteApp{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite app: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntityNotFound
	}
	return nil
}

// fetchMetadata runs enrichment and absorbs any failure into an empty
// result, so a dead or slow site never blocks adding its link.
func (s *LinkService) fetchMetadata(ctx context.Context, rawURL string) *metadata.SiteMetadata {
	meta, err := s.fetcher.Extract(ctx, rawURL)
	if err != nil {
		log.Printf("Metadata enrichment failed for %s: %v", rawURL, err)
		return &metadata.SiteMetadata{}
	}
	return meta
}
