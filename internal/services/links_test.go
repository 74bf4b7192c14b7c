package services

import (
	"context"
	"errors"
	"testing"

	"github.com/web3grant/Slushy/internal/metadata"
	"github.com/web3grant/Slushy/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSiteFetcher is a mock implementation of the SiteFetcher interface
type MockSiteFetcher struct {
	mock.Mock
}

func (m *MockSiteFetcher) Extract(ctx context.Context, rawURL string) (*metadata.SiteMetadata, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metadata.SiteMetadata), args.Error(1)
}

func TestLinkService_AddProject(t *testing.T) {
	db := setupTestDB(t)

	owner, err := NewProfileService(db).ResolveOrCreate("test-0xowner", "owner@example.com")
	require.NoError(t, err)

	t.Run("enriched add", func(t *testing.T) {
		fetcher := new(MockSiteFetcher)
		fetcher.On("Extract", mock.Anything, "https://intovid.com").Return(&metadata.SiteMetadata{
			Name:    "Intovid",
			Favicon: "https://intovid.com/favicon.ico",
		}, nil)

		service := NewLinkService(db, fetcher)
		project, err := service.AddProject(context.Background(), owner.ID, "https://intovid.com")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, project.ID)
		assert.Equal(t, "Intovid", project.Name)
		assert.Equal(t, "https://intovid.com", project.URL)
		assert.Equal(t, "https://intovid.com/favicon.ico", project.ImageURL)
		assert.Equal(t, owner.ID, project.UserID)

		fetcher.AssertExpectations(t)
	})

	t.Run("enrichment failure falls back to default label", func(t *testing.T) {
		fetcher := new(MockSiteFetcher)
		fetcher.On("Extract", mock.Anything, "https://unreachable.dev").
			Return(nil, errors.New("connection refused"))

		service := NewLinkService(db, fetcher)
		project, err := service.AddProject(context.Background(), owner.ID, "https://unreachable.dev")
		require.NoError(t, err, "enrichment failure must never fail the add")

		assert.Equal(t, UntitledProject, project.Name)
		assert.Equal(t, "https://unreachable.dev", project.URL)
		assert.Empty(t, project.ImageURL)
	})

	t.Run("duplicate URLs make distinct entities", func(t *testing.T) {
		fetcher := new(MockSiteFetcher)
		fetcher.On("Extract", mock.Anything, "https://twice.dev").
			Return(&metadata.SiteMetadata{Name: "Twice"}, nil).Twice()

		service := NewLinkService(db, fetcher)
		first, err := service.AddProject(context.Background(), owner.ID, "https://twice.dev")
		require.NoError(t, err)
		second, err := service.AddProject(context.Background(), owner.ID, "https://twice.dev")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestLinkService_AddFavoriteApp(t *testing.T) {
	db := setupTestDB(t)

	owner, err := NewProfileService(db).ResolveOrCreate("test-0xowner2", "owner2@example.com")
	require.NoError(t, err)

	fetcher := new(MockSiteFetcher)
	fetcher.On("Extract", mock.Anything, "https://linear.app").Return(&metadata.SiteMetadata{}, nil)

	service := NewLinkService(db, fetcher)
	app, err := service.AddFavoriteApp(context.Background(), owner.ID, "https://linear.app")
	require.NoError(t, err)

	assert.Equal(t, UntitledApp, app.AppName, "empty title must substitute the default label")
	assert.Equal(t, "https://linear.app", app.URL)
}

func TestLinkService_Delete(t *testing.T) {
	db := setupTestDB(t)

	owner, err := NewProfileService(db).ResolveOrCreate("test-0xowner3", "owner3@example.com")
	require.NoError(t, err)

	fetcher := new(MockSiteFetcher)
	fetcher.On("Extract", mock.Anything, mock.Anything).Return(&metadata.SiteMetadata{Name: "Foo"}, nil)

	service := NewLinkService(db, fetcher)

	t.Run("add then delete leaves no orphan row", func(t *testing.T) {
		project, err := service.AddProject(context.Background(), owner.ID, "https://foo.dev")
		require.NoError(t, err)

		require.NoError(t, service.DeleteProject(project.ID))

		var count int64
		db.Model(&models.Project{}).Where("user_id = ?", owner.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("deleting a missing project is a recoverable error", func(t *testing.T) {
		err := service.DeleteProject(uuid.New())
		assert.ErrorIs(t, err, ErrEntityNotFound)
	})

	t.Run("deleting a missing favorite app is a recoverable error", func(t *testing.T) {
		err := service.DeleteFavoriteApp(uuid.New())
		assert.ErrorIs(t, err, ErrEntityNotFound)
	})
}
