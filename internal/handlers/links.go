package handlers

import (
	"errors"
	"net/http"

	"github.com/web3grant/Slushy/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LinkHandler handles HTTP requests for the project and favorite-app
// collections and for referral clicks.
type LinkHandler struct {
	links   *services.LinkService
	tracker *services.ReferralTracker
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(links *services.LinkService, tracker *services.ReferralTracker) *LinkHandler {
	return &LinkHandler{
		links:   links,
		tracker: tracker,
	}
}

type addLinkRequest struct {
	URL string `json:"url"`
}

// AddProject handles POST /api/profiles/:id/projects
func (h *LinkHandler) AddProject(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req addLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	project, err := h.links.AddProject(c.Request.Context(), userID, req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to add project",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// DeleteProject handles DELETE /api/projects/:id
func (h *LinkHandler) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.links.DeleteProject(id); err != nil {
		respondDeleteError(c, err, "project")
		return
	}

	c.Status(http.StatusNoContent)
}

// AddFavoriteApp handles POST /api/profiles/:id/apps
func (h *LinkHandler) AddFavoriteApp(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req addLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	app, err := h.links.AddFavoriteApp(c.Request.Context(), userID, req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to add favorite app",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, app)
}

// DeleteFavoriteApp handles DELETE /api/apps/:id
func (h *LinkHandler) DeleteFavoriteApp(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.links.DeleteFavoriteApp(id); err != nil {
		respondDeleteError(c, err, "favorite app")
		return
	}

	c.Status(http.StatusNoContent)
}

// RecordReferral handles POST /api/referrals. Always responds 202 once the
// event is queued; a click must never be failed by the tracker.
func (h *LinkHandler) RecordReferral(c *gin.Context) {
	var req struct {
		ProfileID string `json:"profile_id"`
		ItemID    string `json:"item_id"`
		ItemType  string `json:"item_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.ItemType != "project" && req.ItemType != "app" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item type must be project or app"})
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile ID format"})
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	h.tracker.Record(profileID, itemID, req.ItemType)

	c.Status(http.StatusAccepted)
}

// parseIDParam parses the :id route parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func respondDeleteError(c *gin.Context, err error, kind string) {
	if errors.Is(err, services.ErrEntityNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Failed to delete " + kind,
		"details": err.Error(),
	})
}
