package handlers

import (
	"errors"
	"net/http"

	"github.com/web3grant/Slushy/internal/auth"
	"github.com/web3grant/Slushy/internal/models"
	"github.com/web3grant/Slushy/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/russross/blackfriday/v2"
)

// ProfileHandler handles HTTP requests for profiles and sessions
type ProfileHandler struct {
	profiles *services.ProfileService
	tokens   *auth.TokenIssuer
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *services.ProfileService, tokens *auth.TokenIssuer) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		tokens:   tokens,
	}
}

// profileResponse is a profile plus its bio rendered as HTML for the public
// page.
type profileResponse struct {
	*models.User
	BioHTML string `json:"bio_html"`
}

func newProfileResponse(user *models.User) profileResponse {
	resp := profileResponse{User: user}
	if user.Bio != "" {
		resp.BioHTML = string(blackfriday.Run([]byte(user.Bio)))
	}
	return resp
}

// GetProfile handles GET /api/profile?identityKey=…|username=…
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	identityKey := c.Query("identityKey")
	username := c.Query("username")

	var (
		user *models.User
		err  error
	)

	switch {
	case identityKey != "":
		user, err = h.profiles.GetByIdentityKey(identityKey)
	case username != "":
		user, err = h.profiles.GetByUsername(username)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Username or identity key is required",
		})
		return
	}

	if errors.Is(err, services.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve profile",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// UpdateProfile handles PUT /api/profile?identityKey=…
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	identityKey := h.identityKey(c)
	if identityKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identity key is required"})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.profiles.UpdateFields(identityKey, fields)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// CreateSession handles POST /api/session. It resolves the wallet identity
// to a profile, provisioning one on first login, and mints a session token.
func (h *ProfileHandler) CreateSession(c *gin.Context) {
	var req struct {
		IdentityKey string `json:"identityKey"`
		EmailHint   string `json:"emailHint"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IdentityKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identity key is required"})
		return
	}

	user, err := h.profiles.ResolveOrCreate(req.IdentityKey, req.EmailHint)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to provision profile",
			"details": err.Error(),
		})
		return
	}

	token, err := h.tokens.Issue(req.IdentityKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": newProfileResponse(user),
		"token":   token,
	})
}

// HealthCheck handles GET /health
func (h *ProfileHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "slushy",
	})
}

// identityKey returns the caller's identity key: the identityKey query
// parameter when given, otherwise the subject of a valid session token.
func (h *ProfileHandler) identityKey(c *gin.Context) string {
	if key := c.Query("identityKey"); key != "" {
		return key
	}
	if key, ok := h.tokens.ValidateToken(c.GetHeader("Authorization")); ok {
		return key
	}
	return ""
}

// respondProfileError maps service-layer errors onto HTTP statuses
func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
	case errors.Is(err, services.ErrInvalidField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update profile",
			"details": err.Error(),
		})
	}
}
