package handlers

import (
	"net/http"

	"github.com/web3grant/Slushy/internal/auth"
	"github.com/web3grant/Slushy/internal/services"

	"github.com/gin-gonic/gin"
)

// AvatarHandler handles avatar file uploads
type AvatarHandler struct {
	avatars *services.AvatarService
	tokens  *auth.TokenIssuer
}

// NewAvatarHandler creates a new avatar handler
func NewAvatarHandler(avatars *services.AvatarService, tokens *auth.TokenIssuer) *AvatarHandler {
	return &AvatarHandler{
		avatars: avatars,
		tokens:  tokens,
	}
}

// UploadAvatar handles POST /api/profile/avatar?identityKey=…
// The file comes in as multipart form field "file".
func (h *AvatarHandler) UploadAvatar(c *gin.Context) {
	identityKey := c.Query("identityKey")
	if identityKey == "" {
		if key, ok := h.tokens.ValidateToken(c.GetHeader("Authorization")); ok {
			identityKey = key
		}
	}
	if identityKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identity key is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read avatar file"})
		return
	}
	defer file.Close()

	user, err := h.avatars.Upload(c.Request.Context(), identityKey, fileHeader.Filename, file)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}
