package handlers

import (
	"net/http"

	"github.com/web3grant/Slushy/internal/metadata"

	"github.com/gin-gonic/gin"
)

// MetadataHandler handles HTTP requests for site metadata enrichment
type MetadataHandler struct {
	extractor *metadata.Extractor
}

// NewMetadataHandler creates a new metadata handler
func NewMetadataHandler(extractor *metadata.Extractor) *MetadataHandler {
	return &MetadataHandler{extractor: extractor}
}

// GetSiteMetadata handles GET /api/metadata?url=…
func (h *MetadataHandler) GetSiteMetadata(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	meta, err := h.extractor.Extract(c.Request.Context(), rawURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch website info"})
		return
	}

	c.JSON(http.StatusOK, meta)
}
