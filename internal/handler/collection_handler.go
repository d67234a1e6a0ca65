package handler

import (
	"errors"
	"net/http"

	"chartview/internal/repository"
	"chartview/internal/service"
	"chartview/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CollectionHandler handles collection and symbol HTTP requests
type CollectionHandler struct {
	collections *service.CollectionService
	logger      *zap.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collections *service.CollectionService, logger *zap.Logger) *CollectionHandler {
	return &CollectionHandler{
		collections: collections,
		logger:      logger,
	}
}

// ListCollections handles retrieving all collection names
// GET /api/v1/collections
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	names, err := h.collections.ListCollections(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list collections", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve collections")
		return
	}

	c.JSON(http.StatusOK, gin.H{"collections": names})
}

// ListSymbols handles retrieving one collection's symbols with optional search
// GET /api/v1/collections/:name/symbols
func (h *CollectionHandler) ListSymbols(c *gin.Context) {
	name := c.Param("name")
	search := c.Query("search")

	symbols, err := h.collections.ListSymbols(c.Request.Context(), name, search)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionNotFound) {
			utils.SendErrorResponse(c, http.StatusNotFound, "Collection not found")
			return
		}
		h.logger.Error("Failed to list symbols",
			zap.Error(err),
			zap.String("collection", name))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve symbols")
		return
	}

	c.JSON(http.StatusOK, symbols)
}
