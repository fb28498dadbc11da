package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/services"
)

// CatalogHandler serves the assembled catalog snapshot the grid renders
// from: items in grid order plus the resolved variety registry in one
// response, so the client never stitches the two lists itself.
type CatalogHandler struct {
	masterData *services.MasterDataService
	logger     *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(masterData *services.MasterDataService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{masterData: masterData, logger: logger}
}

// Get godoc
// @Summary Get the catalog snapshot for the entry grid
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.masterData.ListItems(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load items for catalog")
		respondServiceError(c, err)
		return
	}
	varieties, err := h.masterData.ListVarieties(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load varieties for catalog")
		respondServiceError(c, err)
		return
	}
	colors, err := h.masterData.ListColors(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load colors for catalog")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"items":     items,
		"varieties": varieties,
		"colors":    colors,
	})
}
