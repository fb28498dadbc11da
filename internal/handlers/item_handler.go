package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/models"
	"orderpad-service/internal/services"
)

// ItemHandler handles item registry endpoints
type ItemHandler struct {
	masterData *services.MasterDataService
	logger     *logrus.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(masterData *services.MasterDataService, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{masterData: masterData, logger: logger}
}

// List godoc
// @Summary List items in grid order
// @Tags items
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.masterData.ListItems(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list items")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"items": items})
}

// Save godoc
// @Summary Create or update an item
// @Tags items
// @Accept json
// @Produce json
// @Param item body models.SaveItemRequest true "Item"
// @Success 200 {object} map[string]interface{}
// @Router /items [post]
func (h *ItemHandler) Save(c *gin.Context) {
	var req models.SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Name is required.")
		return
	}
	item, err := h.masterData.SaveItem(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to save item")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"item": item})
}

// Delete godoc
// @Summary Delete an item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]interface{}
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid item ID")
		return
	}
	if err := h.masterData.DeleteItem(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("Failed to delete item")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
