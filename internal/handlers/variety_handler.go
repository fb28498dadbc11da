package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/models"
	"orderpad-service/internal/services"
)

// VarietyHandler handles variety registry endpoints
type VarietyHandler struct {
	masterData *services.MasterDataService
	logger     *logrus.Logger
}

// NewVarietyHandler creates a new variety handler
func NewVarietyHandler(masterData *services.MasterDataService, logger *logrus.Logger) *VarietyHandler {
	return &VarietyHandler{masterData: masterData, logger: logger}
}

// List godoc
// @Summary List varieties
// @Tags varieties
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /varieties [get]
func (h *VarietyHandler) List(c *gin.Context) {
	varieties, err := h.masterData.ListVarieties(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list varieties")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"varieties": varieties})
}

// Save godoc
// @Summary Create or update a variety
// @Tags varieties
// @Accept json
// @Produce json
// @Param variety body models.SaveVarietyRequest true "Variety"
// @Success 200 {object} map[string]interface{}
// @Router /varieties [post]
func (h *VarietyHandler) Save(c *gin.Context) {
	var req models.SaveVarietyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Name is required.")
		return
	}
	variety, err := h.masterData.SaveVariety(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to save variety")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"variety": variety})
}

// Delete godoc
// @Summary Delete a variety
// @Tags varieties
// @Produce json
// @Param id path string true "Variety ID"
// @Success 200 {object} map[string]interface{}
// @Router /varieties/{id} [delete]
func (h *VarietyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid variety ID")
		return
	}
	if err := h.masterData.DeleteVariety(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("Failed to delete variety")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
