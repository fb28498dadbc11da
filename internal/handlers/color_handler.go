package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/services"
)

// ColorHandler handles the color palette endpoints
type ColorHandler struct {
	masterData *services.MasterDataService
	logger     *logrus.Logger
}

// NewColorHandler creates a new color handler
func NewColorHandler(masterData *services.MasterDataService, logger *logrus.Logger) *ColorHandler {
	return &ColorHandler{masterData: masterData, logger: logger}
}

// saveColorRequest is the payload for adding a palette color.
type saveColorRequest struct {
	Name string `json:"name" binding:"required"`
}

// List godoc
// @Summary List palette colors
// @Tags colors
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /colors [get]
func (h *ColorHandler) List(c *gin.Context) {
	colors, err := h.masterData.ListColors(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list colors")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"colors": colors})
}

// Save godoc
// @Summary Add a color to the palette
// @Tags colors
// @Accept json
// @Produce json
// @Param color body saveColorRequest true "Color"
// @Success 200 {object} map[string]interface{}
// @Router /colors [post]
func (h *ColorHandler) Save(c *gin.Context) {
	var req saveColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Name is required.")
		return
	}
	color, err := h.masterData.SaveColor(c.Request.Context(), req.Name)
	if err != nil {
		h.logger.WithError(err).Error("Failed to save color")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"color": color})
}

// Delete godoc
// @Summary Remove a color from the palette
// @Tags colors
// @Produce json
// @Param id path string true "Color ID"
// @Success 200 {object} map[string]interface{}
// @Router /colors/{id} [delete]
func (h *ColorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid color ID")
		return
	}
	if err := h.masterData.DeleteColor(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("Failed to delete color")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
