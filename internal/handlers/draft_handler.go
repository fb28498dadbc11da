package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/orderentry"
	"orderpad-service/internal/services"
)

// DraftHandler handles per-device draft persistence
type DraftHandler struct {
	drafts *services.DraftService
	logger *logrus.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(drafts *services.DraftService, logger *logrus.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, logger: logger}
}

// Save godoc
// @Summary Save the draft for a device
// @Description Best effort. Save failures still return success so drafting never blocks entry.
// @Tags drafts
// @Accept json
// @Produce json
// @Param deviceId path string true "Device ID"
// @Param draft body orderentry.Draft true "Draft document"
// @Success 200 {object} map[string]interface{}
// @Router /drafts/{deviceId} [put]
func (h *DraftHandler) Save(c *gin.Context) {
	var draft orderentry.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondError(c, http.StatusBadRequest, "Malformed draft document")
		return
	}
	h.drafts.Save(c.Request.Context(), c.Param("deviceId"), &draft)
	resp := gin.H{"persisted": h.drafts.Enabled()}
	if h.drafts.Enabled() {
		// Save stamps SavedAt only when a backend is configured.
		resp["savedAt"] = draft.SavedAt
	}
	respondSuccess(c, http.StatusOK, resp)
}

// Get godoc
// @Summary Get the draft for a device
// @Description Absent and corrupt drafts both return draft null.
// @Tags drafts
// @Produce json
// @Param deviceId path string true "Device ID"
// @Success 200 {object} map[string]interface{}
// @Router /drafts/{deviceId} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	draft := h.drafts.Restore(c.Request.Context(), c.Param("deviceId"))
	respondSuccess(c, http.StatusOK, gin.H{"draft": draft})
}

// Delete godoc
// @Summary Clear the draft for a device
// @Tags drafts
// @Produce json
// @Param deviceId path string true "Device ID"
// @Success 200 {object} map[string]interface{}
// @Router /drafts/{deviceId} [delete]
func (h *DraftHandler) Delete(c *gin.Context) {
	h.drafts.Clear(c.Request.Context(), c.Param("deviceId"))
	respondSuccess(c, http.StatusOK, gin.H{"cleared": true})
}
