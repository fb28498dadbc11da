package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/storage"
)

// maxUploadBytes caps decoded image size at 10 MB.
const maxUploadBytes = 10 << 20

// UploadHandler handles image uploads for the master-data registries
type UploadHandler struct {
	uploader storage.Uploader
	logger   *logrus.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploader storage.Uploader, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, logger: logger}
}

// uploadRequest carries a base64-encoded image. A data: URL prefix on the
// payload is tolerated and stripped.
type uploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
	MimeType string `json:"mimeType" binding:"required"`
	Base64   string `json:"base64" binding:"required"`
}

// Upload godoc
// @Summary Upload an image
// @Tags uploads
// @Accept json
// @Produce json
// @Param upload body uploadRequest true "Image payload"
// @Success 200 {object} map[string]interface{}
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "fileName, mimeType and base64 are required")
		return
	}
	if !strings.HasPrefix(req.MimeType, "image/") {
		respondError(c, http.StatusBadRequest, "Only image uploads are accepted")
		return
	}

	payload := req.Base64
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	// Reject on the encoded length so oversized bodies are never decoded.
	if base64.StdEncoding.DecodedLen(len(payload)) > maxUploadBytes {
		respondError(c, http.StatusBadRequest, "Image exceeds the 10 MB limit")
		return
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid base64 payload")
		return
	}

	url, err := h.uploader.Upload(c.Request.Context(), req.FileName, req.MimeType, data)
	if err != nil {
		h.logger.WithError(err).Error("Failed to store upload")
		respondError(c, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"url": url})
}
