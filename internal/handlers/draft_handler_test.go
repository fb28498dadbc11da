package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"orderpad-service/internal/services"
)

func draftRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := testLogger()
	h := NewDraftHandler(services.NewDraftService(nil, logger), logger)

	r := gin.New()
	r.GET("/drafts/:deviceId", h.Get)
	r.PUT("/drafts/:deviceId", h.Save)
	r.DELETE("/drafts/:deviceId", h.Delete)
	return r
}

// Without a draft backend every read reports an absent draft; saves and
// clears still succeed because drafting is best effort.
func TestDraftAbsentReturnsNull(t *testing.T) {
	r := draftRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/drafts/device-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"draft":null`)
}

func TestDraftSaveAcceptsDocument(t *testing.T) {
	r := draftRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/drafts/device-1",
		bytes.NewBufferString(`{"customer":"Acme","date":"2024-01-01","market":"North","fields":{"qty_0_v_S":"2"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
}

// A save without a backend must not echo a zero-value timestamp; the
// response says the draft was not persisted instead.
func TestDraftSaveWithoutBackendReportsUnpersisted(t *testing.T) {
	r := draftRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/drafts/device-1",
		bytes.NewBufferString(`{"customer":"Acme","fields":{}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"persisted":false`)
	assert.NotContains(t, w.Body.String(), "savedAt")
}

func TestDraftSaveRejectsMalformedBody(t *testing.T) {
	r := draftRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/drafts/device-1",
		bytes.NewBufferString(`{"fields": not-json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftClear(t *testing.T) {
	r := draftRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/drafts/device-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cleared":true`)
}
