package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/models"
	"orderpad-service/internal/services"
)

// CustomerHandler handles customer registry endpoints
type CustomerHandler struct {
	masterData *services.MasterDataService
	logger     *logrus.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(masterData *services.MasterDataService, logger *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{masterData: masterData, logger: logger}
}

// List godoc
// @Summary List customers, optionally filtered by name fragment
// @Tags customers
// @Produce json
// @Param q query string false "Name fragment"
// @Success 200 {object} map[string]interface{}
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.masterData.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list customers")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"customers": customers})
}

// Save godoc
// @Summary Create or update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body models.SaveCustomerRequest true "Customer"
// @Success 200 {object} map[string]interface{}
// @Router /customers [post]
func (h *CustomerHandler) Save(c *gin.Context) {
	var req models.SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Customer name and phone are required.")
		return
	}
	customer, err := h.masterData.SaveCustomer(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to save customer")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"customer": customer})
}

// Delete godoc
// @Summary Delete a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} map[string]interface{}
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	if err := h.masterData.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("Failed to delete customer")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
