// Package handlers exposes the HTTP API. Every response carries a status
// field; clients branch on status == "success".
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderpad-service/internal/orderentry"
	"orderpad-service/internal/repository"
	"orderpad-service/internal/services"
)

// respondSuccess writes the success envelope with the given payload fields.
func respondSuccess(c *gin.Context, code int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["status"] = "success"
	c.JSON(code, payload)
}

// respondError writes the error envelope.
func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  "error",
		"message": message,
	})
}

// respondServiceError maps service and repository errors to HTTP statuses.
// Validation errors keep their user-facing message; everything else is
// reported as a generic failure so internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, "Record not found")
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNamePhoneRequired),
		errors.Is(err, services.ErrTooManyImages),
		errors.Is(err, orderentry.ErrCustomerRequired),
		errors.Is(err, orderentry.ErrNoQuantities):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
