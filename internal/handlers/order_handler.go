package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/repository"
	"orderpad-service/internal/services"
)

// OrderHandler handles order submission and retrieval
type OrderHandler struct {
	orders *services.OrderService
	sheets *services.SheetService
	logger *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *services.OrderService, sheets *services.SheetService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, sheets: sheets, logger: logger}
}

// Submit godoc
// @Summary Submit an order batch
// @Description Accepts either flat rows or a raw grid document (fields map). The batch id makes retries idempotent.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body services.SubmitOrderRequest true "Submission"
// @Success 200 {object} map[string]interface{}
// @Router /orders [post]
func (h *OrderHandler) Submit(c *gin.Context) {
	var req services.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid submission payload")
		return
	}
	if req.DeviceID == "" {
		req.DeviceID = c.GetHeader("X-Device-ID")
	}

	result, err := h.orders.Submit(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to submit order")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"order":     result.Order,
		"duplicate": result.Duplicate,
	})
}

// Preview godoc
// @Summary Preview a submission without persisting it
// @Tags orders
// @Accept json
// @Produce json
// @Param order body services.SubmitOrderRequest true "Submission"
// @Success 200 {object} map[string]interface{}
// @Router /orders/preview [post]
func (h *OrderHandler) Preview(c *gin.Context) {
	var req services.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid submission payload")
		return
	}
	preview, err := h.orders.Preview(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"preview": preview})
}

// List godoc
// @Summary List submitted batches
// @Tags orders
// @Produce json
// @Param customer query string false "Customer name"
// @Param date query string false "Order date (YYYY-MM-DD)"
// @Param market query string false "Market"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{}
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter := repository.ListFilter{
		Customer: c.Query("customer"),
		Date:     c.Query("date"),
		Market:   c.Query("market"),
		Limit:    limit,
		Offset:   offset,
	}

	orders, total, err := h.orders.ListBatches(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Get godoc
// @Summary Get a batch with its rows
// @Tags orders
// @Produce json
// @Param batchId path string true "Batch ID"
// @Success 200 {object} map[string]interface{}
// @Router /orders/{batchId} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid batch ID")
		return
	}
	order, err := h.orders.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"order": order})
}

// Sheet godoc
// @Summary Download the printable order sheet for a batch
// @Tags orders
// @Produce application/pdf
// @Param batchId path string true "Batch ID"
// @Success 200 {file} binary
// @Router /orders/{batchId}/sheet [get]
func (h *OrderHandler) Sheet(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid batch ID")
		return
	}
	order, err := h.orders.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pdf, err := h.sheets.Generate(order)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate order sheet")
		respondError(c, http.StatusInternalServerError, "Failed to generate order sheet")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="order-sheet-`+batchID.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
