package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skybook/internal/models"
)

// History handlers.

// GetHistory - GET /api/history
func (h *Handlers) GetHistory(c *gin.Context) {
	view, err := h.services.History.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HistoryResponse{Bookings: view.Bookings()})
}

// RequestCancel - POST /api/history/cancel
// Opens the confirmation gate; nothing reaches the backend yet.
func (h *Handlers) RequestCancel(c *gin.Context) {
	var req models.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.services.History.RequestCancel(req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ConfirmCancel - POST /api/history/cancel/confirm
func (h *Handlers) ConfirmCancel(c *gin.Context) {
	outcome, err := h.services.History.ConfirmCancel(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// CloseCancel - POST /api/history/cancel/close
func (h *Handlers) CloseCancel(c *gin.Context) {
	if err := h.services.History.CloseConfirm(); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
