package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skybook/internal/models"
)

// Booking-session handlers. Every mutation returns the full session snapshot
// so the caller never has to reconstruct grid state from deltas.

// CreateSession - POST /api/booking-sessions
func (h *Handlers) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.services.Sessions.Create(c.Request.Context(), req.FlightID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.services.Sessions.Snapshot(sess))
}

// GetSession - GET /api/booking-sessions/:id
func (h *Handlers) GetSession(c *gin.Context) {
	sess, err := h.services.Sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.services.Sessions.Snapshot(sess))
}

// SetPassengerCount - PATCH /api/booking-sessions/:id/passengers
func (h *Handlers) SetPassengerCount(c *gin.Context) {
	var req models.SetPassengerCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.services.Sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.services.Sessions.SetPassengerCount(sess, req.Count)

	c.JSON(http.StatusOK, h.services.Sessions.Snapshot(sess))
}

// SetPassenger - PUT /api/booking-sessions/:id/passengers/:index
func (h *Handlers) SetPassenger(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger index"})
		return
	}

	var req models.SetPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.services.Sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.services.Sessions.SetPassenger(sess, index, req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.services.Sessions.Snapshot(sess))
}

// ToggleSeat - PATCH /api/booking-sessions/:id/seats
func (h *Handlers) ToggleSeat(c *gin.Context) {
	var req models.ToggleSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.services.Sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.services.Sessions.ToggleSeat(sess, req.Seat)

	c.JSON(http.StatusOK, h.services.Sessions.Snapshot(sess))
}

// SubmitSession - POST /api/booking-sessions/:id/submit
// The session is destroyed on success; on failure it stays alive so the user
// can adjust and retry.
func (h *Handlers) SubmitSession(c *gin.Context) {
	sess, err := h.services.Sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.services.Bookings.Submit(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	h.services.Sessions.Remove(sess.ID)

	c.JSON(http.StatusOK, resp)
}
