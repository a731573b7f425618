package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "skybook/internal/errors"
	"skybook/internal/gateway"
	"skybook/internal/logger"
	"skybook/internal/models"
	"skybook/internal/service"
	"skybook/internal/session"
)

type Handlers struct {
	services *service.Services
	sessions *session.Store
	auth     *gateway.AuthClient
}

func NewHandlers(services *service.Services, sessions *session.Store, auth *gateway.AuthClient) *Handlers {
	return &Handlers{
		services: services,
		sessions: sessions,
		auth:     auth,
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Business-rule
// rejections keep the backend's status and message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, service.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidFlight),
		errors.Is(err, service.ErrSameCities),
		errors.Is(err, service.ErrIncompleteForm),
		errors.Is(err, service.ErrNoPendingCancel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBookingFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		if rejection, ok := apperrors.AsRejection(err); ok {
			c.JSON(rejection.Status, gin.H{"error": rejection.Message})
			return
		}
		logger.WithContext(c.Request.Context()).Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Login - POST /api/login
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}

	h.sessions.Set(*sess)

	c.JSON(http.StatusOK, gin.H{
		"username": sess.Username,
		"email":    sess.Email,
		"role":     sess.Role,
	})
}

// Logout - POST /api/logout
func (h *Handlers) Logout(c *gin.Context) {
	h.sessions.Clear()
	c.Status(http.StatusOK)
}

// ListFlights - GET /api/flights
func (h *Handlers) ListFlights(c *gin.Context) {
	flights, err := h.services.Flights.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, flights)
}

// SearchFlights - POST /api/flights/search
func (h *Handlers) SearchFlights(c *gin.Context) {
	var req models.SearchFlightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flights, err := h.services.Flights.Search(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, flights)
}

// AddFlight - POST /api/flights
// Admin only; the route carries the role gate.
func (h *Handlers) AddFlight(c *gin.Context) {
	var req models.AddFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.services.Flights.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, flight)
}
