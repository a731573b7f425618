// Package gateway contains the HTTP clients for the reservation backend:
// flight service, booking service and auth service behind the API gateway.
// Transport details stay here; services above see typed calls and the error
// taxonomy from internal/errors.
package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

// Config holds the base URLs of the backend services.
type Config struct {
	FlightServiceURL  string
	BookingServiceURL string
	AuthServiceURL    string
	Timeout           time.Duration
}

// TokenSource supplies the bearer token of the current session.
type TokenSource interface {
	Current() (models.Session, bool)
}

type errorBody struct {
	Message string `json:"message"`
}

// decodeError maps a non-2xx response onto the error taxonomy. 4xx statuses
// that carry a backend message become business-rule rejections.
func decodeError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrForbidden
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		var body errorBody
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Message == "" {
			body.Message = http.StatusText(resp.StatusCode)
		}
		return &apperrors.RejectionError{Status: resp.StatusCode, Message: body.Message}
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// authorize attaches the current session's bearer token, when present.
func authorize(req *http.Request, tokens TokenSource) {
	if tokens == nil {
		return
	}
	if sess, ok := tokens.Current(); ok && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
}
