package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"skybook/internal/models"
)

type BookingClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// CreateBookingRequest is the per-passenger payload of the booking service.
type CreateBookingRequest struct {
	FlightID        int64         `json:"flightId"`
	PassengerName   string        `json:"passengerName"`
	Age             int           `json:"age"`
	Gender          models.Gender `json:"gender"`
	Meal            models.Meal   `json:"meal"`
	Email           string        `json:"email"`
	NumberOfTickets int           `json:"numberOfTickets"`
	SeatNumber      string        `json:"seatNumber"`
}

type CreateBookingResponse struct {
	PNR string `json:"pnr"`
}

func NewBookingClient(cfg Config, tokens TokenSource) *BookingClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &BookingClient{
		baseURL: cfg.BookingServiceURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens: tokens,
	}
}

// Create books one passenger and returns the issued PNR. A seat or flight
// constraint violation comes back as a business-rule rejection.
func (bc *BookingClient) Create(ctx context.Context, booking CreateBookingRequest) (string, error) {
	jsonBody, err := json.Marshal(booking)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, bc.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	authorize(req, bc.tokens)

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", decodeError(resp)
	}

	var result CreateBookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return result.PNR, nil
}

// ListByEmail fetches all bookings of a user. Callers decide whether a
// not-found counts as empty.
func (bc *BookingClient) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bc.baseURL+"/email/"+email, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	authorize(req, bc.tokens)

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var bookings []models.Booking
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return bookings, nil
}

// BookedSeats returns the seat labels already booked on a flight.
func (bc *BookingClient) BookedSeats(ctx context.Context, flightID int64) ([]string, error) {
	url := fmt.Sprintf("%s/flight/%d/seats", bc.baseURL, flightID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	authorize(req, bc.tokens)

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked seats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var seats []string
	if err := json.NewDecoder(resp.Body).Decode(&seats); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return seats, nil
}

// Cancel cancels a booking. A departure inside the 24-hour window comes back
// as a business-rule rejection carrying the backend's message.
func (bc *BookingClient) Cancel(ctx context.Context, bookingID int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", bc.baseURL, bookingID), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	authorize(req, bc.tokens)

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return decodeError(resp)
	}

	return nil
}
