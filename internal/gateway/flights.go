package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

type FlightClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func NewFlightClient(cfg Config, tokens TokenSource) *FlightClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &FlightClient{
		baseURL: cfg.FlightServiceURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens: tokens,
	}
}

// List fetches all flights.
func (fc *FlightClient) List(ctx context.Context) ([]models.Flight, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fc.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	authorize(req, fc.tokens)

	resp, err := fc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var flights []models.Flight
	if err := json.NewDecoder(resp.Body).Decode(&flights); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return flights, nil
}

// Search finds flights matching the criteria. A backend not-found is a valid
// "no matches" outcome and yields an empty slice.
func (fc *FlightClient) Search(ctx context.Context, search models.SearchFlightsRequest) ([]models.Flight, error) {
	jsonBody, err := json.Marshal(search)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fc.baseURL+"/search", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	authorize(req, fc.tokens)

	resp, err := fc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search flights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if err := decodeError(resp); !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return []models.Flight{}, nil
	}

	var flights []models.Flight
	if err := json.NewDecoder(resp.Body).Decode(&flights); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return flights, nil
}

// GetByID fetches a single flight.
func (fc *FlightClient) GetByID(ctx context.Context, id int64) (*models.Flight, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%d", fc.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	authorize(req, fc.tokens)

	resp, err := fc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var flight models.Flight
	if err := json.NewDecoder(resp.Body).Decode(&flight); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &flight, nil
}

// Create adds a new flight. Admin only; a duplicate flight number comes back
// as a business-rule rejection.
func (fc *FlightClient) Create(ctx context.Context, add models.AddFlightRequest) (*models.Flight, error) {
	jsonBody, err := json.Marshal(add)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fc.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	authorize(req, fc.tokens)

	resp, err := fc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to add flight: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var flight models.Flight
	if err := json.NewDecoder(resp.Body).Decode(&flight); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &flight, nil
}
