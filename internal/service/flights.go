package service

import (
	"context"
	"fmt"
	"strings"

	"skybook/internal/logger"
	"skybook/internal/models"
)

type FlightService struct {
	flights FlightGateway
	cache   FlightCache
}

func NewFlightService(flights FlightGateway, cache FlightCache) *FlightService {
	return &FlightService{
		flights: flights,
		cache:   cache,
	}
}

// List returns all flights, serving from the cache when possible. Cache
// failures degrade to the gateway.
func (s *FlightService) List(ctx context.Context) ([]models.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlightList(ctx); err == nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetFlightList(ctx, flights); err != nil {
			logger.WithContext(ctx).Warn("Failed to cache flight list", "error", err)
		}
	}

	return flights, nil
}

// Search forwards the criteria to the flight service. Cities are normalized
// the way the backend expects them; an empty result is a valid outcome.
func (s *FlightService) Search(ctx context.Context, search models.SearchFlightsRequest) ([]models.Flight, error) {
	search.FromCity = strings.ToUpper(strings.TrimSpace(search.FromCity))
	search.ToCity = strings.ToUpper(strings.TrimSpace(search.ToCity))

	flights, err := s.flights.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search flights: %w", err)
	}

	return flights, nil
}

// Create adds a flight. Admin-only; the handler enforces the role gate, the
// service enforces field validity.
func (s *FlightService) Create(ctx context.Context, add models.AddFlightRequest) (*models.Flight, error) {
	add.FlightNumber = strings.ToUpper(strings.TrimSpace(add.FlightNumber))
	add.FromCity = strings.ToUpper(strings.TrimSpace(add.FromCity))
	add.ToCity = strings.ToUpper(strings.TrimSpace(add.ToCity))

	if add.FlightNumber == "" || add.FromCity == "" || add.ToCity == "" ||
		add.DepartureTime == "" || add.ArrivalTime == "" {
		return nil, ErrInvalidFlight
	}
	if add.Cost <= 0 || add.SeatsAvailable <= 0 {
		return nil, ErrInvalidFlight
	}
	if add.FromCity == add.ToCity {
		return nil, ErrSameCities
	}

	flight, err := s.flights.Create(ctx, add)
	if err != nil {
		return nil, err
	}

	// The cached list no longer includes the new flight
	if s.cache != nil {
		if err := s.cache.InvalidateFlightList(ctx); err != nil {
			logger.WithContext(ctx).Warn("Failed to invalidate flight list cache", "error", err)
		}
	}

	return flight, nil
}
