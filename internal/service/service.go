package service

import (
	"context"
	"time"

	"skybook/internal/cache"
	"skybook/internal/gateway"
	"skybook/internal/messaging"
	"skybook/internal/models"
	"skybook/internal/session"
)

// FlightGateway is the flight-service surface the workflow depends on.
type FlightGateway interface {
	List(ctx context.Context) ([]models.Flight, error)
	Search(ctx context.Context, search models.SearchFlightsRequest) ([]models.Flight, error)
	GetByID(ctx context.Context, id int64) (*models.Flight, error)
	Create(ctx context.Context, add models.AddFlightRequest) (*models.Flight, error)
}

// BookingGateway is the booking-service surface the workflow depends on.
type BookingGateway interface {
	Create(ctx context.Context, booking gateway.CreateBookingRequest) (string, error)
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	BookedSeats(ctx context.Context, flightID int64) ([]string, error)
	Cancel(ctx context.Context, bookingID int64) error
}

// Identity exposes the current session read-only.
type Identity interface {
	Current() (models.Session, bool)
}

// EventPublisher publishes workflow events. Publish failures never fail the
// operation that triggered them.
type EventPublisher interface {
	Publish(subject string, data interface{}) error
}

// FlightCache caches the unfiltered flight list.
type FlightCache interface {
	GetFlightList(ctx context.Context) ([]models.Flight, error)
	SetFlightList(ctx context.Context, flights []models.Flight) error
	InvalidateFlightList(ctx context.Context) error
}

var _ FlightGateway = (*gateway.FlightClient)(nil)
var _ BookingGateway = (*gateway.BookingClient)(nil)
var _ Identity = (*session.Store)(nil)
var _ EventPublisher = (*messaging.NATSClient)(nil)
var _ FlightCache = (*cache.Client)(nil)

type Services struct {
	Flights  *FlightService
	Sessions *SessionService
	Bookings *BookingService
	History  *HistoryService
}

func NewServices(flights FlightGateway, bookings BookingGateway, identity Identity, flightCache FlightCache, publisher EventPublisher, sessionTTL time.Duration) *Services {
	sessionService := NewSessionService(flights, bookings, sessionTTL)

	return &Services{
		Flights:  NewFlightService(flights, flightCache),
		Sessions: sessionService,
		Bookings: NewBookingService(bookings, identity, publisher),
		History:  NewHistoryService(bookings, flights, identity, publisher),
	}
}
