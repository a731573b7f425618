package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skybook/internal/gateway"
	"skybook/internal/models"
)

type MockFlightGateway struct {
	mock.Mock
}

func (m *MockFlightGateway) List(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightGateway) Search(ctx context.Context, search models.SearchFlightsRequest) ([]models.Flight, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightGateway) GetByID(ctx context.Context, id int64) (*models.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightGateway) Create(ctx context.Context, add models.AddFlightRequest) (*models.Flight, error) {
	args := m.Called(ctx, add)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

type MockBookingGateway struct {
	mock.Mock
}

func (m *MockBookingGateway) Create(ctx context.Context, booking gateway.CreateBookingRequest) (string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.Error(1)
}

func (m *MockBookingGateway) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingGateway) BookedSeats(ctx context.Context, flightID int64) ([]string, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingGateway) Cancel(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

// fakeIdentity is a fixed session, or logged-out when empty.
type fakeIdentity struct {
	session  models.Session
	loggedIn bool
}

func (f *fakeIdentity) Current() (models.Session, bool) {
	return f.session, f.loggedIn
}

func loggedIn(email string) *fakeIdentity {
	return &fakeIdentity{
		session:  models.Session{Token: "token", Username: "tester", Email: email, Role: "USER"},
		loggedIn: true,
	}
}
