package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"
	"skybook/internal/seatplan"
)

// BookingSession is one active seat-selection workflow: a flight, the booked
// seat set fetched at session start and the user's selection/roster state.
// It lives only until submission or expiry.
type BookingSession struct {
	ID     string
	Flight *models.Flight
	Plan   *seatplan.Plan

	mu        sync.Mutex
	expiresAt time.Time
}

// Lock serializes plan access across handler goroutines.
func (bs *BookingSession) Lock()   { bs.mu.Lock() }
func (bs *BookingSession) Unlock() { bs.mu.Unlock() }

// SessionService owns the in-memory booking sessions.
type SessionService struct {
	flights  FlightGateway
	bookings BookingGateway
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*BookingSession
}

func NewSessionService(flights FlightGateway, bookings BookingGateway, ttl time.Duration) *SessionService {
	return &SessionService{
		flights:  flights,
		bookings: bookings,
		ttl:      ttl,
		sessions: make(map[string]*BookingSession),
	}
}

// Create starts a session for a flight: fetches the flight and its booked
// seats, then builds the seat plan. A booking service with no bookings for
// the flight yields an empty booked set, not an error.
func (s *SessionService) Create(ctx context.Context, flightID int64) (*BookingSession, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to load flight: %w", err)
	}

	booked, err := s.bookings.BookedSeats(ctx, flightID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load booked seats: %w", err)
		}
		booked = nil
	}

	sess := &BookingSession{
		ID:        uuid.New().String(),
		Flight:    flight,
		Plan:      seatplan.New(booked),
		expiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.purgeExpiredLocked()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns an active session and refreshes its expiry.
func (s *SessionService) Get(id string) (*BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}

	sess.expiresAt = time.Now().Add(s.ttl)
	return sess, nil
}

// Remove destroys a session, e.g. after a successful submission.
func (s *SessionService) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionService) purgeExpiredLocked() {
	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

// Snapshot renders the full session state for the API.
func (s *SessionService) Snapshot(sess *BookingSession) *models.SessionResponse {
	sess.Lock()
	defer sess.Unlock()

	return &models.SessionResponse{
		ID:             sess.ID,
		Flight:         sess.Flight,
		PassengerCount: sess.Plan.PassengerCount(),
		Passengers:     sess.Plan.Passengers(),
		SelectedSeats:  sess.Plan.Selected(),
		BookedSeats:    sess.Plan.BookedSeats(),
		SeatRows:       seatplan.Rows(),
	}
}

// SetPassengerCount resizes the roster and clears the selection.
func (s *SessionService) SetPassengerCount(sess *BookingSession, count int) int {
	sess.Lock()
	defer sess.Unlock()
	return sess.Plan.SetPassengerCount(count)
}

// SetPassenger fills in details for one roster position.
func (s *SessionService) SetPassenger(sess *BookingSession, index int, details models.SetPassengerRequest) error {
	sess.Lock()
	defer sess.Unlock()

	if !sess.Plan.SetPassenger(index, details.Name, details.Age, details.Gender, details.Meal) {
		return fmt.Errorf("passenger index %d out of range", index)
	}
	return nil
}

// ToggleSeat flips one seat of the session's selection.
func (s *SessionService) ToggleSeat(sess *BookingSession, seat string) {
	sess.Lock()
	defer sess.Unlock()
	sess.Plan.ToggleSeat(seat)
}
