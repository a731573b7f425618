package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/logger"
	"skybook/internal/models"
)

const cancelRetryMessage = "Could not cancel booking. Please try again."

// HistoryView is the booking history of one user, joined with flights,
// sorted, and carrying at most one pending cancellation awaiting
// confirmation. Replaced wholesale on every Load.
type HistoryView struct {
	mu       sync.Mutex
	email    string
	bookings []*models.BookingWithFlight
	pending  *models.BookingWithFlight
}

// Bookings returns the entries in display order.
func (v *HistoryView) Bookings() []*models.BookingWithFlight {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*models.BookingWithFlight, len(v.bookings))
	copy(out, v.bookings)
	return out
}

// PendingCancel returns the booking awaiting cancel confirmation, if any.
func (v *HistoryView) PendingCancel() *models.BookingWithFlight {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

type HistoryService struct {
	bookings  BookingGateway
	flights   FlightGateway
	identity  Identity
	publisher EventPublisher

	mu    sync.Mutex
	views map[string]*HistoryView
}

func NewHistoryService(bookings BookingGateway, flights FlightGateway, identity Identity, publisher EventPublisher) *HistoryService {
	return &HistoryService{
		bookings:  bookings,
		flights:   flights,
		identity:  identity,
		publisher: publisher,
		views:     make(map[string]*HistoryView),
	}
}

// Load fetches the logged-in user's bookings, joins the flights and sorts
// the result. A backend not-found means the user simply has no bookings.
func (s *HistoryService) Load(ctx context.Context) (*HistoryView, error) {
	sess, ok := s.identity.Current()
	if !ok {
		return nil, ErrNotLoggedIn
	}

	bookings, err := s.bookings.ListByEmail(ctx, sess.Email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load booking history: %w", err)
		}
		bookings = nil
	}

	entries := make([]*models.BookingWithFlight, len(bookings))
	for i, b := range bookings {
		entries[i] = &models.BookingWithFlight{Booking: b}
	}

	// Order is provisional until the join attaches departure times
	sortBookings(entries)
	s.joinFlights(ctx, entries)
	sortBookings(entries)

	view := &HistoryView{email: sess.Email, bookings: entries}

	s.mu.Lock()
	s.views[sess.Email] = view
	s.mu.Unlock()

	return view, nil
}

// view returns the loaded history of the logged-in user.
func (s *HistoryService) view() (*HistoryView, error) {
	sess, ok := s.identity.Current()
	if !ok {
		return nil, ErrNotLoggedIn
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.views[sess.Email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return view, nil
}

// joinFlights resolves the distinct flights referenced by the bookings, one
// fetch per flight, all in parallel, and attaches them by ID. A failed fetch
// leaves the affected bookings without flight detail; it never blocks the
// history.
func (s *HistoryService) joinFlights(ctx context.Context, entries []*models.BookingWithFlight) {
	distinct := make(map[int64]bool)
	for _, e := range entries {
		distinct[e.FlightID] = true
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		flights = make(map[int64]*models.Flight, len(distinct))
	)
	for id := range distinct {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			flight, err := s.flights.GetByID(ctx, id)
			if err != nil {
				logger.WithContext(ctx).Warn("Failed to resolve flight for history",
					"flight_id", id,
					"error", err)
				return
			}
			mu.Lock()
			flights[id] = flight
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	for _, e := range entries {
		e.Flight = flights[e.FlightID]
	}
}

// sortBookings orders active bookings before cancelled ones, then newest
// departures first within each group. Bookings whose flight is unresolved
// fall back to identifier order. Stable and idempotent.
func sortBookings(entries []*models.BookingWithFlight) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Status != b.Status {
			return a.Status == models.BookingStatusBooked
		}
		if a.Flight != nil && b.Flight != nil && !a.Flight.DepartureTime.Equal(b.Flight.DepartureTime) {
			return a.Flight.DepartureTime.After(b.Flight.DepartureTime)
		}
		return a.ID > b.ID
	})
}

// RequestCancel opens the confirmation gate for one booking. No backend call
// happens until ConfirmCancel. Requesting again simply moves the gate.
func (s *HistoryService) RequestCancel(bookingID int64) (*models.BookingWithFlight, error) {
	view, err := s.view()
	if err != nil {
		return nil, err
	}

	view.mu.Lock()
	defer view.mu.Unlock()

	for _, e := range view.bookings {
		if e.ID == bookingID {
			view.pending = e
			return e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// CloseConfirm discards the pending cancel target without contacting the
// backend. Safe to call at any time.
func (s *HistoryService) CloseConfirm() error {
	view, err := s.view()
	if err != nil {
		return err
	}

	view.mu.Lock()
	defer view.mu.Unlock()
	view.pending = nil
	return nil
}

// ConfirmCancel performs the backend cancellation of the pending booking.
// On success only that booking's status flips to CANCELLED locally and the
// list is re-sorted; no reload. A business-rule rejection (the 24-hour
// departure window) surfaces the backend's message; any other failure
// surfaces a generic retry message. The gate closes either way.
func (s *HistoryService) ConfirmCancel(ctx context.Context) (*models.CancelOutcome, error) {
	view, err := s.view()
	if err != nil {
		return nil, err
	}

	view.mu.Lock()
	pending := view.pending
	view.pending = nil
	view.mu.Unlock()

	if pending == nil {
		return nil, ErrNoPendingCancel
	}

	if err := s.bookings.Cancel(ctx, pending.ID); err != nil {
		if rejection, ok := apperrors.AsRejection(err); ok {
			return &models.CancelOutcome{Cancelled: false, Message: rejection.Message}, nil
		}
		logger.WithContext(ctx).Error("Failed to cancel booking",
			"error", err,
			"booking_id", pending.ID)
		return &models.CancelOutcome{Cancelled: false, Message: cancelRetryMessage}, nil
	}

	view.mu.Lock()
	pending.Status = models.BookingStatusCancelled
	sortBookings(view.bookings)
	view.mu.Unlock()

	if s.publisher != nil {
		event := models.BookingCancelledEvent{
			BookingID: pending.ID,
			FlightID:  pending.FlightID,
			Email:     pending.Email,
			PNR:       pending.PNR,
			Timestamp: time.Now(),
		}
		if err := s.publisher.Publish(models.EventBookingCancelled, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish booking cancelled event",
				"error", err,
				"booking_id", pending.ID)
		}
	}

	return &models.CancelOutcome{Cancelled: true}, nil
}
