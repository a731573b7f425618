package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skybook/internal/gateway"
	"skybook/internal/logger"
	"skybook/internal/models"
)

type BookingService struct {
	bookings  BookingGateway
	identity  Identity
	publisher EventPublisher
}

func NewBookingService(bookings BookingGateway, identity Identity, publisher EventPublisher) *BookingService {
	return &BookingService{
		bookings:  bookings,
		identity:  identity,
		publisher: publisher,
	}
}

// validate checks the whole form before any network call. A validation
// failure leaves no partial state anywhere.
func (s *BookingService) validate(sess *BookingSession, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrNotLoggedIn
	}
	for _, p := range sess.Plan.Passengers() {
		if strings.TrimSpace(p.Name) == "" || p.Age < 1 {
			return ErrIncompleteForm
		}
	}
	if !sess.Plan.Complete() {
		return ErrIncompleteForm
	}
	return nil
}

// Submit books every passenger of the session, one request at a time in
// roster order. Each response is awaited before the next request goes out so
// the backend never sees two in-flight requests from the same session.
//
// The first failure halts the loop: no retry, no rollback. Bookings already
// confirmed stay confirmed on the backend; their PNRs are logged for
// reconciliation but not surfaced, and the caller sees one generic failure.
// The user finds the partial result through the history view.
func (s *BookingService) Submit(ctx context.Context, sess *BookingSession) (*models.SubmitResponse, error) {
	sess.Lock()
	defer sess.Unlock()

	sessData, ok := s.identity.Current()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	email := sessData.Email

	if err := s.validate(sess, email); err != nil {
		return nil, err
	}

	passengers := sess.Plan.Passengers()
	pnrs := make([]string, 0, len(passengers))

	for i, p := range passengers {
		pnr, err := s.bookings.Create(ctx, gateway.CreateBookingRequest{
			FlightID:        sess.Flight.ID,
			PassengerName:   p.Name,
			Age:             p.Age,
			Gender:          p.Gender,
			Meal:            p.Meal,
			Email:           email,
			NumberOfTickets: 1,
			SeatNumber:      p.SeatNumber,
		})
		if err != nil {
			logger.WithContext(ctx).Error("Booking submission halted",
				"error", err,
				"flight_id", sess.Flight.ID,
				"failed_passenger", i,
				"confirmed_pnrs", pnrs)
			return nil, ErrBookingFailed
		}
		pnrs = append(pnrs, pnr)
	}

	event := models.BookingConfirmedEvent{
		FlightID:       sess.Flight.ID,
		Email:          email,
		PassengerCount: len(passengers),
		PNRs:           pnrs,
		Timestamp:      time.Now(),
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(models.EventBookingConfirmed, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish booking confirmed event",
				"error", err,
				"flight_id", sess.Flight.ID)
		}
	}

	return &models.SubmitResponse{
		PNRs:    pnrs,
		Message: confirmationMessage(pnrs),
	}, nil
}

func confirmationMessage(pnrs []string) string {
	if len(pnrs) == 1 {
		return fmt.Sprintf("Booking confirmed! Your PNR: %s", pnrs[0])
	}
	return fmt.Sprintf("All %d bookings confirmed! PNRs: %s", len(pnrs), strings.Join(pnrs, ", "))
}
