package models

import "time"

// NATS Event Types
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingConfirmedEvent is published after a full multi-passenger submission
// succeeds.
type BookingConfirmedEvent struct {
	FlightID       int64     `json:"flight_id"`
	Email          string    `json:"email"`
	PassengerCount int       `json:"passenger_count"`
	PNRs           []string  `json:"pnrs"`
	Timestamp      time.Time `json:"timestamp"`
}

// BookingCancelledEvent is published after a booking is cancelled.
type BookingCancelledEvent struct {
	BookingID int64     `json:"booking_id"`
	FlightID  int64     `json:"flight_id"`
	Email     string    `json:"email"`
	PNR       string    `json:"pnr"`
	Timestamp time.Time `json:"timestamp"`
}
