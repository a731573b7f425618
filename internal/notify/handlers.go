package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/stan.go"

	"skybook/internal/models"
)

type Handlers struct{}

func NewHandlers() *Handlers {
	return &Handlers{}
}

// HandleBookingConfirmed renders the confirmation notification for a
// completed submission. One message covers the whole passenger group.
func (h *Handlers) HandleBookingConfirmed(m *stan.Msg) {
	var event models.BookingConfirmedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking confirmed event", "error", err)
		return
	}

	slog.Info("Sending booking confirmation",
		"email", event.Email,
		"flight_id", event.FlightID,
		"passenger_count", event.PassengerCount,
		"message", confirmationBody(event))

	m.Ack()
}

// HandleBookingCancelled renders the cancellation notification.
func (h *Handlers) HandleBookingCancelled(m *stan.Msg) {
	var event models.BookingCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking cancelled event", "error", err)
		return
	}

	slog.Info("Sending cancellation notice",
		"email", event.Email,
		"booking_id", event.BookingID,
		"message", fmt.Sprintf("Your booking %s has been cancelled.", event.PNR))

	m.Ack()
}

func confirmationBody(event models.BookingConfirmedEvent) string {
	if event.PassengerCount == 1 {
		return fmt.Sprintf("Your booking is confirmed. PNR: %s", strings.Join(event.PNRs, ", "))
	}
	return fmt.Sprintf("Your %d bookings are confirmed. PNRs: %s",
		event.PassengerCount, strings.Join(event.PNRs, ", "))
}
