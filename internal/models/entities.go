package models

import "time"

// Gender of a passenger.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Meal preference of a passenger.
type Meal string

const (
	MealNone   Meal = "NONE"
	MealVeg    Meal = "VEG"
	MealNonVeg Meal = "NONVEG"
)

// BookingStatus is the lifecycle state of a booking. Transitions only
// BOOKED -> CANCELLED, never back, never deleted.
type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Flight represents a flight as served by the flight service. Immutable from
// this side; fetched, never mutated.
type Flight struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flightNumber"`
	FromCity       string    `json:"fromCity"`
	ToCity         string    `json:"toCity"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Cost           float64   `json:"cost"`
	SeatsAvailable int       `json:"seatsAvailable"`
}

// Passenger is a roster entry inside an active booking session. It exists
// only for the duration of the session and is discarded on submission.
type Passenger struct {
	Name       string `json:"passengerName"`
	Age        int    `json:"age"`
	Gender     Gender `json:"gender"`
	Meal       Meal   `json:"meal"`
	SeatNumber string `json:"seatNumber"`
}

// Booking represents a confirmed booking as served by the booking service.
type Booking struct {
	ID              int64         `json:"id"`
	FlightID        int64         `json:"flightId"`
	PassengerName   string        `json:"passengerName"`
	Age             int           `json:"age"`
	Gender          Gender        `json:"gender"`
	Meal            Meal          `json:"meal"`
	Email           string        `json:"email"`
	NumberOfTickets int           `json:"numberOfTickets"`
	SeatNumber      string        `json:"seatNumber"`
	Status          BookingStatus `json:"status"`
	PNR             string        `json:"pnr"`
}

// BookingWithFlight joins a booking with its flight for the history view.
// Flight is nil when the flight lookup failed; the booking is still shown.
type BookingWithFlight struct {
	Booking
	Flight *Flight `json:"flight,omitempty"`
}

// Session holds the identity data of the logged-in user. Read-only for
// business logic; set at login, cleared at logout.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return s.Role == "ADMIN"
}
