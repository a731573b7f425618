package models

// LoginRequest - credentials for the auth service
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SearchFlightsRequest - search criteria forwarded to the flight service
type SearchFlightsRequest struct {
	FromCity   string `json:"fromCity" binding:"required"`
	ToCity     string `json:"toCity" binding:"required"`
	TravelDate string `json:"travelDate" binding:"required"` // ISO date string
}

// AddFlightRequest - admin-only flight creation payload
type AddFlightRequest struct {
	FlightNumber   string  `json:"flightNumber" binding:"required"`
	FromCity       string  `json:"fromCity" binding:"required"`
	ToCity         string  `json:"toCity" binding:"required"`
	DepartureTime  string  `json:"departureTime" binding:"required"`
	ArrivalTime    string  `json:"arrivalTime" binding:"required"`
	Cost           float64 `json:"cost" binding:"required"`
	SeatsAvailable int     `json:"seatsAvailable" binding:"required"`
}

// CreateSessionRequest - starts a seat-selection session for a flight
type CreateSessionRequest struct {
	FlightID int64 `json:"flight_id" binding:"required"`
}

// SetPassengerCountRequest - resizes the passenger roster of a session
type SetPassengerCountRequest struct {
	Count int `json:"count" binding:"required"`
}

// SetPassengerRequest - fills in details for one roster position
type SetPassengerRequest struct {
	Name   string `json:"passengerName" binding:"required"`
	Age    int    `json:"age" binding:"required"`
	Gender Gender `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	Meal   Meal   `json:"meal" binding:"required,oneof=NONE VEG NONVEG"`
}

// ToggleSeatRequest - toggles one seat of the session's selection
type ToggleSeatRequest struct {
	Seat string `json:"seat" binding:"required"`
}

// SessionResponse - full state of a seat-selection session
type SessionResponse struct {
	ID             string      `json:"id"`
	Flight         *Flight     `json:"flight"`
	PassengerCount int         `json:"passenger_count"`
	Passengers     []Passenger `json:"passengers"`
	SelectedSeats  []string    `json:"selected_seats"`
	BookedSeats    []string    `json:"booked_seats"`
	SeatRows       [][]string  `json:"seat_rows"`
}

// SubmitResponse - outcome of a successful multi-passenger submission
type SubmitResponse struct {
	PNRs    []string `json:"pnrs"`
	Message string   `json:"message"`
}

// HistoryResponse - the joined and sorted booking history
type HistoryResponse struct {
	Bookings []*BookingWithFlight `json:"bookings"`
}

// CancelRequest - selects the booking for the cancellation confirmation gate
type CancelRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

// CancelOutcome - result of a confirmed cancellation attempt
type CancelOutcome struct {
	Cancelled bool   `json:"cancelled"`
	Message   string `json:"message,omitempty"`
}
