package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "skybook/internal/errors"
	"skybook/internal/gateway"
	"skybook/internal/middleware"
	"skybook/internal/models"
	"skybook/internal/service"
	"skybook/internal/session"
)

// In-memory gateway fakes. The handler tests exercise routing, binding and
// error mapping; gateway behavior itself is covered in internal/gateway.

type fakeFlights struct {
	flights []models.Flight
}

func (f *fakeFlights) List(ctx context.Context) ([]models.Flight, error) {
	return f.flights, nil
}

func (f *fakeFlights) Search(ctx context.Context, search models.SearchFlightsRequest) ([]models.Flight, error) {
	return f.flights, nil
}

func (f *fakeFlights) GetByID(ctx context.Context, id int64) (*models.Flight, error) {
	for i := range f.flights {
		if f.flights[i].ID == id {
			return &f.flights[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeFlights) Create(ctx context.Context, add models.AddFlightRequest) (*models.Flight, error) {
	flight := models.Flight{ID: int64(len(f.flights) + 1), FlightNumber: add.FlightNumber}
	f.flights = append(f.flights, flight)
	return &flight, nil
}

type fakeBookings struct {
	booked    []string
	bookings  []models.Booking
	createErr error
	nextPNR   string
}

func (f *fakeBookings) Create(ctx context.Context, booking gateway.CreateBookingRequest) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.nextPNR, nil
}

func (f *fakeBookings) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	if len(f.bookings) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return f.bookings, nil
}

func (f *fakeBookings) BookedSeats(ctx context.Context, flightID int64) ([]string, error) {
	return f.booked, nil
}

func (f *fakeBookings) Cancel(ctx context.Context, bookingID int64) error {
	return nil
}

type testEnv struct {
	router   *gin.Engine
	store    *session.Store
	flights  *fakeFlights
	bookings *fakeBookings
}

func setupRouter(t *testing.T, authURL string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	flights := &fakeFlights{flights: []models.Flight{{
		ID:            10,
		FlightNumber:  "SB101",
		FromCity:      "DELHI",
		ToCity:        "MUMBAI",
		DepartureTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}}}
	bookings := &fakeBookings{nextPNR: "AB12CD"}
	store := session.NewStore()

	services := service.NewServices(flights, bookings, store, nil, nil, time.Minute)
	authClient := gateway.NewAuthClient(gateway.Config{AuthServiceURL: authURL})

	h := NewHandlers(services, store, authClient)

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)

		api.GET("/flights", h.ListFlights)
		api.POST("/flights/search", h.SearchFlights)
		api.POST("/flights", middleware.AdminOnly(store), h.AddFlight)

		sessions := api.Group("/booking-sessions")
		{
			sessions.POST("", h.CreateSession)
			sessions.GET("/:id", h.GetSession)
			sessions.PATCH("/:id/passengers", h.SetPassengerCount)
			sessions.PUT("/:id/passengers/:index", h.SetPassenger)
			sessions.PATCH("/:id/seats", h.ToggleSeat)
			sessions.POST("/:id/submit", middleware.RequireAuth(store), h.SubmitSession)
		}

		history := api.Group("/history", middleware.RequireAuth(store))
		{
			history.GET("", h.GetHistory)
			history.POST("/cancel", h.RequestCancel)
			history.POST("/cancel/confirm", h.ConfirmCancel)
			history.POST("/cancel/close", h.CloseCancel)
		}
	}

	return &testEnv{router: r, store: store, flights: flights, bookings: bookings}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(env *testEnv, role string) {
	env.store.Set(models.Session{Token: "t", Username: "tester", Email: "user@example.com", Role: role})
}

func TestLoginInstallsSession(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"token": "jwt", "username": "alice", "email": "user@example.com", "role": "USER",
		})
	}))
	defer authServer.Close()

	env := setupRouter(t, authServer.URL)
	w := doJSON(t, env.router, "POST", "/api/login", models.LoginRequest{
		Email: "user@example.com", Password: "secret",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	sess, ok := env.store.Current()
	assert.True(t, ok)
	assert.Equal(t, "jwt", sess.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer authServer.Close()

	env := setupRouter(t, authServer.URL)
	w := doJSON(t, env.router, "POST", "/api/login", models.LoginRequest{
		Email: "user@example.com", Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, ok := env.store.Current()
	assert.False(t, ok)
}

func TestLogoutClearsSession(t *testing.T) {
	env := setupRouter(t, "")
	login(env, "USER")

	w := doJSON(t, env.router, "POST", "/api/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	_, ok := env.store.Current()
	assert.False(t, ok)
}

func TestListFlights(t *testing.T) {
	env := setupRouter(t, "")

	w := doJSON(t, env.router, "GET", "/api/flights", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var flights []models.Flight
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &flights))
	assert.Len(t, flights, 1)
}

func TestAddFlightRequiresAdmin(t *testing.T) {
	env := setupRouter(t, "")
	login(env, "USER")

	w := doJSON(t, env.router, "POST", "/api/flights", models.AddFlightRequest{
		FlightNumber: "SB202", FromCity: "DELHI", ToCity: "GOA",
		DepartureTime: "2025-06-02T08:00", ArrivalTime: "2025-06-02T10:00",
		Cost: 3000, SeatsAvailable: 72,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddFlightAsAdmin(t *testing.T) {
	env := setupRouter(t, "")
	login(env, "ADMIN")

	w := doJSON(t, env.router, "POST", "/api/flights", models.AddFlightRequest{
		FlightNumber: "sb202", FromCity: "delhi", ToCity: "goa",
		DepartureTime: "2025-06-02T08:00", ArrivalTime: "2025-06-02T10:00",
		Cost: 3000, SeatsAvailable: 72,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func createSession(t *testing.T, env *testEnv) models.SessionResponse {
	t.Helper()
	w := doJSON(t, env.router, "POST", "/api/booking-sessions", models.CreateSessionRequest{FlightID: 10})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.SessionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateSessionReturnsSeatGrid(t *testing.T) {
	env := setupRouter(t, "")
	env.bookings.booked = []string{"2", "5"}

	resp := createSession(t, env)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, resp.PassengerCount)
	assert.ElementsMatch(t, []string{"2", "5"}, resp.BookedSeats)
	assert.Len(t, resp.SeatRows, 12)
}

func TestCreateSessionUnknownFlight(t *testing.T) {
	env := setupRouter(t, "")

	w := doJSON(t, env.router, "POST", "/api/booking-sessions", models.CreateSessionRequest{FlightID: 99})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSessionUnknownID(t *testing.T) {
	env := setupRouter(t, "")

	w := doJSON(t, env.router, "GET", "/api/booking-sessions/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeatSelectionRoundTrip(t *testing.T) {
	env := setupRouter(t, "")
	env.bookings.booked = []string{"2"}
	sess := createSession(t, env)

	w := doJSON(t, env.router, "PATCH", "/api/booking-sessions/"+sess.ID+"/passengers",
		models.SetPassengerCountRequest{Count: 2})
	assert.Equal(t, http.StatusOK, w.Code)

	// Booked seat 2 is silently ignored
	for _, seat := range []string{"1", "2", "3"} {
		w = doJSON(t, env.router, "PATCH", "/api/booking-sessions/"+sess.ID+"/seats",
			models.ToggleSeatRequest{Seat: seat})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	var resp models.SessionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"1", "3"}, resp.SelectedSeats)
	assert.Equal(t, "1", resp.Passengers[0].SeatNumber)
	assert.Equal(t, "3", resp.Passengers[1].SeatNumber)
}

func TestSetPassengerDetails(t *testing.T) {
	env := setupRouter(t, "")
	sess := createSession(t, env)

	w := doJSON(t, env.router, "PUT", "/api/booking-sessions/"+sess.ID+"/passengers/0",
		models.SetPassengerRequest{Name: "Alice", Age: 30, Gender: models.GenderFemale, Meal: models.MealVeg})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.SessionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.Passengers[0].Name)
}

func TestSetPassengerRejectsUnknownGender(t *testing.T) {
	env := setupRouter(t, "")
	sess := createSession(t, env)

	w := doJSON(t, env.router, "PUT", "/api/booking-sessions/"+sess.ID+"/passengers/0",
		map[string]interface{}{"passengerName": "Alice", "age": 30, "gender": "UNKNOWN", "meal": "VEG"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func submitReady(t *testing.T, env *testEnv) models.SessionResponse {
	t.Helper()
	sess := createSession(t, env)

	w := doJSON(t, env.router, "PATCH", "/api/booking-sessions/"+sess.ID+"/seats",
		models.ToggleSeatRequest{Seat: "1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, env.router, "PUT", "/api/booking-sessions/"+sess.ID+"/passengers/0",
		models.SetPassengerRequest{Name: "Alice", Age: 30, Gender: models.GenderFemale, Meal: models.MealVeg})
	assert.Equal(t, http.StatusOK, w.Code)

	return sess
}

func TestSubmitRequiresLogin(t *testing.T) {
	env := setupRouter(t, "")
	sess := submitReady(t, env)

	w := doJSON(t, env.router, "POST", "/api/booking-sessions/"+sess.ID+"/submit", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitDestroysSessionOnSuccess(t *testing.T) {
	env := setupRouter(t, "")
	sess := submitReady(t, env)
	login(env, "USER")

	w := doJSON(t, env.router, "POST", "/api/booking-sessions/"+sess.ID+"/submit", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.SubmitResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"AB12CD"}, resp.PNRs)
	assert.Equal(t, "Booking confirmed! Your PNR: AB12CD", resp.Message)

	w = doJSON(t, env.router, "GET", "/api/booking-sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitKeepsSessionOnFailure(t *testing.T) {
	env := setupRouter(t, "")
	sess := submitReady(t, env)
	env.bookings.createErr = errors.New("seat conflict")
	login(env, "USER")

	w := doJSON(t, env.router, "POST", "/api/booking-sessions/"+sess.ID+"/submit", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = doJSON(t, env.router, "GET", "/api/booking-sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHistoryRequiresLogin(t *testing.T) {
	env := setupRouter(t, "")

	w := doJSON(t, env.router, "GET", "/api/history", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHistoryEmptyWhenNoBookings(t *testing.T) {
	env := setupRouter(t, "")
	login(env, "USER")

	w := doJSON(t, env.router, "GET", "/api/history", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.HistoryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Bookings)
}

func TestCancelFlow(t *testing.T) {
	env := setupRouter(t, "")
	env.bookings.bookings = []models.Booking{
		{ID: 1, FlightID: 10, Email: "user@example.com", Status: models.BookingStatusBooked, PNR: "AB12CD"},
	}
	login(env, "USER")

	w := doJSON(t, env.router, "GET", "/api/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, env.router, "POST", "/api/history/cancel", models.CancelRequest{BookingID: 1})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, env.router, "POST", "/api/history/cancel/confirm", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var outcome models.CancelOutcome
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.True(t, outcome.Cancelled)

	// A second confirm has no pending target
	w = doJSON(t, env.router, "POST", "/api/history/cancel/confirm", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelCloseWithoutRequest(t *testing.T) {
	env := setupRouter(t, "")
	env.bookings.bookings = []models.Booking{
		{ID: 1, FlightID: 10, Email: "user@example.com", Status: models.BookingStatusBooked, PNR: "AB12CD"},
	}
	login(env, "USER")

	w := doJSON(t, env.router, "GET", "/api/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, env.router, "POST", "/api/history/cancel/close", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
