// Package integration drives the fully wired API server through its router,
// with stub HTTP backends standing in for the flight, booking and auth
// services. No external infrastructure is required.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"skybook/internal/api"
	"skybook/internal/config"
	"skybook/internal/gateway"
	"skybook/internal/models"
)

// backend is a minimal in-memory rendition of the reservation backend.
type backend struct {
	mu       sync.Mutex
	flights  []models.Flight
	bookings []models.Booking
	nextID   int64
	nextPNR  int
}

func newBackend() *backend {
	return &backend{
		flights: []models.Flight{{
			ID:             10,
			FlightNumber:   "SB101",
			FromCity:       "DELHI",
			ToCity:         "MUMBAI",
			DepartureTime:  time.Now().Add(72 * time.Hour),
			ArrivalTime:    time.Now().Add(74 * time.Hour),
			Cost:           4500,
			SeatsAvailable: 72,
		}},
		nextID:  1,
		nextPNR: 1,
	}
}

func (b *backend) flightHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			json.NewEncoder(w).Encode(b.flights)
		case r.Method == http.MethodGet:
			id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/"), 10, 64)
			for _, f := range b.flights {
				if f.ID == id {
					json.NewEncoder(w).Encode(f)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (b *backend) bookingHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/":
			var req gateway.CreateBookingRequest
			json.NewDecoder(r.Body).Decode(&req)
			pnr := "PNR" + strconv.Itoa(b.nextPNR)
			b.nextPNR++
			b.bookings = append(b.bookings, models.Booking{
				ID:            b.nextID,
				FlightID:      req.FlightID,
				PassengerName: req.PassengerName,
				Email:         req.Email,
				SeatNumber:    req.SeatNumber,
				Status:        models.BookingStatusBooked,
				PNR:           pnr,
			})
			b.nextID++
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(gateway.CreateBookingResponse{PNR: pnr})

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/email/"):
			email := strings.TrimPrefix(r.URL.Path, "/email/")
			var mine []models.Booking
			for _, bk := range b.bookings {
				if bk.Email == email {
					mine = append(mine, bk)
				}
			}
			if len(mine) == 0 {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(mine)

		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/seats"):
			seats := []string{}
			for _, bk := range b.bookings {
				if bk.Status == models.BookingStatusBooked {
					seats = append(seats, bk.SeatNumber)
				}
			}
			json.NewEncoder(w).Encode(seats)

		case r.Method == http.MethodDelete:
			id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/"), 10, 64)
			for i := range b.bookings {
				if b.bookings[i].ID == id {
					b.bookings[i].Status = models.BookingStatusCancelled
					w.WriteHeader(http.StatusOK)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (b *backend) authHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"token":    "jwt-token",
			"username": "tester",
			"email":    req.Email,
			"role":     "USER",
		})
	})
}

// env is one fully wired application instance plus its stub backends.
type env struct {
	t       *testing.T
	router  *gin.Engine
	backend *backend
	servers []*httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := newBackend()
	flightSrv := httptest.NewServer(b.flightHandler())
	bookingSrv := httptest.NewServer(b.bookingHandler())
	authSrv := httptest.NewServer(b.authHandler())

	cfg := config.Load()
	cfg.GinMode = gin.TestMode
	cfg.CacheEnabled = false
	cfg.NATSEnabled = false
	cfg.SessionTTL = time.Minute
	cfg.Gateway = gateway.Config{
		FlightServiceURL:  flightSrv.URL,
		BookingServiceURL: bookingSrv.URL,
		AuthServiceURL:    authSrv.URL,
	}

	server := api.NewServer(cfg)

	e := &env{
		t:       t,
		router:  server.GetRouter(),
		backend: b,
		servers: []*httptest.Server{flightSrv, bookingSrv, authSrv},
	}
	t.Cleanup(func() {
		server.Cleanup()
		for _, s := range e.servers {
			s.Close()
		}
	})
	return e
}

func (e *env) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) decode(w *httptest.ResponseRecorder, out interface{}) {
	e.t.Helper()
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), out))
}

func (e *env) login(email string) {
	e.t.Helper()
	w := e.do("POST", "/api/login", models.LoginRequest{Email: email, Password: "secret"})
	require.Equal(e.t, http.StatusOK, w.Code)
}
