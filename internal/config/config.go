package config

import (
	"os"
	"strconv"
	"time"

	"skybook/internal/cache"
	"skybook/internal/gateway"
	"skybook/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Seat-selection sessions are evicted after this idle time
	SessionTTL time.Duration

	Gateway gateway.Config
	Cache   cache.Config
	NATS    messaging.Config

	CacheEnabled bool
	NATSEnabled  bool
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8090"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		SessionTTL: time.Duration(getEnvInt("SESSION_TTL_MIN", 30)) * time.Minute,

		Gateway: gateway.Config{
			FlightServiceURL:  getEnv("FLIGHT_SERVICE_URL", "http://localhost:8080/flight-service/flights"),
			BookingServiceURL: getEnv("BOOKING_SERVICE_URL", "http://localhost:8080/booking-service/bookings"),
			AuthServiceURL:    getEnv("AUTH_SERVICE_URL", "http://localhost:8080/auth"),
			Timeout:           time.Duration(getEnvInt("GATEWAY_TIMEOUT_SEC", 30)) * time.Second,
		},

		Cache: cache.Config{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			TTL:      time.Duration(getEnvInt("FLIGHT_CACHE_TTL_SEC", 60)) * time.Second,
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "skybook"),
			ClientID:  getEnv("NATS_CLIENT_ID", "skybook-api"),
		},

		CacheEnabled: getEnv("CACHE_ENABLED", "false") == "true",
		NATSEnabled:  getEnv("NATS_ENABLED", "false") == "true",
	}
}

// getEnv returns an environment variable or the default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or the default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
