package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"skybook/internal/models"
)

const flightListKey = "flights:all"

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

// Client caches the unfiltered flight list. Search results are never cached.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cfg.TTL}, nil
}

// GetFlightList returns the cached flight list, or an error on a miss.
func (c *Client) GetFlightList(ctx context.Context) ([]models.Flight, error) {
	raw, err := c.rdb.Get(ctx, flightListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("flight list not in cache")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}

	var flights []models.Flight
	if err := json.Unmarshal(raw, &flights); err != nil {
		return nil, fmt.Errorf("invalid flight list in cache: %w", err)
	}

	return flights, nil
}

// SetFlightList stores the flight list with the configured TTL.
func (c *Client) SetFlightList(ctx context.Context, flights []models.Flight) error {
	raw, err := json.Marshal(flights)
	if err != nil {
		return fmt.Errorf("failed to marshal flight list: %w", err)
	}

	if err := c.rdb.Set(ctx, flightListKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store flight list: %w", err)
	}

	return nil
}

// InvalidateFlightList drops the cached list, e.g. after an admin adds a
// flight.
func (c *Client) InvalidateFlightList(ctx context.Context) error {
	return c.rdb.Del(ctx, flightListKey).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
