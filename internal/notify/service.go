// Package notify consumes booking events and turns them into user
// notifications. It runs as its own binary so a notification backlog never
// slows the API down.
package notify

import (
	"context"
	"log/slog"

	"skybook/internal/config"
	"skybook/internal/messaging"
	"skybook/internal/models"
)

const queueGroup = "notifiers"

type Service struct {
	nats     *messaging.NATSClient
	handlers *Handlers
}

func NewService(cfg *config.Config) (*Service, error) {
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	return &Service{
		nats:     natsClient,
		handlers: NewHandlers(),
	}, nil
}

func (s *Service) Start() error {
	slog.Info("Starting notification consumers...")

	_, err := s.nats.SubscribeQueue(models.EventBookingConfirmed, queueGroup, s.handlers.HandleBookingConfirmed)
	if err != nil {
		return err
	}

	_, err = s.nats.SubscribeQueue(models.EventBookingCancelled, queueGroup, s.handlers.HandleBookingCancelled)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down notification service...")

	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
			return err
		}
	}

	return nil
}
