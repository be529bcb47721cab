// Package mq publishes domain events to a message broker.
package mq

import (
	"context"
	"fmt"

	"shopadmin/internal/config"
)

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// MQ wraps a backend with a stable API.
type MQ struct {
	backend Backend
}

// New constructs an MQ wrapper for the provided backend.
func New(backend Backend) *MQ {
	if backend == nil {
		backend = NoopBackend{}
	}
	return &MQ{backend: backend}
}

// Publish sends a message to the named channel.
func (m *MQ) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return m.backend.Publish(ctx, channel, data, attrs)
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	return m.backend.Close()
}

// NewBackend selects the backend named by EVENTS_BACKEND.
func NewBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.EventsBackend {
	case "", "none":
		return NoopBackend{}, nil
	case "rabbitmq":
		client, err := NewRabbitMQClient(cfg.RabbitMQURL)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		return client, nil
	case "pubsub":
		client, err := NewPubSubClient(ctx, cfg.PubSubProjectID, cfg.PubSubCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("pubsub: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported EVENTS_BACKEND %q", cfg.EventsBackend)
	}
}

// NoopBackend drops every message.
type NoopBackend struct{}

func (NoopBackend) Publish(context.Context, string, []byte, map[string]string) (string, error) {
	return "", nil
}

func (NoopBackend) Close() error { return nil }
