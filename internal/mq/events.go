package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/gommon/log"

	"shopadmin/internal/logging"
)

// Event channels.
const (
	ChannelUserRegistered = "user.registered"
	ChannelVisitorDeleted = "user.visitor_deleted"
)

// UserEvent is the payload of every user lifecycle event.
type UserEvent struct {
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	Roles      []string  `json:"roles,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher announces committed user changes. Delivery is best effort:
// a failed publish is logged and never undoes the change.
type EventPublisher interface {
	UserRegistered(ctx context.Context, event UserEvent)
	VisitorDeleted(ctx context.Context, event UserEvent)
}

// Publisher is an EventPublisher over an MQ.
type Publisher struct {
	mq     *MQ
	logger *log.Logger
}

// NewPublisher wraps m. A nil m publishes nowhere.
func NewPublisher(m *MQ) *Publisher {
	if m == nil {
		m = New(nil)
	}
	return &Publisher{mq: m, logger: logging.New("events")}
}

func (p *Publisher) UserRegistered(ctx context.Context, event UserEvent) {
	p.publish(ctx, ChannelUserRegistered, event)
}

func (p *Publisher) VisitorDeleted(ctx context.Context, event UserEvent) {
	p.publish(ctx, ChannelVisitorDeleted, event)
}

func (p *Publisher) publish(ctx context.Context, channel string, event UserEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Errorj(log.JSON{"msg": "encode event", "channel": channel, "error": err.Error()})
		return
	}

	id, err := p.mq.Publish(ctx, channel, data, map[string]string{"event": channel})
	if err != nil {
		p.logger.Warnj(log.JSON{"msg": "publish failed", "channel": channel, "user_id": event.UserID, "error": err.Error()})
		return
	}
	p.logger.Debugj(log.JSON{"msg": "event published", "channel": channel, "message_id": id, "user_id": event.UserID})
}
