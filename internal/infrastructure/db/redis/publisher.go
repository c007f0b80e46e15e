package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

// Publisher delivers notifications as JSON messages on a Redis pub/sub
// channel, where the mail service picks them up.
type Publisher struct {
	client  *redis.Client
	channel string
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

var _ ports.Notifier = (*Publisher)(nil)

type message struct {
	Event      string            `json:"event"`
	Recipient  string            `json:"recipient"`
	Subject    string            `json:"subject"`
	Data       map[string]string `json:"data,omitempty"`
	OccurredAt string            `json:"occurred_at"`
}

func (p *Publisher) Notify(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(message{
		Event:      n.Event,
		Recipient:  n.Recipient,
		Subject:    n.Subject,
		Data:       n.Data,
		OccurredAt: n.OccurredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
