package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "monopoly:announcements"

var ErrEmptyChannel = errors.New("redis channel is empty")

// Announcement is the payload published for every message.
type Announcement struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// Publisher announces landing messages on a Redis pub/sub channel.
type Publisher struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string
}

// New connects to addr and checks the connection with a PING.
func New(ctx context.Context, logger *slog.Logger, addr, channel string) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	publisher, err := NewWithClient(logger, client, channel)
	if err != nil {
		return nil, err
	}

	return publisher, nil
}

func NewWithClient(logger *slog.Logger, client *redis.Client, channel string) (*Publisher, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}

	return &Publisher{
		logger:  logger.With("component", "redis-publisher", "channel", channel),
		client:  client,
		channel: channel,
	}, nil
}

// Say publishes message. Failures are logged, announcing never fails a turn.
func (that *Publisher) Say(ctx context.Context, message string) {
	if err := that.Publish(ctx, message); err != nil {
		that.logger.Error("failed to publish announcement", "error", err)
	}
}

func (that *Publisher) Publish(ctx context.Context, message string) error {
	payload, err := json.Marshal(Announcement{
		ID:      uuid.NewString(),
		Message: message,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal announcement: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish announcement in Redis: %w", err)
	}

	return nil
}

func (that *Publisher) Close() error {
	if err := that.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
