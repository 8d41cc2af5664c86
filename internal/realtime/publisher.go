// internal/realtime/publisher.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wl-sites/offgrid-biz-flow/internal/config"
)

// Event is published after every successful mutation so connected clients
// can refetch the affected collection. It carries no record payload: the
// client always reloads the full snapshot from the API.
type Event struct {
	Collection string    `json:"collection"` // products | sales | expenses | settings
	Action     string    `json:"action"`     // created | updated | deleted
	RecordID   string    `json:"record_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type Publisher struct {
	client *redis.Client
}

// NewPublisher connects to Redis. Returns nil when Redis is disabled in the
// config; all Publisher methods are nil-safe so the rest of the service does
// not need to care.
func NewPublisher(cfg config.RedisConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Publisher{client: client}, nil
}

func channelFor(userID uuid.UUID) string {
	return "obf:events:" + userID.String()
}

// Publish is fire-and-forget; a dropped event only delays a client refresh.
func (p *Publisher) Publish(ctx context.Context, userID uuid.UUID, event Event) {
	if p == nil || p.client == nil {
		return
	}

	event.Timestamp = time.Now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal realtime event")
		return
	}

	if err := p.client.Publish(ctx, channelFor(userID), payload).Err(); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"collection": event.Collection,
			"action":     event.Action,
		}).Error("Failed to publish realtime event")
	}
}

// Subscribe opens a pub/sub subscription for one user's change feed.
// The caller owns the returned subscription and must Close it.
func (p *Publisher) Subscribe(ctx context.Context, userID uuid.UUID) (*redis.PubSub, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("realtime updates are not enabled")
	}
	return p.client.Subscribe(ctx, channelFor(userID)), nil
}

func (p *Publisher) Close() {
	if p != nil && p.client != nil {
		p.client.Close()
	}
}
