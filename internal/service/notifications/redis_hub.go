package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	go_redis "github.com/redis/go-redis/v9"

	"affiliate-bot-backend/internal/common/logger"
	redisp "affiliate-bot-backend/internal/platform/redis"
)

// StreamKey is the bounded firehose consumed by the activity worker.
const StreamKey = "notify:events"

const streamMaxLen = 1000

// RedisHub fans events out over redis pub/sub (live sessions) and appends
// them to a capped stream (worker consumption and replay).
type RedisHub struct {
	rdb *redisp.Client
}

func NewRedisHub(rdb *redisp.Client) *RedisHub {
	return &RedisHub{rdb: rdb}
}

func userChannel(userID int64) string {
	return fmt.Sprintf("notify:user:%d", userID)
}

func (h *RedisHub) Publish(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("type", event.Type).Msg("Event marshal failed")
		return
	}

	// Best effort on both legs; a failed push is only a missed dashboard
	// update.
	if err := h.rdb.Publish(ctx, userChannel(event.UserID), data).Err(); err != nil {
		logger.Warn().Err(err).Int64("user_id", event.UserID).Msg("Event publish failed")
	}

	err = h.rdb.XAdd(ctx, &go_redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{"event": string(data)},
	}).Err()
	if err != nil {
		logger.Warn().Err(err).Int64("user_id", event.UserID).Msg("Event stream append failed")
	}
}

func (h *RedisHub) Subscribe(ctx context.Context, userID int64) (<-chan Event, func()) {
	pubsub := h.rdb.Subscribe(ctx, userChannel(userID))
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn().Err(err).Msg("Event decode failed")
				continue
			}
			select {
			case out <- event:
			default:
				// Slow consumer: drop rather than block the hub.
			}
		}
	}()

	return out, func() { _ = pubsub.Close() }
}
