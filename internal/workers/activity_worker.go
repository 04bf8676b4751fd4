package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	go_redis "github.com/redis/go-redis/v9"

	usermodels "affiliate-bot-backend/internal/features/user/models"
	userrepo "affiliate-bot-backend/internal/features/user/repository"
	redisp "affiliate-bot-backend/internal/platform/redis"
	"affiliate-bot-backend/internal/service/notifications"
)

const consumerGroup = "affiliate_backend_consumers"
const consumerName = "activity_worker_1"

// ActivityWorker consumes the notification stream and materializes posting
// events into user activity logs. Earnings and withdrawal events already
// write their own log entries at the source, so only bot_activity events
// are materialized here.
type ActivityWorker struct {
	rdb   *redisp.Client
	users userrepo.UserRepository
}

func NewActivityWorker(rdb *redisp.Client, users userrepo.UserRepository) *ActivityWorker {
	return &ActivityWorker{
		rdb:   rdb,
		users: users,
	}
}

// Start begins consuming the notification stream. Blocks until ctx is done.
func (w *ActivityWorker) Start(ctx context.Context) {
	err := w.rdb.XGroupCreateMkStream(ctx, notifications.StreamKey, consumerGroup, "$").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		log.Printf("Error creating consumer group: %v", err)
	}

	log.Println("Starting activity worker...")

	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping activity worker...")
			return
		default:
			entries, err := w.rdb.XReadGroup(ctx, &go_redis.XReadGroupArgs{
				Group:    consumerGroup,
				Consumer: consumerName,
				Streams:  []string{notifications.StreamKey, ">"},
				Count:    10,
				Block:    5 * time.Second,
			}).Result()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if err != go_redis.Nil {
					log.Printf("Error reading from stream: %v", err)
					time.Sleep(1 * time.Second)
				}
				continue
			}

			for _, stream := range entries {
				for _, msg := range stream.Messages {
					w.processMessage(ctx, msg.Values)
					w.rdb.XAck(ctx, notifications.StreamKey, consumerGroup, msg.ID)
				}
			}
		}
	}
}

func (w *ActivityWorker) processMessage(ctx context.Context, values map[string]interface{}) {
	raw, ok := values["event"].(string)
	if !ok {
		return
	}

	var event notifications.Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		log.Printf("Error decoding stream event: %v", err)
		return
	}

	if event.Type != notifications.EventBotActivity {
		return
	}

	message := activityMessage(event)
	if message == "" {
		return
	}

	if _, err := w.users.Update(ctx, event.UserID, func(u *usermodels.User) error {
		u.AppendActivity(message)
		return nil
	}); err != nil {
		log.Printf("Error appending activity for user %d: %v", event.UserID, err)
	}
}

func activityMessage(event notifications.Event) string {
	if msg, ok := event.Payload["message"].(string); ok && msg != "" {
		return msg
	}
	platform, _ := event.Payload["platform"].(string)
	if platform == "" {
		return ""
	}
	return fmt.Sprintf("Posted to %s", platform)
}
