package notifications

import (
	"context"
	"time"
)

// Event types pushed to user sessions.
const (
	EventBotActivity      = "bot_activity"
	EventEarningUpdate    = "earning_update"
	EventWithdrawalStatus = "withdrawal_status"
)

// Event is one typed notification scoped to a user's session group.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	UserID    int64                  `json:"user_id"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Hub pushes events to a user's live sessions. Delivery is fire-and-forget:
// a disconnected session misses events; the event stream keeps a bounded
// backlog for the activity worker and for replay on reconnect.
type Hub interface {
	Publish(ctx context.Context, event Event)
	Subscribe(ctx context.Context, userID int64) (<-chan Event, func())
}
