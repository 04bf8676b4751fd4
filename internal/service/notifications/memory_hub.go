package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryHub is an in-process hub used in tests and when redis is absent.
type MemoryHub struct {
	mu          sync.Mutex
	events      []Event
	subscribers map[int64][]chan Event
}

func NewMemoryHub() *MemoryHub {
	return &MemoryHub{subscribers: make(map[int64][]chan Event)}
}

func (h *MemoryHub) Publish(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	h.mu.Lock()
	h.events = append(h.events, event)
	subs := append([]chan Event(nil), h.subscribers[event.UserID]...)
	h.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *MemoryHub) Subscribe(ctx context.Context, userID int64) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subscribers[userID] = append(h.subscribers[userID], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subscribers[userID]
		for i, sub := range subs {
			if sub == ch {
				h.subscribers[userID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// Events returns everything published so far; test helper.
func (h *MemoryHub) Events() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Event(nil), h.events...)
}
