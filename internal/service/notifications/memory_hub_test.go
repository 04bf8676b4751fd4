package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHubDeliversToSubscriber(t *testing.T) {
	hub := NewMemoryHub()

	ch, cancel := hub.Subscribe(context.Background(), 7)
	defer cancel()

	hub.Publish(context.Background(), Event{Type: EventBotActivity, UserID: 7})
	hub.Publish(context.Background(), Event{Type: EventEarningUpdate, UserID: 8})

	select {
	case event := <-ch:
		assert.Equal(t, EventBotActivity, event.Type)
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.CreatedAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	// Nothing else for this user.
	select {
	case event := <-ch:
		t.Fatalf("unexpected event %v", event)
	default:
	}

	require.Len(t, hub.Events(), 2)
}

func TestMemoryHubCancelStopsDelivery(t *testing.T) {
	hub := NewMemoryHub()

	ch, cancel := hub.Subscribe(context.Background(), 7)
	cancel()

	_, open := <-ch
	assert.False(t, open)
}
