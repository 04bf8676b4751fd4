package publisher

import (
	"context"

	"affiliate-bot-backend/internal/platform/marketplace"
)

// DisabledPublisher stands in for platforms whose integrations are not
// wired up yet (video uploads, marketplace listings). It reports an
// explicit disabled outcome instead of fabricating a post identifier, so
// operators can tell real posts from placeholders.
type DisabledPublisher struct {
	name string
}

func NewYouTube() *DisabledPublisher { return &DisabledPublisher{name: "youtube"} }
func NewEtsy() *DisabledPublisher    { return &DisabledPublisher{name: "etsy"} }

func (d *DisabledPublisher) Name() string { return d.name }

func (d *DisabledPublisher) Publish(ctx context.Context, product marketplace.Product, link string) Outcome {
	return Disabled(d.name)
}
