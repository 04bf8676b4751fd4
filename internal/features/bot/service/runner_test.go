package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"affiliate-bot-backend/internal/platform/marketplace"
	"affiliate-bot-backend/internal/platform/publisher"
)

type stubSource struct {
	products []marketplace.Product
}

func (s *stubSource) Search(ctx context.Context, keyword string, maxCount int) []marketplace.Product {
	if len(s.products) > maxCount {
		return s.products[:maxCount]
	}
	return s.products
}

type stubPublisher struct {
	name  string
	fail  bool
	calls int
}

func (p *stubPublisher) Name() string { return p.name }

func (p *stubPublisher) Publish(ctx context.Context, product marketplace.Product, link string) publisher.Outcome {
	p.calls++
	if p.fail {
		return publisher.Failed(p.name, errors.New("boom"))
	}
	return publisher.Posted(p.name, fmt.Sprintf("%s-%s-%d", p.name, product.ASIN, p.calls))
}

func twoProducts() []marketplace.Product {
	return []marketplace.Product{
		{ASIN: "B001", Title: "Earbuds"},
		{ASIN: "B002", Title: "Stand"},
	}
}

func TestRunCyclePostsEveryProductToEveryPlatform(t *testing.T) {
	twitter := &stubPublisher{name: "twitter"}
	pinterest := &stubPublisher{name: "pinterest"}
	runner := NewRunner(&stubSource{products: twoProducts()}, publisher.NewRegistry(twitter, pinterest), "demo-20", 5, 0)

	report := runner.RunCycle(context.Background(), "earbuds", []string{"twitter", "pinterest"})

	assert.Equal(t, "earbuds", report.Keyword)
	require.Len(t, report.Posts, 4)
	require.Len(t, report.Outcomes, 4)
	assert.Equal(t, 2, twitter.calls)
	assert.Equal(t, 2, pinterest.calls)

	seen := make(map[string]bool)
	for _, post := range report.Posts {
		seen[post.PostID] = true
		assert.Contains(t, post.Link, "tag=demo-20")
	}
	assert.Len(t, seen, 4)
}

func TestRunCycleRecordsFailuresWithoutPosts(t *testing.T) {
	failing := &stubPublisher{name: "twitter", fail: true}
	runner := NewRunner(&stubSource{products: twoProducts()}, publisher.NewRegistry(failing), "demo-20", 5, 0)

	report := runner.RunCycle(context.Background(), "earbuds", []string{"twitter"})

	assert.Empty(t, report.Posts)
	require.Len(t, report.Outcomes, 2)
	for _, outcome := range report.Outcomes {
		assert.Equal(t, publisher.StatusFailed, outcome.Status)
	}
}

func TestRunCycleSkipsUnknownPlatform(t *testing.T) {
	runner := NewRunner(&stubSource{products: twoProducts()[:1]}, publisher.NewRegistry(), "demo-20", 5, 0)

	report := runner.RunCycle(context.Background(), "earbuds", []string{"myspace"})

	assert.Empty(t, report.Posts)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, publisher.StatusSkipped, report.Outcomes[0].Status)
	assert.Equal(t, "unknown platform", report.Outcomes[0].Reason)
}

func TestRunCycleEmptySearchYieldsEmptyReport(t *testing.T) {
	twitter := &stubPublisher{name: "twitter"}
	runner := NewRunner(&stubSource{}, publisher.NewRegistry(twitter), "demo-20", 5, 0)

	report := runner.RunCycle(context.Background(), "earbuds", []string{"twitter"})

	assert.Empty(t, report.Posts)
	assert.Empty(t, report.Outcomes)
	assert.Zero(t, twitter.calls)
}

func TestRunCycleHonoursProductsPerCycle(t *testing.T) {
	var products []marketplace.Product
	for i := 0; i < 10; i++ {
		products = append(products, marketplace.Product{ASIN: fmt.Sprintf("B%03d", i), Title: "P"})
	}
	twitter := &stubPublisher{name: "twitter"}
	runner := NewRunner(&stubSource{products: products}, publisher.NewRegistry(twitter), "demo-20", 3, 0)

	report := runner.RunCycle(context.Background(), "earbuds", []string{"twitter"})

	assert.Len(t, report.Posts, 3)
}

func TestRunCycleStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	twitter := &stubPublisher{name: "twitter"}
	runner := NewRunner(&stubSource{products: twoProducts()}, publisher.NewRegistry(twitter), "demo-20", 5, 0)

	report := runner.RunCycle(ctx, "earbuds", []string{"twitter"})

	assert.Empty(t, report.Posts)
	assert.Zero(t, twitter.calls)
}
