package service

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"affiliate-bot-backend/internal/platform/affiliate"
)

// Snapshot is a live view of provider-reported earnings. Totals are
// cumulative figures at call time, never deltas since the last poll.
type Snapshot struct {
	PerProvider map[string]float64 `json:"per_provider"`
	Total       float64            `json:"total"`
	CollectedAt time.Time          `json:"collected_at"`
}

// Aggregator fans out to every configured earnings provider.
type Aggregator struct {
	providers []affiliate.Provider
	logger    *log.Logger
}

func NewAggregator(providers ...affiliate.Provider) *Aggregator {
	return &Aggregator{
		providers: providers,
		logger:    log.New(os.Stdout, "[Earnings] ", log.LstdFlags),
	}
}

// Collect queries all providers independently. A failing provider
// contributes zero for its slot and never aborts the others.
func (a *Aggregator) Collect(ctx context.Context) Snapshot {
	perProvider := make(map[string]float64, len(a.providers))
	var mu sync.Mutex

	g := new(errgroup.Group)
	for _, p := range a.providers {
		p := p
		g.Go(func() error {
			amount, err := p.Earnings(ctx)
			if err != nil {
				a.logger.Printf("provider %s failed: %v", p.Name(), err)
				amount = 0
			}
			mu.Lock()
			perProvider[p.Name()] = amount
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var total float64
	for _, v := range perProvider {
		total += v
	}

	return Snapshot{PerProvider: perProvider, Total: total, CollectedAt: time.Now()}
}
