package service

import (
	"context"
	"log"
	"os"
	"time"

	"affiliate-bot-backend/internal/features/bot/models"
	"affiliate-bot-backend/internal/platform/affiliate"
	"affiliate-bot-backend/internal/platform/marketplace"
	"affiliate-bot-backend/internal/platform/publisher"
)

// ProductSource fetches candidate products for a keyword. Implementations
// swallow provider failures and return an empty slice.
type ProductSource interface {
	Search(ctx context.Context, keyword string, maxCount int) []marketplace.Product
}

// Runner executes one fetch-and-publish cycle for a keyword. Calls are
// strictly sequential with a fixed delay between products to respect
// external rate limits.
type Runner struct {
	source           ProductSource
	publishers       publisher.Registry
	associateTag     string
	productsPerCycle int
	productDelay     time.Duration
	logger           *log.Logger
}

func NewRunner(source ProductSource, publishers publisher.Registry, associateTag string, productsPerCycle int, productDelay time.Duration) *Runner {
	if productsPerCycle <= 0 {
		productsPerCycle = 5
	}
	return &Runner{
		source:           source,
		publishers:       publishers,
		associateTag:     associateTag,
		productsPerCycle: productsPerCycle,
		productDelay:     productDelay,
		logger:           log.New(os.Stdout, "[CycleRunner] ", log.LstdFlags),
	}
}

// RunCycle fetches products for the keyword and publishes each one to the
// requested platforms, in caller order. It never fails: trouble with one
// product is logged and the loop moves on, and an empty report is a valid
// "nothing succeeded" outcome.
func (r *Runner) RunCycle(ctx context.Context, keyword string, platforms []string) models.CycleReport {
	report := models.CycleReport{Keyword: keyword}

	products := r.source.Search(ctx, keyword, r.productsPerCycle)
	if len(products) == 0 {
		r.logger.Printf("no products for keyword %q", keyword)
		return report
	}

	for i, product := range products {
		if ctx.Err() != nil {
			break
		}

		link := affiliate.Link(product.ASIN, r.associateTag)

		for _, name := range platforms {
			pub, ok := r.publishers[name]
			if !ok {
				r.logger.Printf("unknown platform %q requested, skipping", name)
				report.Outcomes = append(report.Outcomes, publisher.Outcome{
					Platform: name,
					Status:   publisher.StatusSkipped,
					Reason:   "unknown platform",
				})
				continue
			}

			outcome := pub.Publish(ctx, product, link)
			report.Outcomes = append(report.Outcomes, outcome)

			if outcome.Status == publisher.StatusPosted {
				report.Posts = append(report.Posts, models.PostResult{
					Platform:     outcome.Platform,
					PostID:       outcome.PostID,
					ProductTitle: product.Title,
					Link:         link,
					CreatedAt:    time.Now(),
				})
			}
		}

		if i < len(products)-1 {
			if !sleepCtx(ctx, r.productDelay) {
				break
			}
		}
	}

	return report
}

// sleepCtx waits for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
