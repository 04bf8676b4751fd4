package publisher

import (
	"context"
	"strings"

	"affiliate-bot-backend/internal/platform/marketplace"
)

// Status distinguishes the outcome of one publish attempt. Only "posted"
// counts as success; the other variants exist so callers and tests can tell
// an unconfigured platform from a real failure without reading logs.
type Status string

const (
	StatusPosted   Status = "posted"
	StatusSkipped  Status = "skipped"  // credentials absent, no attempt made
	StatusFailed   Status = "failed"   // provider call attempted and failed
	StatusDisabled Status = "disabled" // integration intentionally turned off
)

// Outcome is the tagged result of one publish attempt.
type Outcome struct {
	Platform string `json:"platform"`
	Status   Status `json:"status"`
	PostID   string `json:"post_id,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func Posted(platform, postID string) Outcome {
	return Outcome{Platform: platform, Status: StatusPosted, PostID: postID}
}

func Skipped(platform string) Outcome {
	return Outcome{Platform: platform, Status: StatusSkipped, Reason: "credentials not configured"}
}

func Failed(platform string, err error) Outcome {
	return Outcome{Platform: platform, Status: StatusFailed, Reason: err.Error()}
}

func Disabled(platform string) Outcome {
	return Outcome{Platform: platform, Status: StatusDisabled, Reason: "integration disabled"}
}

// Publisher posts a product with its affiliate link to one platform.
// Implementations never return an error: every failure mode is folded into
// the outcome.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, product marketplace.Product, link string) Outcome
}

// Registry maps platform names to publishers.
type Registry map[string]Publisher

func NewRegistry(publishers ...Publisher) Registry {
	r := make(Registry, len(publishers))
	for _, p := range publishers {
		r[p.Name()] = p
	}
	return r
}

// Caption derives the post text from the product title, a couple of feature
// bullets and the affiliate link.
func Caption(product marketplace.Product, link string) string {
	var b strings.Builder
	b.WriteString(product.Title)
	for i, f := range product.Features {
		if i >= 2 {
			break
		}
		b.WriteString("\n• ")
		b.WriteString(f)
	}
	b.WriteString("\n\n🛒 ")
	b.WriteString(link)
	b.WriteString("\n#ad")
	return b.String()
}
