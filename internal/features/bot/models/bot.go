package models

import (
	"fmt"
	"time"

	"affiliate-bot-backend/internal/platform/publisher"
)

// BotConfig is the per (user, platform) scheduling unit. Re-starting a bot
// replaces its config; stopping clears Active but keeps the record so status
// stays queryable.
type BotConfig struct {
	UserID    int64     `json:"user_id"`
	Platform  string    `json:"platform"`
	Keywords  []string  `json:"keywords"`
	Platforms []string  `json:"platforms"`
	Active    bool      `json:"active"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key identifies a bot in the task registry and the config store.
func Key(userID int64, platform string) string {
	return fmt.Sprintf("%d:%s", userID, platform)
}

// PostResult records one successfully created post. Only posted outcomes
// produce a PostResult; skipped, failed and disabled attempts appear in the
// cycle report's outcome list instead.
type PostResult struct {
	Platform     string    `json:"platform"`
	PostID       string    `json:"post_id"`
	ProductTitle string    `json:"product_title"`
	Link         string    `json:"link"`
	CreatedAt    time.Time `json:"created_at"`
}

// CycleReport is the full account of one fetch-and-publish cycle.
// An empty report is a valid "nothing succeeded" outcome, not an error.
type CycleReport struct {
	Keyword  string              `json:"keyword"`
	Posts    []PostResult        `json:"posts"`
	Outcomes []publisher.Outcome `json:"outcomes"`
}

// BotStatus is the externally visible state of one bot.
type BotStatus struct {
	Platform  string    `json:"platform"`
	Active    bool      `json:"active"`
	Running   bool      `json:"running"`
	Keywords  []string  `json:"keywords,omitempty"`
	Platforms []string  `json:"platforms,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
}
