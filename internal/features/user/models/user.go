package models

import "time"

// ActivityLogLimit caps the number of retained activity entries per user.
const ActivityLogLimit = 50

// ActivityEntry is one line of the user's dashboard activity feed.
type ActivityEntry struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// User is the dashboard user with their financial state. Created lazily on
// first access and never destroyed. All mutations must go through the
// repository's serialized Update so balances stay consistent.
type User struct {
	ID       int64  `json:"id" example:"123456789"`
	Username string `json:"username" example:"johndoe"`

	// TotalEarnings is the cumulative amount ever credited from affiliate
	// programs. AvailableBalance = TotalEarnings - completed withdrawals.
	TotalEarnings    float64 `json:"total_earnings"`
	AvailableBalance float64 `json:"available_balance"`
	Revenue          float64 `json:"revenue"`
	Profit           float64 `json:"profit"`

	// ReportedTotal is the last cumulative figure seen from the earnings
	// providers. Only positive deltas against it are credited, so polling
	// the same cumulative report twice never double-counts.
	ReportedTotal float64 `json:"reported_total"`

	ActivePlatforms map[string]bool `json:"active_platforms"`
	ActivityLog     []ActivityEntry `json:"activity_log"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppendActivity prepends an entry, keeping the log capped.
func (u *User) AppendActivity(message string) {
	entry := ActivityEntry{Message: message, CreatedAt: time.Now()}
	u.ActivityLog = append([]ActivityEntry{entry}, u.ActivityLog...)
	if len(u.ActivityLog) > ActivityLogLimit {
		u.ActivityLog = u.ActivityLog[:ActivityLogLimit]
	}
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID               int64           `json:"id"`
	Username         string          `json:"username"`
	TotalEarnings    float64         `json:"total_earnings"`
	AvailableBalance float64         `json:"available_balance"`
	Revenue          float64         `json:"revenue"`
	Profit           float64         `json:"profit"`
	ActivePlatforms  map[string]bool `json:"active_platforms"`
	ActivityLog      []ActivityEntry `json:"activity_log"`
	CreatedAt        time.Time       `json:"created_at"`
}
