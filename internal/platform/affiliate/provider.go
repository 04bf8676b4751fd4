package affiliate

import "context"

// Provider reports earnings for one affiliate program. Figures are
// cumulative lifetime totals as reported by the program; the caller is
// responsible for diffing against a baseline before crediting anything.
type Provider interface {
	Name() string
	Earnings(ctx context.Context) (float64, error)
}
