package payout

import "context"

// Receipt is the processor's confirmation of a completed disbursement.
type Receipt struct {
	TransactionID string  `json:"transaction_id"`
	Fee           float64 `json:"fee"`
}

// Processor disburses a withdrawal to an external destination. A returned
// error means the processor rejected or failed the charge; the caller must
// leave the balance untouched in that case.
type Processor interface {
	Name() string
	Charge(ctx context.Context, amount float64, destination string) (*Receipt, error)
}

// Registry maps withdrawal method names to processors.
type Registry map[string]Processor

func NewRegistry(processors ...Processor) Registry {
	r := make(Registry, len(processors))
	for _, p := range processors {
		r[p.Name()] = p
	}
	return r
}
