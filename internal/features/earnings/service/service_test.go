package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	name   string
	amount float64
	err    error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Earnings(ctx context.Context) (float64, error) {
	return p.amount, p.err
}

func TestCollectSumsAllProviders(t *testing.T) {
	aggregator := NewAggregator(
		&stubProvider{name: "associates", amount: 12.50},
		&stubProvider{name: "cj", amount: 30.00},
	)

	snapshot := aggregator.Collect(context.Background())

	assert.Equal(t, 12.50, snapshot.PerProvider["associates"])
	assert.Equal(t, 30.00, snapshot.PerProvider["cj"])
	assert.InDelta(t, 42.50, snapshot.Total, 1e-9)
	assert.False(t, snapshot.CollectedAt.IsZero())
}

func TestCollectFailingProviderContributesZero(t *testing.T) {
	aggregator := NewAggregator(
		&stubProvider{name: "associates", err: errors.New("timeout")},
		&stubProvider{name: "cj", amount: 42.00},
	)

	snapshot := aggregator.Collect(context.Background())

	assert.Equal(t, 0.0, snapshot.PerProvider["associates"])
	assert.Equal(t, 42.00, snapshot.PerProvider["cj"])
	assert.Equal(t, 42.00, snapshot.Total)
}

func TestCollectNoProviders(t *testing.T) {
	snapshot := NewAggregator().Collect(context.Background())

	assert.Empty(t, snapshot.PerProvider)
	assert.Zero(t, snapshot.Total)
}
