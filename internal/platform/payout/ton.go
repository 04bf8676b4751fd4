package payout

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/wallet"
)

// Flat network fee charged on TON payouts, in balance units.
const tonPayoutFee = 0.01

// TON disburses withdrawals as on-chain transfers from a hot wallet.
type TON struct {
	seed      []string
	configURL string

	mu     sync.Mutex
	wallet *wallet.Wallet
}

func NewTON(seedPhrase, configURL string) *TON {
	if configURL == "" {
		configURL = "https://ton.org/global.config.json"
	}
	var seed []string
	if seedPhrase != "" {
		seed = strings.Fields(seedPhrase)
	}
	return &TON{seed: seed, configURL: configURL}
}

func (t *TON) Name() string { return "ton" }

// Charge transfers amount (in TON) to the destination wallet address and
// waits for the transaction to land.
func (t *TON) Charge(ctx context.Context, amount float64, destination string) (*Receipt, error) {
	if len(t.seed) == 0 {
		return nil, fmt.Errorf("ton wallet seed not configured")
	}

	to, err := address.ParseAddr(destination)
	if err != nil {
		return nil, fmt.Errorf("invalid ton address: %w", err)
	}

	w, err := t.hotWallet(ctx)
	if err != nil {
		return nil, fmt.Errorf("ton wallet: %w", err)
	}

	coins, err := tlb.FromTON(strconv.FormatFloat(amount, 'f', 9, 64))
	if err != nil {
		return nil, fmt.Errorf("invalid ton amount: %w", err)
	}

	transfer, err := w.BuildTransfer(to, coins, true, "affiliate dashboard payout")
	if err != nil {
		return nil, fmt.Errorf("build transfer: %w", err)
	}

	tx, _, err := w.SendWaitTransaction(ctx, transfer)
	if err != nil {
		return nil, fmt.Errorf("send transfer: %w", err)
	}

	return &Receipt{
		TransactionID: base64.StdEncoding.EncodeToString(tx.Hash),
		Fee:           tonPayoutFee,
	}, nil
}

func (t *TON) hotWallet(ctx context.Context) (*wallet.Wallet, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.wallet != nil {
		return t.wallet, nil
	}

	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, t.configURL); err != nil {
		return nil, err
	}
	api := ton.NewAPIClient(pool).WithRetry()

	w, err := wallet.FromSeed(api, t.seed, wallet.V4R2)
	if err != nil {
		return nil, err
	}
	t.wallet = w
	return w, nil
}
