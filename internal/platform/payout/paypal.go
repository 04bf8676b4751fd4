package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PayPal transfer fee per payout item (US domestic).
const paypalPayoutFee = 0.25

// PayPal disburses withdrawals via the PayPal Payouts API.
type PayPal struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client
}

func NewPayPal(baseURL, clientID, secret string) *PayPal {
	if baseURL == "" {
		baseURL = "https://api-m.paypal.com"
	}
	return &PayPal{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		secret:     secret,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *PayPal) Name() string { return "paypal" }

// Charge sends a single-item payout batch to the destination email.
func (p *PayPal) Charge(ctx context.Context, amount float64, destination string) (*Receipt, error) {
	if p.clientID == "" || p.secret == "" {
		return nil, fmt.Errorf("paypal credentials not configured")
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("paypal auth: %w", err)
	}

	payload := map[string]interface{}{
		"sender_batch_header": map[string]string{
			"sender_batch_id": uuid.New().String(),
			"email_subject":   "You have a payout",
		},
		"items": []map[string]interface{}{{
			"recipient_type": "EMAIL",
			"receiver":       destination,
			"amount": map[string]string{
				"value":    fmt.Sprintf("%.2f", amount),
				"currency": "USD",
			},
		}},
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/payments/payouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paypal payout http %d", resp.StatusCode)
	}

	var out struct {
		BatchHeader struct {
			PayoutBatchID string `json:"payout_batch_id"`
		} `json:"batch_header"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.BatchHeader.PayoutBatchID == "" {
		return nil, fmt.Errorf("paypal payout: empty batch id")
	}

	return &Receipt{TransactionID: out.BatchHeader.PayoutBatchID, Fee: paypalPayoutFee}, nil
}

func (p *PayPal) accessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.clientID, p.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token http %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}
