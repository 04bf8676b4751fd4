package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"affiliate-bot-backend/internal/common/logger"
	"affiliate-bot-backend/internal/platform/marketplace"
)

// Twitter posts product tweets via the X API v2.
type Twitter struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
}

func NewTwitter(baseURL, bearerToken string) *Twitter {
	if baseURL == "" {
		baseURL = "https://api.twitter.com"
	}
	return &Twitter{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Twitter) Name() string { return "twitter" }

func (t *Twitter) Publish(ctx context.Context, product marketplace.Product, link string) Outcome {
	if t.bearerToken == "" {
		return Skipped(t.Name())
	}

	body, _ := json.Marshal(map[string]string{"text": Caption(product, link)})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return Failed(t.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.bearerToken)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("platform", t.Name()).Msg("Publish failed")
		return Failed(t.Name(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("twitter http %d", resp.StatusCode)
		logger.Warn().Err(err).Str("platform", t.Name()).Msg("Publish failed")
		return Failed(t.Name(), err)
	}

	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Failed(t.Name(), err)
	}
	return Posted(t.Name(), out.Data.ID)
}
