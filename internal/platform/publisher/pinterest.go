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

// Pinterest creates pins on a configured board via the Pinterest v5 API.
type Pinterest struct {
	baseURL     string
	accessToken string
	boardID     string
	httpClient  *http.Client
}

func NewPinterest(baseURL, accessToken, boardID string) *Pinterest {
	if baseURL == "" {
		baseURL = "https://api.pinterest.com"
	}
	return &Pinterest{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		boardID:     boardID,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Pinterest) Name() string { return "pinterest" }

func (p *Pinterest) Publish(ctx context.Context, product marketplace.Product, link string) Outcome {
	if p.accessToken == "" || p.boardID == "" {
		return Skipped(p.Name())
	}

	payload := map[string]interface{}{
		"board_id":    p.boardID,
		"title":       product.Title,
		"link":        link,
		"description": Caption(product, link),
	}
	if product.Image != "" {
		payload["media_source"] = map[string]string{
			"source_type": "image_url",
			"url":         product.Image,
		}
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v5/pins", bytes.NewReader(body))
	if err != nil {
		return Failed(p.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("platform", p.Name()).Msg("Publish failed")
		return Failed(p.Name(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("pinterest http %d", resp.StatusCode)
		logger.Warn().Err(err).Str("platform", p.Name()).Msg("Publish failed")
		return Failed(p.Name(), err)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Failed(p.Name(), err)
	}
	return Posted(p.Name(), out.ID)
}
