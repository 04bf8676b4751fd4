package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"affiliate-bot-backend/internal/common/logger"
	"affiliate-bot-backend/internal/platform/marketplace"
)

// Facebook posts to a page feed via the Graph API.
type Facebook struct {
	baseURL    string
	pageID     string
	pageToken  string
	httpClient *http.Client
}

func NewFacebook(baseURL, pageID, pageToken string) *Facebook {
	if baseURL == "" {
		baseURL = "https://graph.facebook.com/v19.0"
	}
	return &Facebook{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageID:     pageID,
		pageToken:  pageToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *Facebook) Name() string { return "facebook" }

func (f *Facebook) Publish(ctx context.Context, product marketplace.Product, link string) Outcome {
	if f.pageID == "" || f.pageToken == "" {
		return Skipped(f.Name())
	}

	form := url.Values{}
	form.Set("message", Caption(product, link))
	form.Set("link", link)
	form.Set("access_token", f.pageToken)

	endpoint := fmt.Sprintf("%s/%s/feed", f.baseURL, f.pageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Failed(f.Name(), err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("platform", f.Name()).Msg("Publish failed")
		return Failed(f.Name(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("facebook http %d", resp.StatusCode)
		logger.Warn().Err(err).Str("platform", f.Name()).Msg("Publish failed")
		return Failed(f.Name(), err)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Failed(f.Name(), err)
	}
	return Posted(f.Name(), out.ID)
}
