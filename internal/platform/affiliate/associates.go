package affiliate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AssociatesProvider reads the Amazon Associates earnings report feed.
type AssociatesProvider struct {
	baseURL    string
	apiKey     string
	tag        string
	httpClient *http.Client
}

func NewAssociatesProvider(baseURL, apiKey, tag string) *AssociatesProvider {
	if baseURL == "" {
		baseURL = "https://assoc-datafeed.amazon.com"
	}
	return &AssociatesProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		tag:        tag,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

func (p *AssociatesProvider) Name() string { return "amazon_associates" }

// Earnings returns the cumulative commission total for the associate tag.
// An unconfigured provider reports zero without calling out.
func (p *AssociatesProvider) Earnings(ctx context.Context) (float64, error) {
	if p.apiKey == "" || p.tag == "" {
		return 0, nil
	}

	q := url.Values{}
	q.Set("tag", p.tag)
	reqURL := p.baseURL + "/v1/reports/earnings?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("associates report http %d", resp.StatusCode)
	}

	var out struct {
		Earnings float64 `json:"earnings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.Earnings, nil
}
