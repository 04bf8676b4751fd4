package affiliate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CJProvider reads commission totals from the CJ Affiliate API.
type CJProvider struct {
	baseURL    string
	token      string
	companyID  string
	httpClient *http.Client
}

func NewCJProvider(baseURL, token, companyID string) *CJProvider {
	if baseURL == "" {
		baseURL = "https://commissions.api.cj.com"
	}
	return &CJProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		companyID:  companyID,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

func (p *CJProvider) Name() string { return "cj" }

func (p *CJProvider) Earnings(ctx context.Context) (float64, error) {
	if p.token == "" || p.companyID == "" {
		return 0, nil
	}

	reqURL := p.baseURL + "/commissions?companyId=" + p.companyID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("cj commissions http %d", resp.StatusCode)
	}

	var out struct {
		TotalCommission float64 `json:"totalCommission"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.TotalCommission, nil
}
