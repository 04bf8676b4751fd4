package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"affiliate-bot-backend/internal/common/logger"
)

// Product is a transient search hit; nothing here is persisted.
type Product struct {
	ASIN     string   `json:"asin"`
	Title    string   `json:"title"`
	Features []string `json:"features,omitempty"`
	Image    string   `json:"image,omitempty"`
	Price    string   `json:"price,omitempty"`
}

const (
	searchCacheSize = 128
	searchCacheTTL  = 5 * time.Minute
)

type cachedSearch struct {
	products  []Product
	fetchedAt time.Time
}

// Client implements product search via an Amazon data gateway.
type Client struct {
	baseURL     string
	apiKey      string
	marketplace string
	httpClient  *http.Client
	cache       *lru.Cache
}

// NewClient initializes the search client. baseURL defaults to the public
// gateway when empty.
func NewClient(baseURL, apiKey, marketplace string) *Client {
	if baseURL == "" {
		baseURL = "https://real-time-amazon-data.p.rapidapi.com"
	}
	if marketplace == "" {
		marketplace = "US"
	}
	cache, _ := lru.New(searchCacheSize)
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		marketplace: marketplace,
		httpClient:  &http.Client{Timeout: 8 * time.Second},
		cache:       cache,
	}
}

// Search returns up to maxCount products for the keyword, in provider order.
// Any provider failure is logged and yields an empty result; a failed fetch
// just means an empty cycle for the caller.
func (c *Client) Search(ctx context.Context, keyword string, maxCount int) []Product {
	if keyword == "" || maxCount <= 0 {
		return nil
	}

	if v, ok := c.cache.Get(keyword); ok {
		if entry, ok := v.(cachedSearch); ok && time.Since(entry.fetchedAt) < searchCacheTTL {
			return clamp(entry.products, maxCount)
		}
	}

	products, err := c.search(ctx, keyword)
	if err != nil {
		logger.Warn().Err(err).Str("keyword", keyword).Msg("Product search failed")
		return nil
	}

	c.cache.Add(keyword, cachedSearch{products: products, fetchedAt: time.Now()})
	return clamp(products, maxCount)
}

func (c *Client) search(ctx context.Context, keyword string) ([]Product, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("search api key not configured")
	}

	q := url.Values{}
	q.Set("query", keyword)
	q.Set("country", c.marketplace)
	reqURL := c.baseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search http %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			Products []struct {
				ASIN         string   `json:"asin"`
				ProductTitle string   `json:"product_title"`
				ProductPhoto string   `json:"product_photo"`
				ProductPrice string   `json:"product_price"`
				AboutProduct []string `json:"about_product"`
			} `json:"products"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(out.Data.Products))
	for _, p := range out.Data.Products {
		if p.ASIN == "" || p.ProductTitle == "" {
			continue
		}
		products = append(products, Product{
			ASIN:     p.ASIN,
			Title:    p.ProductTitle,
			Features: p.AboutProduct,
			Image:    p.ProductPhoto,
			Price:    p.ProductPrice,
		})
	}
	return products, nil
}

func clamp(products []Product, maxCount int) []Product {
	if len(products) <= maxCount {
		return products
	}
	return products[:maxCount]
}
