package marketplace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPayload = `{
	"data": {
		"products": [
			{"asin": "B001", "product_title": "Wireless Earbuds", "product_photo": "http://img/1.jpg", "product_price": "$29.99", "about_product": ["Bluetooth 5.3", "30h battery"]},
			{"asin": "B002", "product_title": "Phone Stand", "product_price": "$9.99"},
			{"asin": "", "product_title": "No ASIN"},
			{"asin": "B003", "product_title": "USB Hub"}
		]
	}
}`

func TestSearchClampsToMaxCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wireless earbuds", r.URL.Query().Get("query"))
		assert.Equal(t, "US", r.URL.Query().Get("country"))
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "US")
	products := client.Search(context.Background(), "wireless earbuds", 2)

	require.Len(t, products, 2)
	assert.Equal(t, "B001", products[0].ASIN)
	assert.Equal(t, "Wireless Earbuds", products[0].Title)
	assert.Equal(t, []string{"Bluetooth 5.3", "30h battery"}, products[0].Features)
	assert.Equal(t, "B002", products[1].ASIN)
}

func TestSearchSkipsEntriesWithoutASINOrTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "US")
	products := client.Search(context.Background(), "gadgets", 10)

	require.Len(t, products, 3)
	for _, p := range products {
		assert.NotEmpty(t, p.ASIN)
		assert.NotEmpty(t, p.Title)
	}
}

func TestSearchReturnsEmptyOnProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "US")
	assert.Empty(t, client.Search(context.Background(), "gadgets", 5))
}

func TestSearchReturnsEmptyWithoutAPIKey(t *testing.T) {
	client := NewClient("http://localhost:0", "", "US")
	assert.Empty(t, client.Search(context.Background(), "gadgets", 5))
}

func TestSearchEmptyKeywordOrZeroCount(t *testing.T) {
	client := NewClient("http://localhost:0", "test-key", "US")
	assert.Nil(t, client.Search(context.Background(), "", 5))
	assert.Nil(t, client.Search(context.Background(), "gadgets", 0))
}

func TestSearchServesRepeatQueriesFromCache(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "US")
	client.Search(context.Background(), "gadgets", 3)
	client.Search(context.Background(), "gadgets", 3)

	assert.Equal(t, 1, calls)
}
