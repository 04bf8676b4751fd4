package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"affiliate-bot-backend/internal/platform/marketplace"
)

var testProduct = marketplace.Product{
	ASIN:     "B001",
	Title:    "Wireless Earbuds",
	Features: []string{"Bluetooth 5.3", "30h battery", "IPX7 waterproof"},
}

const testLink = "https://www.amazon.com/dp/B001?tag=demo-20&linkCode=ll1"

func TestTwitterSkipsWithoutCredentials(t *testing.T) {
	pub := NewTwitter("", "")
	outcome := pub.Publish(context.Background(), testProduct, testLink)

	assert.Equal(t, StatusSkipped, outcome.Status)
	assert.Equal(t, "twitter", outcome.Platform)
	assert.Empty(t, outcome.PostID)
}

func TestTwitterPostsCaption(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/tweets", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"id": "tw-42"}}`))
	}))
	defer server.Close()

	pub := NewTwitter(server.URL, "token-123")
	outcome := pub.Publish(context.Background(), testProduct, testLink)

	assert.Equal(t, StatusPosted, outcome.Status)
	assert.Equal(t, "tw-42", outcome.PostID)
	assert.Contains(t, gotBody["text"], "Wireless Earbuds")
	assert.Contains(t, gotBody["text"], testLink)
	assert.Contains(t, gotBody["text"], "#ad")
}

func TestTwitterFailsOnProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	pub := NewTwitter(server.URL, "token-123")
	outcome := pub.Publish(context.Background(), testProduct, testLink)

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "403")
}

func TestPinterestSkipsWithoutBoard(t *testing.T) {
	pub := NewPinterest("", "token", "")
	outcome := pub.Publish(context.Background(), testProduct, testLink)
	assert.Equal(t, StatusSkipped, outcome.Status)
}

func TestFacebookSkipsWithoutCredentials(t *testing.T) {
	pub := NewFacebook("", "", "")
	outcome := pub.Publish(context.Background(), testProduct, testLink)
	assert.Equal(t, StatusSkipped, outcome.Status)
}

func TestDisabledPublishersReportDisabled(t *testing.T) {
	for _, pub := range []Publisher{NewYouTube(), NewEtsy()} {
		outcome := pub.Publish(context.Background(), testProduct, testLink)
		assert.Equal(t, StatusDisabled, outcome.Status)
		assert.Equal(t, pub.Name(), outcome.Platform)
		assert.Empty(t, outcome.PostID)
	}
}

func TestCaptionLimitsFeatureBullets(t *testing.T) {
	caption := Caption(testProduct, testLink)

	assert.True(t, strings.HasPrefix(caption, "Wireless Earbuds"))
	assert.Contains(t, caption, "Bluetooth 5.3")
	assert.Contains(t, caption, "30h battery")
	assert.NotContains(t, caption, "IPX7 waterproof")
	assert.Contains(t, caption, "#ad")
}

func TestRegistryKeysByName(t *testing.T) {
	registry := NewRegistry(NewTwitter("", ""), NewYouTube())

	require.Len(t, registry, 2)
	assert.Contains(t, registry, "twitter")
	assert.Contains(t, registry, "youtube")
}
