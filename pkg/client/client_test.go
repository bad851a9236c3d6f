package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetClientSingleton validates that GetClient returns same instance
func TestGetClientSingleton(t *testing.T) {
	httpClient = nil

	client1 := GetClient()
	client2 := GetClient()

	require.NotNil(t, client1)
	assert.Same(t, client1, client2)
}

func TestNewAppliesOptions(t *testing.T) {
	c := New(Options{BaseURL: "http://backend.test", Timeout: 7 * time.Second, RetryCount: 2, Token: "tok"})

	assert.Equal(t, "http://backend.test", c.BaseURL)
	assert.Equal(t, 2, c.RetryCount)
	assert.Equal(t, "tok", c.Token)
	assert.Equal(t, userAgent, c.Header.Get("User-Agent"))
}

func TestRequestsCarryHeaders(t *testing.T) {
	var seen http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Token: "secret"})
	_, err := c.R().Get("/ping")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", seen.Get("Authorization"))
	assert.NotEmpty(t, seen.Get("X-Request-ID"))
	assert.Equal(t, userAgent, seen.Get("User-Agent"))
}

func TestSetAndClearAuthToken(t *testing.T) {
	httpClient = nil

	SetAuthToken("test_token")
	assert.Equal(t, "test_token", GetClient().Token)

	ClearAuthToken()
	assert.Empty(t, GetClient().Token)
}
