package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "secret", r.Header.Get("X-Key"))
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	c := NewClient(time.Second, nil)
	c.Header = http.Header{"X-Key": []string{"secret"}}

	body, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestClient_Get_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(time.Second, nil).Get(context.Background(), server.URL)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Equal(t, "429 Too Many Requests", httpErr.Error())
}

func TestClient_Get_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	_, err := NewClient(20*time.Millisecond, nil).Get(context.Background(), server.URL)
	require.Error(t, err)
}

func TestHTTPError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewHTTPError(http.StatusBadGateway, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Bad Gateway", err.Status)
}
