package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padmin-io/newsboard/pkg/httpclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(httpclient.NewRestyClient(2*time.Second), srv.URL, "test-key", nil)
}

func TestLatestDecodesResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "pizza", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"results": [
				{"title": "A", "link": "https://example.com/a", "creator": ["Jane"], "description": "d", "content": "c"},
				{"title": "B", "creator": null}
			]
		}`))
	})

	raws, err := client.Latest(context.Background(), "pizza")

	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, "A", raws[0].Title)
	assert.Equal(t, []string{"Jane"}, raws[0].Creator)
	assert.Equal(t, "B", raws[1].Title)
	assert.Empty(t, raws[1].Creator)
}

func TestLatestNonSuccessStatusCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.Latest(context.Background(), "pizza")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusTooManyRequests, reqErr.StatusCode)
}

func TestLatestMalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	_, err := client.Latest(context.Background(), "pizza")

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestLatestFeedErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "results": []}`))
	})

	_, err := client.Latest(context.Background(), "pizza")

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestLatestUnreachableHost(t *testing.T) {
	client := NewClient(httpclient.NewRestyClient(500*time.Millisecond), "http://127.0.0.1:1", "k", nil)

	_, err := client.Latest(context.Background(), "pizza")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Error(t, reqErr.Err)
}
