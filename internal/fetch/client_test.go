package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := NewClient(WithRateLimit(100, 10))
	data, err := c.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, "Mozilla/5.0", gotUA)
}

func TestDownloadCustomUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("soclens/1.0"), WithRateLimit(100, 10))
	_, err := c.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "soclens/1.0", gotUA)
}

func TestDownloadStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(WithRateLimit(100, 10))
	_, err := c.Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestDownloadContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient()
	_, err := c.Download(ctx, "http://127.0.0.1:0/never")
	require.Error(t, err)
}

func TestResolveLatestOEWS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<a href="/oes/special-requests/oesm23st.zip">May 2023</a>
			<a href="/oes/special-requests/oesm24st.zip">May 2024</a>
			<a href="/oes/special-requests/oesm24nat.zip">National</a>
		</body></html>`))
	}))
	defer srv.Close()

	c := NewClient(WithRateLimit(100, 10))
	got, err := resolveLatestOEWS(context.Background(), c, srv.URL+"/oes/tables.htm")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/oes/special-requests/oesm24st.zip", got)
}

func TestResolveLatestOEWSNoLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a href="/other.zip">other</a></body></html>`))
	}))
	defer srv.Close()

	c := NewClient(WithRateLimit(100, 10))
	_, err := resolveLatestOEWS(context.Background(), c, srv.URL)
	require.Error(t, err)
}
