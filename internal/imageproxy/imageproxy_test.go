package imageproxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
	
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

func newTestProxy(t *testing.T) (*Proxy, *miniredis.Miniredis) {
	t.Helper()
	
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	client := resty.New()
	t.Cleanup(func() {
		redisClient.Close()
		client.Close()
	})
	
	return NewProxy(client, redisClient, "https://shop.example/", time.Hour), mr
}

func TestFetchForwardsHeadersAndCaches(t *testing.T) {
	var hits atomic.Int32
	var gotHeaders atomic.Value
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotHeaders.Store(r.Header.Clone())
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()
	
	proxy, mr := newTestProxy(t)
	ctx := context.Background()
	
	img, err := proxy.Fetch(ctx, upstream.URL+"/a.png")
	require.NoError(t, err)
	require.Equal(t, "image/png", img.ContentType)
	require.Equal(t, []byte("png-bytes"), img.Data)
	
	headers := gotHeaders.Load().(http.Header)
	require.Equal(t, "Mozilla/5.0", headers.Get("User-Agent"))
	require.Equal(t, "https://shop.example/", headers.Get("Referer"))
	
	key := cacheKey(upstream.URL + "/a.png")
	require.True(t, mr.Exists(key))
	require.Equal(t, time.Hour, mr.TTL(key))
	
	img, err = proxy.Fetch(ctx, upstream.URL+"/a.png")
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), img.Data)
	require.EqualValues(t, 1, hits.Load())
}

func TestFetchDefaultsContentType(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.Write(nil)
	}))
	defer upstream.Close()
	
	proxy, _ := newTestProxy(t)
	
	img, err := proxy.Fetch(context.Background(), upstream.URL)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", img.ContentType)
}

func TestFetchUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()
	
	proxy, _ := newTestProxy(t)
	
	_, err := proxy.Fetch(context.Background(), upstream.URL)
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusForbidden, upstreamErr.StatusCode)
	require.Equal(t, "Upstream error: 403", upstreamErr.Error())
}

func TestValidateURL(t *testing.T) {
	require.NoError(t, ValidateURL("https://photo.yupoo.com/a.jpg"))
	require.NoError(t, ValidateURL("http://example.com/x"))
	require.ErrorIs(t, ValidateURL(""), ErrInvalidURL)
	require.ErrorIs(t, ValidateURL("ftp://example.com/x"), ErrInvalidURL)
	require.ErrorIs(t, ValidateURL("/relative/path.jpg"), ErrInvalidURL)
}
