package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	mem "tripmate/pkg/memcache"
	"tripmate/pkg/utils"
)

func newNaverServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, naverLocalPath, r.URL.Path)
		assert.Equal(t, "id", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "secret", r.Header.Get("X-Naver-Client-Secret"))
		assert.Equal(t, "random", r.URL.Query().Get("sort"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

const naverBody = `{"lastBuildDate":"x","total":2,"start":1,"display":2,"items":[
 {"title":"<b>경주</b> 할매국밥","link":"http://a","category":"한식>국밥","address":"경북 경주시 황남동 1","roadAddress":"경북 경주시 포석로 1","mapx":"1292000","mapy":"358000"},
 {"title":"교리김밥","link":"http://b","category":"분식","address":"경북 경주시 교동 2","roadAddress":"","mapx":"1292100","mapy":"358100"}
]}`

func TestNaverLocalClient_SearchAndCache(t *testing.T) {
	srv, hits := newNaverServer(t, http.StatusOK, naverBody)
	cache := NewMemorySearchCache(mem.NewTTLStore[[]NaverLocalItem](0))
	c := NewNaverLocalClient(srv.URL+"/", "id", "secret", time.Second, cache, time.Hour, zap.NewNop())

	items, err := c.SearchLocal(context.Background(), " 경주 국밥 ", 15)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "<b>경주</b> 할매국밥", items[0].Title)
	assert.Equal(t, "경북 경주시 포석로 1", items[0].RoadAddress)

	again, err := c.SearchLocal(context.Background(), "경주 국밥", 15)
	require.NoError(t, err)
	assert.Equal(t, items, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "second call served from cache")

	_, err = c.SearchLocal(context.Background(), "경주 국밥", 20)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits), "display is part of the cache key")
}

func TestNaverLocalClient_EmptyQuery(t *testing.T) {
	srv, hits := newNaverServer(t, http.StatusOK, naverBody)
	c := NewNaverLocalClient(srv.URL, "id", "secret", time.Second, nil, time.Hour, zap.NewNop())

	items, err := c.SearchLocal(context.Background(), "   ", 15)
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestNaverLocalClient_BadStatus(t *testing.T) {
	srv, _ := newNaverServer(t, http.StatusTooManyRequests, `{"errorCode":"012"}`)
	c := NewNaverLocalClient(srv.URL, "id", "secret", time.Second, nil, time.Hour, zap.NewNop())

	_, err := c.SearchLocal(context.Background(), "경주", 15)
	assert.ErrorIs(t, err, utils.ErrSearchProviderUnavailable)
}

func TestNaverLocalClient_BadBody(t *testing.T) {
	srv, _ := newNaverServer(t, http.StatusOK, `<html>`)
	c := NewNaverLocalClient(srv.URL, "id", "secret", time.Second, nil, time.Hour, zap.NewNop())

	_, err := c.SearchLocal(context.Background(), "경주", 15)
	assert.ErrorIs(t, err, utils.ErrSearchProviderUnavailable)
}

func TestNaverLocalClient_NoItemsIsEmptyNotNil(t *testing.T) {
	srv, _ := newNaverServer(t, http.StatusOK, `{"total":0}`)
	c := NewNaverLocalClient(srv.URL, "id", "secret", time.Second, nil, time.Hour, zap.NewNop())

	items, err := c.SearchLocal(context.Background(), "없는동네", 15)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestNaverLocalClient_MissingCredentials(t *testing.T) {
	c := NewNaverLocalClient("http://127.0.0.1:0", "", "", time.Second, nil, time.Hour, zap.NewNop())
	_, err := c.SearchLocal(context.Background(), "경주", 15)
	assert.ErrorIs(t, err, utils.ErrSearchProviderUnavailable)
}

func TestNaverLocalClient_ErrorsAreNotCached(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(naverBody))
	}))
	defer srv.Close()

	cache := NewMemorySearchCache(mem.NewTTLStore[[]NaverLocalItem](0))
	c := NewNaverLocalClient(srv.URL, "id", "secret", time.Second, cache, time.Hour, zap.NewNop())

	_, err := c.SearchLocal(context.Background(), "경주", 15)
	require.Error(t, err)
	items, err := c.SearchLocal(context.Background(), "경주", 15)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestNaverLocalClient_CancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		_, _ = w.Write([]byte(naverBody))
	}))
	defer srv.Close()
	defer func() {
		select {
		case <-release:
		default:
			close(release)
		}
	}()

	c := NewNaverLocalClient(srv.URL, "id", "secret", 5*time.Second, nil, time.Hour, zap.NewNop())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.SearchLocal(firstCtx, "경주 국밥", 15)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&hits) == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		items []NaverLocalItem
		err   error
	}
	second := make(chan result, 1)
	go func() {
		items, err := c.SearchLocal(context.Background(), "경주 국밥", 15)
		second <- result{items, err}
	}()
	// give the second caller time to join the in-flight call
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Len(t, res.items, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not get the shared result")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "one upstream call for both callers")
}
