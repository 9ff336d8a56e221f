package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"tripmate/pkg/metrics"
	"tripmate/pkg/utils"
)

// NaverLocalItem is one item of the Naver Local search response. Title carries
// <b> highlight tags; mapx/mapy are numbers encoded as strings.
type NaverLocalItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Telephone   string `json:"telephone,omitempty"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

type LocalSearchClient interface {
	SearchLocal(ctx context.Context, query string, display int) ([]NaverLocalItem, error)
}

const naverLocalPath = "/v1/search/local.json"

type NaverLocalClient struct {
	HTTP         *http.Client
	BaseURL      string
	ClientID     string
	ClientSecret string
	Cache        SearchCache
	DefaultTTL   time.Duration

	log   *zap.Logger
	group singleflight.Group
}

func NewNaverLocalClient(baseURL, clientID, clientSecret string, timeout time.Duration, cache SearchCache, ttl time.Duration, log *zap.Logger) *NaverLocalClient {
	if baseURL == "" {
		baseURL = "https://openapi.naver.com"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if cache == nil {
		cache = NoopSearchCache{}
	}
	return &NaverLocalClient{
		HTTP:         &http.Client{Timeout: timeout},
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Cache:        cache,
		DefaultTTL:   ttl,
		log:          log,
	}
}

func cacheKey(query string, display int) string {
	return strconv.Itoa(display) + "|" + query
}

func splitCacheKey(key string) (string, int) {
	d, q, ok := strings.Cut(key, "|")
	if !ok {
		return key, 0
	}
	display, _ := strconv.Atoi(d)
	return q, display
}

// SearchLocal returns the provider items for query. Responses are cached and
// identical concurrent queries share one provider call. A caller whose ctx ends
// stops waiting without failing the others.
func (c *NaverLocalClient) SearchLocal(ctx context.Context, query string, display int) ([]NaverLocalItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	key := cacheKey(query, display)

	if items, ok := c.cacheGet(ctx, key); ok {
		return items, nil
	}

	// The shared fetch outlives any single caller; HTTP.Timeout bounds it.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		fetchCtx := context.WithoutCancel(ctx)
		items, err := c.fetch(fetchCtx, query, display)
		if err != nil {
			return nil, err
		}
		c.cacheSet(fetchCtx, key, items)
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]NaverLocalItem), nil
	}
}

func (c *NaverLocalClient) cacheGet(ctx context.Context, key string) ([]NaverLocalItem, bool) {
	items, ok, err := c.Cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.SearchCacheTotal.WithLabelValues(c.Cache.Name(), "error").Inc()
		c.log.Warn("Search cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	case ok:
		metrics.SearchCacheTotal.WithLabelValues(c.Cache.Name(), "hit").Inc()
		return items, true
	}
	metrics.SearchCacheTotal.WithLabelValues(c.Cache.Name(), "miss").Inc()
	return nil, false
}

func (c *NaverLocalClient) cacheSet(ctx context.Context, key string, items []NaverLocalItem) {
	if c.DefaultTTL <= 0 {
		return
	}
	if err := c.Cache.Set(ctx, key, items, c.DefaultTTL); err != nil {
		c.log.Warn("Search cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *NaverLocalClient) fetch(ctx context.Context, query string, display int) ([]NaverLocalItem, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return nil, fmt.Errorf("%w: naver credentials are not configured", utils.ErrSearchProviderUnavailable)
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("display", strconv.Itoa(display))
	q.Set("sort", "random")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+naverLocalPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSearchProviderUnavailable, err)
	}
	req.Header.Set("X-Naver-Client-Id", c.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.ClientSecret)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: naver local http error: %v", utils.ErrSearchProviderUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: naver local bad status: %s", utils.ErrSearchProviderUnavailable, resp.Status)
	}

	var payload struct {
		Items []NaverLocalItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: naver local decode: %v", utils.ErrSearchProviderUnavailable, err)
	}
	if payload.Items == nil {
		payload.Items = []NaverLocalItem{}
	}
	return payload.Items, nil
}
