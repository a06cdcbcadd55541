// Package client fetches remote assets such as client logos, memoizing
// results so repeated renders do not hit the origin.
package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultTimeout = 10 * time.Second
	failureTTL     = time.Minute
	MaxAssetSize   = 5 << 20
)

type Asset struct {
	ContentType string
	Body        []byte
}

type Client struct {
	client    *http.Client
	cache     *cache.Cache
	userAgent string
}

func New(userAgent string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:    &httpClient,
		cache:     cache.New(10*time.Minute, 15*time.Minute),
		userAgent: userAgent,
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

// Fetch downloads url. Successes are cached for ten minutes, failures for a
// minute.
func (c *Client) Fetch(ctx context.Context, url string) (Asset, error) {
	cacheKey := "asset:" + url
	x, found := c.cache.Get(cacheKey)
	if found {
		switch v := x.(type) {
		case Asset:
			return v, nil
		case error:
			return Asset{}, v
		}
	}

	asset, err := c.fetch(ctx, url)
	if err != nil {
		c.cache.Set(cacheKey, err, failureTTL)
		return Asset{}, err
	}

	c.cache.Set(cacheKey, asset, cache.DefaultExpiration)
	return asset, nil
}

func (c *Client) fetch(ctx context.Context, url string) (Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Asset{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxAssetSize+1))
	if err != nil {
		return Asset{}, fmt.Errorf("failed to read response body: %v", err)
	}
	if len(body) > MaxAssetSize {
		return Asset{}, fmt.Errorf("asset exceeds %d bytes", MaxAssetSize)
	}

	contentType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		contentType = http.DetectContentType(body)
	}

	return Asset{ContentType: contentType, Body: body}, nil
}
