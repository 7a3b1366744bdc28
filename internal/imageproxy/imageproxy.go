// Package imageproxy fetches remote product images on behalf of the browser
// and keeps a short-lived copy of the bytes in redis.
package imageproxy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"time"
	
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"resty.dev/v3"
)

const (
	userAgent          = "Mozilla/5.0"
	defaultContentType = "image/jpeg"
	cacheKeyPrefix     = "img:"
)

var ErrInvalidURL = errors.New("url must be an absolute http(s) url")

// UpstreamError is returned when the origin answers with a non-2xx status.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Upstream error: %d", e.StatusCode)
}

type Image struct {
	Data        []byte
	ContentType string
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Image, error)
}

type Proxy struct {
	client   *resty.Client
	redis    *redis.Client
	referer  string
	cacheTTL time.Duration
}

func NewProxy(client *resty.Client, redisClient *redis.Client, referer string, cacheTTL time.Duration) *Proxy {
	return &Proxy{
		client:   client,
		redis:    redisClient,
		referer:  referer,
		cacheTTL: cacheTTL,
	}
}

// ValidateURL accepts only absolute http and https urls.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	
	return nil
}

func (p *Proxy) Fetch(ctx context.Context, rawURL string) (Image, error) {
	if err := ValidateURL(rawURL); err != nil {
		return Image{}, err
	}
	
	key := cacheKey(rawURL)
	if img, ok := p.cached(ctx, key); ok {
		return img, nil
	}
	
	res, err := p.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", userAgent).
		SetHeader("Referer", p.referer).
		Get(rawURL)
	if err != nil {
		return Image{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	
	if !res.IsSuccess() {
		return Image{}, &UpstreamError{StatusCode: res.StatusCode()}
	}
	
	img := Image{
		Data:        res.Bytes(),
		ContentType: res.Header().Get("Content-Type"),
	}
	if img.ContentType == "" {
		img.ContentType = defaultContentType
	}
	
	p.store(ctx, key, img)
	
	return img, nil
}

func (p *Proxy) cached(ctx context.Context, key string) (Image, bool) {
	fields, err := p.redis.HGetAll(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("image cache read failed")
		return Image{}, false
	}
	
	data, ok := fields["data"]
	if !ok {
		return Image{}, false
	}
	
	return Image{Data: []byte(data), ContentType: fields["content_type"]}, true
}

func (p *Proxy) store(ctx context.Context, key string, img Image) {
	pipe := p.redis.TxPipeline()
	pipe.HSet(ctx, key, "data", img.Data, "content_type", img.ContentType)
	pipe.Expire(ctx, key, p.cacheTTL)
	
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("image cache write failed")
	}
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
