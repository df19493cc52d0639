package metaclient

import (
	"context"
	"net/http"
	"time"

	metadomain "github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
	"golang.org/x/time/rate"
)

type Client interface {
	ListCampaigns(ctx context.Context, token secret.Token, accountID string) ([]metadomain.Campaign, error)
	ListAdSets(ctx context.Context, token secret.Token, campaignID string) ([]metadomain.AdSet, error)
	ListAds(ctx context.Context, token secret.Token, adSetID string) ([]metadomain.Ad, error)
	GetInsights(ctx context.Context, token secret.Token, adID string, dateRange domain.DateRange) (*metadomain.Insight, error)
	GetDailyInsights(ctx context.Context, token secret.Token, adID string, dateRange domain.DateRange) ([]metadomain.Insight, error)
}

// Sleeper aguarda a duração informada ou o cancelamento do contexto
type Sleeper func(ctx context.Context, d time.Duration) error

// RetryPolicy define tentativas e backoff exponencial (BaseDelay, 2x, 4x...)
type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	RateLimitDelay time.Duration
}

type MetaClient struct {
	baseURL    string
	pageLimit  int
	timeout    time.Duration
	retry      RetryPolicy
	httpClient *http.Client
	limiter    *rate.Limiter
	sleep      Sleeper
}

type Option func(*MetaClient)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *MetaClient) {
		c.httpClient = httpClient
	}
}

func WithSleeper(sleeper Sleeper) Option {
	return func(c *MetaClient) {
		c.sleep = sleeper
	}
}

func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *MetaClient) {
		c.limiter = limiter
	}
}

// NewClient cria o cliente da Graph API. Deve ser criado uma vez e compartilhado, pois o limitador é global ao processo.
func NewClient(cfg *config.Config, opts ...Option) *MetaClient {
	limit := rate.Inf
	if cfg.Meta.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Meta.RequestsPerSecond)
	}

	client := &MetaClient{
		baseURL:   cfg.Meta.URL,
		pageLimit: cfg.Meta.PageLimit,
		timeout:   cfg.Meta.RequestTimeout,
		retry: RetryPolicy{
			MaxAttempts:    cfg.Retry.MaxAttempts,
			BaseDelay:      cfg.Retry.BaseDelay,
			RateLimitDelay: cfg.Retry.RateLimitDelay,
		},
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(limit, 1),
		sleep:   sleepContext,
	}

	if client.retry.MaxAttempts < 1 {
		client.retry.MaxAttempts = 1
	}

	if client.retry.RateLimitDelay < client.retry.BaseDelay {
		client.retry.RateLimitDelay = client.retry.BaseDelay
	}

	if client.timeout <= 0 {
		client.timeout = 30 * time.Second
	}

	if client.pageLimit < 1 {
		client.pageLimit = 100
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
