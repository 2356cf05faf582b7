package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	currencyKeyPrefix = "reporting:currencies:"
	configKeyPrefix   = "reporting:config:"
)

// CachedCurrencyRepository is a read-through cache in front of the currency
// repository. Currency catalogs and reporting configs change rarely but are
// loaded on every report request, so the TTL can be generous. Redis failures
// degrade to the inner repository.
type CachedCurrencyRepository struct {
	inner  portsrepo.CurrencyRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCurrencyRepository wraps the given repository with a redis
// read-through cache.
func NewCachedCurrencyRepository(inner portsrepo.CurrencyRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) portsrepo.CurrencyRepository {
	return &CachedCurrencyRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

var _ portsrepo.CurrencyRepository = (*CachedCurrencyRepository)(nil)

func (r *CachedCurrencyRepository) ListCurrencies(ctx context.Context, businessID string) ([]domain.CurrencyEntry, error) {
	key := currencyKeyPrefix + businessID

	payload, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var entries []domain.CurrencyEntry
		if err := json.Unmarshal([]byte(payload), &entries); err == nil {
			return entries, nil
		}
		r.logger.WarnContext(ctx, "Discarding corrupt cached currency payload", slog.String("key", key))
	} else if err != redis.Nil {
		r.logger.WarnContext(ctx, "Redis unavailable for currency lookup, falling back to database", slog.String("error", err.Error()))
	}

	entries, err := r.inner.ListCurrencies(ctx, businessID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, entries)
	return entries, nil
}

func (r *CachedCurrencyRepository) GetReportingConfig(ctx context.Context, businessID string) (*domain.ReportingConfig, error) {
	key := configKeyPrefix + businessID

	payload, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var cfg domain.ReportingConfig
		if err := json.Unmarshal([]byte(payload), &cfg); err == nil {
			return &cfg, nil
		}
		r.logger.WarnContext(ctx, "Discarding corrupt cached config payload", slog.String("key", key))
	} else if err != redis.Nil {
		r.logger.WarnContext(ctx, "Redis unavailable for config lookup, falling back to database", slog.String("error", err.Error()))
	}

	cfg, err := r.inner.GetReportingConfig(ctx, businessID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, cfg)
	return cfg, nil
}

// store marshals and caches the value. Failures are logged and swallowed, the
// caller already has the data.
func (r *CachedCurrencyRepository) store(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to marshal cache payload", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "Failed to write cache entry", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached catalog and config for a business. Exposed for
// admin tooling that edits exchange rates out of band.
func (r *CachedCurrencyRepository) Invalidate(ctx context.Context, businessID string) error {
	keys := []string{currencyKeyPrefix + businessID, configKeyPrefix + businessID}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("error invalidating currency cache: %w", err)
	}
	return nil
}
