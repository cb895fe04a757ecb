package policy

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/carverauto/hmibroker/pkg/models"
)

const (
	DefaultCacheTTL             = 30 * time.Second
	defaultCacheCleanupInterval = 5 * time.Minute

	consentKeyPrefix = "consent:"
	appDataKeyPrefix = "app:"
)

type cachedAppData struct {
	data AppData
	ok   bool
}

// CachedGate memoizes consent and app data lookups of another Gate.
// Failed lookups are never cached.
type CachedGate struct {
	next  Gate
	cache *gocache.Cache
}

var _ Gate = (*CachedGate)(nil)

// NewCachedGate wraps next. A non-positive ttl uses DefaultCacheTTL.
func NewCachedGate(next Gate, ttl time.Duration) *CachedGate {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &CachedGate{
		next:  next,
		cache: gocache.New(ttl, defaultCacheCleanupInterval),
	}
}

func (c *CachedGate) IsEnabled(ctx context.Context) (bool, error) {
	return c.next.IsEnabled(ctx)
}

func (c *CachedGate) GetConsent(ctx context.Context, deviceID string) (models.ConsentDecision, error) {
	key := consentKeyPrefix + normalizeKey(deviceID)

	if v, found := c.cache.Get(key); found {
		if consent, ok := v.(models.ConsentDecision); ok {
			return consent, nil
		}
	}

	consent, err := c.next.GetConsent(ctx, deviceID)
	if err != nil {
		return models.ConsentUnknown, err
	}

	c.cache.SetDefault(key, consent)

	return consent, nil
}

func (c *CachedGate) GetInitialAppData(ctx context.Context, appID string) (AppData, bool, error) {
	key := appDataKeyPrefix + normalizeKey(appID)

	if v, found := c.cache.Get(key); found {
		if entry, ok := v.(cachedAppData); ok {
			return entry.data, entry.ok, nil
		}
	}

	data, ok, err := c.next.GetInitialAppData(ctx, appID)
	if err != nil {
		return AppData{}, false, err
	}

	c.cache.SetDefault(key, cachedAppData{data: data, ok: ok})

	return data, ok, nil
}

// InvalidateDevice drops the cached consent for deviceID.
func (c *CachedGate) InvalidateDevice(deviceID string) {
	c.cache.Delete(consentKeyPrefix + normalizeKey(deviceID))
}

// Flush drops every cached entry.
func (c *CachedGate) Flush() {
	c.cache.Flush()
}
