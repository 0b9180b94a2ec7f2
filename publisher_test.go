package publisher

import (
	"testing"
	"time"
)

func TestConfigureCacheDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.DefaultTTL = 250 * time.Millisecond

	deps := &moduleDeps{}
	configureCacheDefaults(cfg, deps)
	if deps.cacheService == nil {
		t.Fatal("expected a default cache service when caching is enabled")
	}
	if deps.keySerializer == nil {
		t.Fatal("expected a default key serializer when caching is enabled")
	}

	supplied := deps.cacheService
	reused := &moduleDeps{cacheService: supplied}
	configureCacheDefaults(cfg, reused)
	if reused.cacheService != supplied {
		t.Fatal("host-supplied cache service must not be replaced")
	}

	cfg.Cache.Enabled = false
	disabled := &moduleDeps{}
	configureCacheDefaults(cfg, disabled)
	if disabled.cacheService != nil || disabled.keySerializer != nil {
		t.Fatal("cache wiring must stay empty when caching is disabled")
	}
}
