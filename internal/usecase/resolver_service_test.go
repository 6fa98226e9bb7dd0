package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fikri/scorehub/internal/cache"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/platform/kvstore"
	"github.com/fikri/scorehub/internal/platform/logging"
	"github.com/fikri/scorehub/internal/quota"
)

// stubSource returns a fixed payload, optionally recording a quota call per
// fetch the way the paid-API source does.
type stubSource struct {
	name      string
	cacheable bool
	payload   func(kind feed.Kind) feed.Payload
	err       error
	tracker   *quota.Tracker
	calls     int
}

func (s *stubSource) Name() string    { return s.name }
func (s *stubSource) Cacheable() bool { return s.cacheable }

func (s *stubSource) Fetch(ctx context.Context, _ catalog.League, kind feed.Kind) (feed.Payload, error) {
	s.calls++
	if s.tracker != nil {
		if _, err := s.tracker.RecordCall(ctx); err != nil {
			return feed.Payload{}, err
		}
	}
	if s.err != nil {
		return feed.Payload{}, s.err
	}
	return s.payload(kind), nil
}

func standingsPayload(teams ...string) func(feed.Kind) feed.Payload {
	return func(kind feed.Kind) feed.Payload {
		payload := feed.Payload{Kind: kind}
		for i, team := range teams {
			payload.Standings = append(payload.Standings, feed.StandingsRow{Position: i + 1, Team: team, Points: 30 - i})
		}
		return payload
	}
}

type resolverFixture struct {
	kv       *kvstore.Memory
	cache    *cache.Store
	tracker  *quota.Tracker
	resolver *ResolverService
}

func newResolverFixture(sources ...Source) *resolverFixture {
	kv := kvstore.NewMemory()
	store := cache.NewStore(kv, cache.DefaultTTL, logging.NewNop())
	tracker := quota.NewTracker(kv, logging.NewNop())
	return &resolverFixture{
		kv:       kv,
		cache:    store,
		tracker:  tracker,
		resolver: NewResolverService(store, tracker, sources, logging.NewNop()),
	}
}

func TestResolve_CacheHitShortCircuits(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{name: "primary", cacheable: true, payload: standingsPayload("Arsenal")}
	fx := newResolverFixture(source)

	fx.cache.Put(ctx, cache.Key(feed.KindStandings, catalog.LeaguePremierLeague), feed.Payload{
		Kind:      feed.KindStandings,
		Standings: []feed.StandingsRow{{Position: 1, Team: "Cached FC", Points: 30}},
	})

	resolution, err := fx.resolver.Resolve(ctx, feed.KindStandings, catalog.LeaguePremierLeague, true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolution.Origin != "cache" {
		t.Fatalf("expected cache origin, got %q", resolution.Origin)
	}
	if resolution.Payload.Standings[0].Team != "Cached FC" {
		t.Fatalf("unexpected payload: %+v", resolution.Payload)
	}
	if source.calls != 0 {
		t.Fatalf("cache hit must not touch sources, calls=%d", source.calls)
	}
	if count, _ := fx.tracker.CurrentCount(ctx); count != 0 {
		t.Fatalf("cache hit must not spend quota, count=%d", count)
	}
	if resolution.Quota != nil {
		t.Fatalf("cache hit must carry no quota warning: %+v", resolution.Quota)
	}
}

func TestResolve_BypassCacheFetchesFresh(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{name: "primary", cacheable: true, payload: standingsPayload("Fresh FC")}
	fx := newResolverFixture(source)

	fx.cache.Put(ctx, cache.Key(feed.KindStandings, catalog.LeaguePremierLeague), feed.Payload{
		Kind:      feed.KindStandings,
		Standings: []feed.StandingsRow{{Position: 1, Team: "Stale FC", Points: 30}},
	})

	resolution, err := fx.resolver.Resolve(ctx, feed.KindStandings, catalog.LeaguePremierLeague, false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolution.Origin != "primary" || resolution.Payload.Standings[0].Team != "Fresh FC" {
		t.Fatalf("expected fresh fetch, got %+v", resolution)
	}

	// The fresh payload replaces the stale cache entry.
	cached, hit := fx.cache.Get(ctx, cache.Key(feed.KindStandings, catalog.LeaguePremierLeague))
	if !hit || cached.Standings[0].Team != "Fresh FC" {
		t.Fatalf("expected refreshed cache entry, got %+v hit=%v", cached, hit)
	}
}

func TestResolve_FallsThroughOnFailureAndEmpty(t *testing.T) {
	ctx := context.Background()
	skipped := &stubSource{name: "primary", cacheable: true, err: fmt.Errorf("no credential: %w", ErrSourceSkipped)}
	failing := &stubSource{name: "secondary", cacheable: true, err: fmt.Errorf("status 503: %w", ErrTransport)}
	terminal := &stubSource{name: "curated", cacheable: false, payload: standingsPayload("Fallback FC")}
	fx := newResolverFixture(skipped, failing, terminal)

	resolution, err := fx.resolver.Resolve(ctx, feed.KindStandings, catalog.LeaguePremierLeague, true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolution.Origin != "curated" {
		t.Fatalf("expected terminal origin, got %q", resolution.Origin)
	}
	if skipped.calls != 1 || failing.calls != 1 {
		t.Fatalf("every prior source must be consulted once: %d, %d", skipped.calls, failing.calls)
	}
}

func TestResolve_TerminalSourceNeverCached(t *testing.T) {
	ctx := context.Background()
	terminal := &stubSource{name: "curated", cacheable: false, payload: standingsPayload("Mock FC")}
	fx := newResolverFixture(terminal)

	if _, err := fx.resolver.Resolve(ctx, feed.KindStandings, catalog.LeaguePremierLeague, true); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	keys, err := fx.kv.Keys(ctx, cache.Prefix)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("terminal payloads must bypass the cache, found %v", keys)
	}

	// Call again: the terminal source is consulted every time.
	if _, err := fx.resolver.Resolve(ctx, feed.KindStandings, catalog.LeaguePremierLeague, true); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if terminal.calls != 2 {
		t.Fatalf("expected a fresh terminal draw per call, calls=%d", terminal.calls)
	}
}

func TestResolve_CacheableSuccessPopulatesCache(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{name: "secondary", cacheable: true, payload: standingsPayload("Live FC")}
	fx := newResolverFixture(source)

	if _, err := fx.resolver.Resolve(ctx, feed.KindStandings, catalog.LeagueLaLiga, true); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	resolution, err := fx.resolver.Resolve(ctx, feed.KindStandings, catalog.LeagueLaLiga, true)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if resolution.Origin != "cache" {
		t.Fatalf("expected second read from cache, got %q", resolution.Origin)
	}
	if source.calls != 1 {
		t.Fatalf("source must be hit once, calls=%d", source.calls)
	}
}

func TestResolve_QuotaWarningThresholds(t *testing.T) {
	tests := []struct {
		name     string
		preCalls int
		level    quota.WarningLevel
	}{
		{name: "below soft watermark stays quiet", preCalls: 30, level: quota.WarnNone},
		{name: "49 to 50 crosses into info", preCalls: 49, level: quota.WarnInfo},
		{name: "79 to 80 crosses into high", preCalls: 79, level: quota.WarnHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			fx := newResolverFixture()
			source := &stubSource{name: "primary", cacheable: true, payload: standingsPayload("Spender FC"), tracker: fx.tracker}
			fx.resolver.sources = []Source{source}

			for i := 0; i < tc.preCalls; i++ {
				if _, err := fx.tracker.RecordCall(ctx); err != nil {
					t.Fatalf("seed quota: %v", err)
				}
			}

			resolution, err := fx.resolver.Resolve(ctx, feed.KindStandings, catalog.LeaguePremierLeague, false)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}

			if tc.level == quota.WarnNone {
				if resolution.Quota != nil {
					t.Fatalf("expected no warning, got %+v", resolution.Quota)
				}
				return
			}
			if resolution.Quota == nil {
				t.Fatal("expected a quota warning")
			}
			if resolution.Quota.Level != tc.level || resolution.Quota.Count != tc.preCalls+1 {
				t.Fatalf("unexpected warning: %+v", resolution.Quota)
			}
		})
	}
}

func TestResolve_NoWarningWithoutSpend(t *testing.T) {
	ctx := context.Background()
	fx := newResolverFixture()
	fallback := &stubSource{name: "curated", cacheable: false, payload: standingsPayload("Quiet FC")}
	fx.resolver.sources = []Source{fallback}

	// Deep in warning territory, but this resolution spends nothing.
	for i := 0; i < 90; i++ {
		if _, err := fx.tracker.RecordCall(ctx); err != nil {
			t.Fatalf("seed quota: %v", err)
		}
	}

	resolution, err := fx.resolver.Resolve(ctx, feed.KindStandings, catalog.LeaguePremierLeague, false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolution.Quota != nil {
		t.Fatalf("no spend must mean no warning: %+v", resolution.Quota)
	}
}

func TestResolve_InvalidInput(t *testing.T) {
	fx := newResolverFixture(&stubSource{name: "curated", cacheable: false, payload: standingsPayload("FC")})

	if _, err := fx.resolver.Resolve(context.Background(), feed.Kind("tables"), catalog.LeaguePremierLeague, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad kind, got %v", err)
	}
	if _, err := fx.resolver.Resolve(context.Background(), feed.KindStandings, "999", true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown league, got %v", err)
	}
}

func TestResolve_ExhaustedChain(t *testing.T) {
	failing := &stubSource{name: "secondary", cacheable: true, err: fmt.Errorf("boom: %w", ErrTransport)}
	fx := newResolverFixture(failing)

	_, err := fx.resolver.Resolve(context.Background(), feed.KindStandings, catalog.LeaguePremierLeague, true)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected exhausted sentinel, got %v", err)
	}
}
