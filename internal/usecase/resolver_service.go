package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fikri/scorehub/internal/cache"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/platform/logging"
	"github.com/fikri/scorehub/internal/quota"
)

// Source is one stage of the fallback chain. Fetch errors matching the
// sentinel taxonomy demote to a fallthrough; anything the source cannot even
// attempt wraps ErrSourceSkipped.
type Source interface {
	Name() string
	Cacheable() bool
	Fetch(ctx context.Context, league catalog.League, kind feed.Kind) (feed.Payload, error)
}

const originCache = "cache"

// Resolution is one resolved data kind plus where it came from. Quota is set
// only when this resolution spent primary API calls and the daily count sits
// in warning territory.
type Resolution struct {
	Kind     feed.Kind
	LeagueID string
	Origin   string
	Payload  feed.Payload
	Quota    *quota.Warning
}

// ResolverService walks cache then the source chain in fixed priority order.
// Sources never merge: the first one to produce rows wins the whole response.
type ResolverService struct {
	cache   *cache.Store
	tracker *quota.Tracker
	sources []Source
	logger  *logging.Logger
}

func NewResolverService(store *cache.Store, tracker *quota.Tracker, sources []Source, logger *logging.Logger) *ResolverService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResolverService{
		cache:   store,
		tracker: tracker,
		sources: sources,
		logger:  logger,
	}
}

func (s *ResolverService) Resolve(ctx context.Context, kind feed.Kind, leagueID string, useCache bool) (Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.Resolve")
	defer span.End()

	if !kind.Valid() {
		return Resolution{}, fmt.Errorf("%w: unknown data kind %q", ErrInvalidInput, kind)
	}
	league, ok := catalog.Get(leagueID)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, leagueID)
	}

	key := cache.Key(kind, leagueID)
	if useCache {
		if payload, hit := s.cache.Get(ctx, key); hit {
			return Resolution{Kind: kind, LeagueID: leagueID, Origin: originCache, Payload: payload}, nil
		}
	}

	before, err := s.tracker.CurrentCount(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "quota read failed", "error", err)
	}

	for _, source := range s.sources {
		payload, err := source.Fetch(ctx, league, kind)
		if err != nil {
			if errors.Is(err, ErrSourceSkipped) {
				s.logger.DebugContext(ctx, "source skipped",
					"source", source.Name(), "kind", string(kind), "leagueID", leagueID, "reason", err)
				continue
			}
			s.logger.WarnContext(ctx, "source failed, falling through",
				"source", source.Name(), "kind", string(kind), "leagueID", leagueID, "error", err)
			continue
		}
		if payload.IsEmpty() {
			s.logger.WarnContext(ctx, "source returned no rows, falling through",
				"source", source.Name(), "kind", string(kind), "leagueID", leagueID)
			continue
		}

		if source.Cacheable() {
			s.cache.Put(ctx, key, payload)
		}

		resolution := Resolution{Kind: kind, LeagueID: leagueID, Origin: source.Name(), Payload: payload}
		resolution.Quota = s.assessSpend(ctx, before)
		return resolution, nil
	}

	// The terminal source never fails, so landing here means the chain was
	// miswired.
	return Resolution{}, fmt.Errorf("%w: no source produced %s for league %s", ErrExhausted, kind, leagueID)
}

// assessSpend attaches a warning only when this resolution moved the daily
// counter, so cache hits and pure-fallback responses stay quiet.
func (s *ResolverService) assessSpend(ctx context.Context, before int) *quota.Warning {
	after, err := s.tracker.CurrentCount(ctx)
	if err != nil || after == before {
		return nil
	}

	warning := quota.Assess(after)
	switch warning.Level {
	case quota.WarnHigh:
		s.logger.Warn(warning.Message, "callsToday", warning.Count)
	case quota.WarnInfo:
		s.logger.Info(warning.Message, "callsToday", warning.Count)
	default:
		return nil
	}
	return &warning
}
