package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/fikri/scorehub/internal/cache"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/platform/logging"
	"github.com/fikri/scorehub/internal/quota"
)

// Snapshot is one league's full dashboard: every data kind resolved in one
// shot. Quota carries the loudest warning any kind produced.
type Snapshot struct {
	League      catalog.League
	Resolutions map[feed.Kind]Resolution
	Quota       *quota.Warning
}

func (s Snapshot) Resolution(kind feed.Kind) (Resolution, bool) {
	r, ok := s.Resolutions[kind]
	return r, ok
}

// SnapshotService fans the five data kinds out concurrently and fails the
// whole load on the first kind error: callers render a complete dashboard or
// none of it.
type SnapshotService struct {
	resolver *ResolverService
	cache    *cache.Store
	logger   *logging.Logger
}

func NewSnapshotService(resolver *ResolverService, store *cache.Store, logger *logging.Logger) *SnapshotService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SnapshotService{resolver: resolver, cache: store, logger: logger}
}

func (s *SnapshotService) Load(ctx context.Context, leagueID string, useCache bool) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Load")
	defer span.End()

	league, ok := catalog.Get(leagueID)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, leagueID)
	}

	kinds := feed.Kinds()
	resolutions := make([]Resolution, len(kinds))

	workers := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, kind := range kinds {
		i, kind := i, kind
		workers.Go(func(ctx context.Context) error {
			resolution, err := s.resolver.Resolve(ctx, kind, leagueID, useCache)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", kind, err)
			}
			resolutions[i] = resolution
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		League:      league,
		Resolutions: make(map[feed.Kind]Resolution, len(kinds)),
	}
	for _, resolution := range resolutions {
		snapshot.Resolutions[resolution.Kind] = resolution
		if resolution.Quota != nil {
			if snapshot.Quota == nil || resolution.Quota.Count > snapshot.Quota.Count {
				snapshot.Quota = resolution.Quota
			}
		}
	}
	return snapshot, nil
}

// Refresh drops the whole cache namespace and reloads the league bypassing
// the cache, so every kind comes back from a live source.
func (s *SnapshotService) Refresh(ctx context.Context, leagueID string) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Refresh")
	defer span.End()

	if err := s.cache.Clear(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("clear cache: %w", err)
	}
	return s.Load(ctx, leagueID, false)
}
