package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fikri/scorehub/internal/cache"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/platform/logging"
)

func TestWarm_PrefetchesEveryTask(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{name: "secondary", cacheable: true, payload: fullPayload}
	fx := newResolverFixture(source)
	svc := NewWarmService(fx.resolver, logging.NewNop())

	result, err := svc.Warm(ctx, WarmInput{MaxWorkers: 3})
	if err != nil {
		t.Fatalf("warm: %v", err)
	}

	wantTasks := len(catalog.Leagues()) * len(feed.Kinds())
	if result.TaskCount != wantTasks || len(result.Tasks) != wantTasks {
		t.Fatalf("expected %d tasks, got %d (%d rows)", wantTasks, result.TaskCount, len(result.Tasks))
	}
	if result.FailedCount != 0 || result.SuccessCount != wantTasks {
		t.Fatalf("expected all tasks to succeed: %+v", result)
	}
	if result.WorkerCount != 3 {
		t.Fatalf("expected 3 workers, got %d", result.WorkerCount)
	}

	// Cacheable payloads land in the cache so later reads are hot.
	if _, hit := fx.cache.Get(ctx, cache.Key(feed.KindStandings, catalog.LeaguePremierLeague)); !hit {
		t.Fatal("expected warmed cache entry")
	}
}

func TestWarm_NarrowedScope(t *testing.T) {
	source := &stubSource{name: "secondary", cacheable: true, payload: fullPayload}
	fx := newResolverFixture(source)
	svc := NewWarmService(fx.resolver, logging.NewNop())

	result, err := svc.Warm(context.Background(), WarmInput{
		LeagueIDs: []string{catalog.LeagueBundesliga},
		Kinds:     []feed.Kind{feed.KindStandings, feed.KindScorers},
	})
	if err != nil {
		t.Fatalf("warm: %v", err)
	}
	if result.TaskCount != 2 {
		t.Fatalf("expected 2 tasks, got %d", result.TaskCount)
	}
	for _, task := range result.Tasks {
		if task.LeagueID != catalog.LeagueBundesliga {
			t.Fatalf("unexpected league in task: %+v", task)
		}
	}
}

func TestWarm_CountsFailures(t *testing.T) {
	// No terminal source: every task exhausts the chain.
	failing := &stubSource{name: "secondary", cacheable: true, err: ErrTransport}
	fx := newResolverFixture(failing)
	svc := NewWarmService(fx.resolver, logging.NewNop())

	result, err := svc.Warm(context.Background(), WarmInput{
		LeagueIDs: []string{catalog.LeagueLigue1},
	})
	if err != nil {
		t.Fatalf("warm: %v", err)
	}
	if result.FailedCount != len(feed.Kinds()) || result.SuccessCount != 0 {
		t.Fatalf("expected every task to fail: %+v", result)
	}
	for _, task := range result.Tasks {
		if task.Status != warmStatusFailed || task.Message == "" {
			t.Fatalf("failed task must carry a message: %+v", task)
		}
	}
}

func TestWarm_RejectsUnknownInput(t *testing.T) {
	fx := newResolverFixture()
	svc := NewWarmService(fx.resolver, logging.NewNop())

	if _, err := svc.Warm(context.Background(), WarmInput{LeagueIDs: []string{"nope"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown league, got %v", err)
	}
	if _, err := svc.Warm(context.Background(), WarmInput{Kinds: []feed.Kind{"tables"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown kind, got %v", err)
	}
}
