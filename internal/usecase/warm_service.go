package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/platform/logging"
)

const (
	warmStatusSuccess = "success"
	warmStatusFailed  = "failed"

	defaultWarmWorkers = 4
)

type WarmInput struct {
	// LeagueIDs narrows the prefetch; empty means every catalog league.
	LeagueIDs []string
	// Kinds narrows the data kinds; empty means all five.
	Kinds      []feed.Kind
	MaxWorkers int
}

type WarmResult struct {
	TaskCount    int              `json:"task_count"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
	WorkerCount  int              `json:"worker_count"`
	Tasks        []WarmTaskResult `json:"tasks"`
}

type WarmTaskResult struct {
	LeagueID   string `json:"league_id"`
	Kind       string `json:"kind"`
	Origin     string `json:"origin,omitempty"`
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type warmTask struct {
	leagueID string
	kind     feed.Kind
}

// WarmService prefetches league data across a bounded worker pool so later
// reads land on a hot cache. Cache hits count as success; the point is a
// warm cache, not fresh fetches.
type WarmService struct {
	resolver *ResolverService
	logger   *logging.Logger
}

func NewWarmService(resolver *ResolverService, logger *logging.Logger) *WarmService {
	if logger == nil {
		logger = logging.Default()
	}
	return &WarmService{resolver: resolver, logger: logger}
}

func (s *WarmService) Warm(ctx context.Context, input WarmInput) (WarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmService.Warm")
	defer span.End()

	leagueIDs, err := normalizeWarmLeagues(input.LeagueIDs)
	if err != nil {
		return WarmResult{}, err
	}
	kinds, err := normalizeWarmKinds(input.Kinds)
	if err != nil {
		return WarmResult{}, err
	}

	tasks := make([]warmTask, 0, len(leagueIDs)*len(kinds))
	for _, leagueID := range leagueIDs {
		for _, kind := range kinds {
			tasks = append(tasks, warmTask{leagueID: leagueID, kind: kind})
		}
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultWarmWorkers
	}
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}

	result := WarmResult{
		TaskCount:   len(tasks),
		WorkerCount: workerCount,
		Tasks:       make([]WarmTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	results := make(chan WarmTaskResult, len(tasks))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := WarmTaskResult{
				LeagueID: task.leagueID,
				Kind:     string(task.kind),
			}

			resolution, err := s.resolver.Resolve(ctx, task.kind, task.leagueID, true)
			if err != nil {
				row.Status = warmStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = warmStatusSuccess
				row.Origin = resolution.Origin
				row.Rows = resolution.Payload.Size()
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return WarmResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].LeagueID != result.Tasks[j].LeagueID {
			return result.Tasks[i].LeagueID < result.Tasks[j].LeagueID
		}
		return result.Tasks[i].Kind < result.Tasks[j].Kind
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func normalizeWarmLeagues(ids []string) ([]string, error) {
	if len(ids) == 0 {
		leagues := catalog.Leagues()
		out := make([]string, 0, len(leagues))
		for _, league := range leagues {
			out = append(out, league.ID)
		}
		return out, nil
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := catalog.Get(id); !ok {
			return nil, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, id)
		}
		out = append(out, id)
	}
	return out, nil
}

func normalizeWarmKinds(kinds []feed.Kind) ([]feed.Kind, error) {
	if len(kinds) == 0 {
		return feed.Kinds(), nil
	}
	for _, kind := range kinds {
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: unknown data kind %q", ErrInvalidInput, kind)
		}
	}
	return kinds, nil
}
