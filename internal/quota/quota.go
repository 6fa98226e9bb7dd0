// Package quota counts outbound primary-API calls per calendar day. The
// counter survives restarts and is advisory only: the upstream service
// enforces the real limit, this package just warns before it bites.
package quota

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fikri/scorehub/internal/platform/kvstore"
	"github.com/fikri/scorehub/internal/platform/logging"
)

const (
	keyCallsToday = "quota_calls_today"
	keyDateStamp  = "quota_date"

	// DailyCeiling is the primary API's free-tier allowance. Informational,
	// never enforced here.
	DailyCeiling = 100

	highWatermark = 80
	softWatermark = 50

	dayLayout = "2006-01-02"
)

type WarningLevel int

const (
	WarnNone WarningLevel = iota
	WarnInfo
	WarnHigh
)

// Warning is the advisory the pipeline emits after recording a call.
type Warning struct {
	Level   WarningLevel
	Count   int
	Message string
}

// Assess maps a daily call count onto the warning thresholds.
func Assess(count int) Warning {
	switch {
	case count >= highWatermark:
		return Warning{
			Level:   WarnHigh,
			Count:   count,
			Message: fmt.Sprintf("high API usage: %d of %d daily calls used", count, DailyCeiling),
		}
	case count >= softWatermark:
		return Warning{
			Level:   WarnInfo,
			Count:   count,
			Message: fmt.Sprintf("%d of %d daily calls used; responses are cached for 10 minutes to save calls", count, DailyCeiling),
		}
	default:
		return Warning{Level: WarnNone, Count: count}
	}
}

// Tracker persists {callsToday, dateStamp} across restarts. The mutex keeps
// the read-increment-write atomic under concurrent aggregate loads.
type Tracker struct {
	mu     sync.Mutex
	kv     kvstore.KV
	now    func() time.Time
	logger *logging.Logger
}

func NewTracker(kv kvstore.KV, logger *logging.Logger) *Tracker {
	if logger == nil {
		logger = logging.Default()
	}
	return &Tracker{
		kv:     kv,
		now:    time.Now,
		logger: logger,
	}
}

// RecordCall resets the counter when the calendar day changed, then
// increments and persists it. Returns the new count.
func (t *Tracker) RecordCall(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.now().Format(dayLayout)

	count, stamp, err := t.load(ctx)
	if err != nil {
		return 0, err
	}
	if stamp != today {
		count = 0
	}
	count++

	if err := t.kv.Put(ctx, keyCallsToday, []byte(strconv.Itoa(count))); err != nil {
		return 0, fmt.Errorf("persist quota count: %w", err)
	}
	if err := t.kv.Put(ctx, keyDateStamp, []byte(today)); err != nil {
		return 0, fmt.Errorf("persist quota date: %w", err)
	}

	return count, nil
}

// CurrentCount returns today's call count without mutating state; a stale
// date stamp reads as zero.
func (t *Tracker) CurrentCount(ctx context.Context) (int, error) {
	count, stamp, err := t.load(ctx)
	if err != nil {
		return 0, err
	}
	if stamp != t.now().Format(dayLayout) {
		return 0, nil
	}
	return count, nil
}

func (t *Tracker) load(ctx context.Context) (int, string, error) {
	rawCount, ok, err := t.kv.Get(ctx, keyCallsToday)
	if err != nil {
		return 0, "", fmt.Errorf("read quota count: %w", err)
	}

	count := 0
	if ok {
		count, err = strconv.Atoi(strings.TrimSpace(string(rawCount)))
		if err != nil || count < 0 {
			// Corrupt counter: start the day over rather than fail requests.
			t.logger.WarnContext(ctx, "corrupt quota counter, resetting", "raw", string(rawCount))
			count = 0
		}
	}

	rawStamp, ok, err := t.kv.Get(ctx, keyDateStamp)
	if err != nil {
		return 0, "", fmt.Errorf("read quota date: %w", err)
	}
	stamp := ""
	if ok {
		stamp = strings.TrimSpace(string(rawStamp))
	}

	return count, stamp, nil
}
