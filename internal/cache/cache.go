// Package cache wraps the durable KV store with the 10-minute TTL semantics
// used by the resolution pipeline.
package cache

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/platform/kvstore"
	"github.com/fikri/scorehub/internal/platform/logging"
)

// Prefix namespaces every cache entry so Clear never touches the quota
// counter or the saved credential.
const Prefix = "cache_"

const DefaultTTL = 10 * time.Minute

// Key builds the storage key for one (kind, league) pair. The rugby
// competition keeps a single combined match entry instead of separate
// upcoming/results ones, a layout older installs already have on disk.
func Key(kind feed.Kind, leagueID string) string {
	name := string(kind)
	if leagueID == "six-nations" && (kind == feed.KindUpcoming || kind == feed.KindResults) {
		name = "matches"
	}
	return fmt.Sprintf("%s%s_%s", Prefix, name, leagueID)
}

type envelope struct {
	Data      feed.Payload `json:"data"`
	Timestamp int64        `json:"timestamp"`
}

// Store reads and writes TTL-stamped payload envelopes. A corrupt or expired
// entry behaves as a miss; corruption is logged, never surfaced.
type Store struct {
	kv     kvstore.KV
	ttl    time.Duration
	now    func() time.Time
	logger *logging.Logger
}

func NewStore(kv kvstore.KV, ttl time.Duration, logger *logging.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		kv:     kv,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Get(ctx context.Context, key string) (feed.Payload, bool) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed, treating as miss", "key", key, "error", err)
		return feed.Payload{}, false
	}
	if !ok {
		return feed.Payload{}, false
	}

	var entry envelope
	if err := sonic.Unmarshal(raw, &entry); err != nil {
		s.logger.WarnContext(ctx, "corrupt cache entry, treating as miss", "key", key, "error", err)
		return feed.Payload{}, false
	}

	age := s.now().UnixMilli() - entry.Timestamp
	if age >= s.ttl.Milliseconds() {
		return feed.Payload{}, false
	}

	return entry.Data, true
}

func (s *Store) Put(ctx context.Context, key string, payload feed.Payload) {
	raw, err := sonic.Marshal(envelope{
		Data:      payload,
		Timestamp: s.now().UnixMilli(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "cache encode failed, skipping write", "key", key, "error", err)
		return
	}

	if err := s.kv.Put(ctx, key, raw); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

// Clear removes every namespaced entry and nothing else.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.DeletePrefix(ctx, Prefix); err != nil {
		return fmt.Errorf("clear cache namespace: %w", err)
	}
	return nil
}
