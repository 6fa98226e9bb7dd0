package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fikri/scorehub/internal/cache"
	"github.com/fikri/scorehub/internal/platform/kvstore"
	"github.com/fikri/scorehub/internal/platform/logging"
)

const keyCredential = "settings_api_key"

// SettingsService persists the primary API credential. Changing it clears
// the cache namespace so stale mock or secondary data does not outlive a
// newly usable primary source.
type SettingsService struct {
	kv     kvstore.KV
	cache  *cache.Store
	logger *logging.Logger
}

func NewSettingsService(kv kvstore.KV, store *cache.Store, logger *logging.Logger) *SettingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettingsService{kv: kv, cache: store, logger: logger}
}

// Credential returns the stored key, or empty when none is configured. Read
// at request time so a key set mid-process takes effect immediately.
func (s *SettingsService) Credential(ctx context.Context) string {
	value, ok, err := s.kv.Get(ctx, keyCredential)
	if err != nil {
		s.logger.WarnContext(ctx, "credential read failed", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return string(value)
}

func (s *SettingsService) SetCredential(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: credential is required", ErrInvalidInput)
	}

	if err := s.kv.Put(ctx, keyCredential, []byte(key)); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache after credential change: %w", err)
	}
	s.logger.InfoContext(ctx, "API credential updated")
	return nil
}

func (s *SettingsService) ClearCredential(ctx context.Context) error {
	if err := s.kv.Delete(ctx, keyCredential); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache after credential change: %w", err)
	}
	s.logger.InfoContext(ctx, "API credential cleared")
	return nil
}
