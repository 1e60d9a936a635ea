package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"interim-system/internal/events"
	"interim-system/internal/repositories"
	"interim-system/pkg/eventbus"
)

// CacheInvalidationListener purge les réponses de liste mises en cache
// dans Redis quand une entité de la collection change.
type CacheInvalidationListener struct {
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
}

func NewCacheInvalidationListener(cacheRepo repositories.CacheRepositoryInterface, logger *zap.Logger) *CacheInvalidationListener {
	return &CacheInvalidationListener{cacheRepo: cacheRepo, logger: logger}
}

func (l *CacheInvalidationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.EntityChangedEvent, l.handle)
}

func (l *CacheInvalidationListener) handle(ctx context.Context, event eventbus.Event) error {
	changed, ok := event.(events.EntityChanged)
	if !ok {
		return nil
	}

	key := repositories.ListCacheKey(changed.Collection)
	if err := l.cacheRepo.Del(ctx, key); err != nil {
		return fmt.Errorf("purge du cache %s: %w", key, err)
	}

	l.logger.Debug("Cache de liste purgé",
		zap.String("collection", changed.Collection),
		zap.String("action", changed.Action),
	)
	return nil
}
