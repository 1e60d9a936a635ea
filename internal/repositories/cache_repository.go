package repositories

import (
	"context"
	"time"
)

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
}

// ListCacheKey est le schéma de clé des réponses de liste, partagé
// entre les services qui écrivent et le listener qui purge.
func ListCacheKey(collection string) string {
	return "list:" + collection
}
