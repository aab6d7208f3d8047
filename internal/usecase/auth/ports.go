package auth

import (
	"context"
	"time"
)

// CodeStore guarda códigos de verificação com expiração (kvstore.Store).
type CodeStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, key string) error
}
