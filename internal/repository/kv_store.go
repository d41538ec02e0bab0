package repository

import "context"

// KeyValueStore is durable string storage keyed by name.
type KeyValueStore interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
	RemoveKey(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
