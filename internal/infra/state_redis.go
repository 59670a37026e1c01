package infra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"doorquote/internal/store"
)

// RedisStateStore persists the whole catalog state as JSON under the fixed
// storage namespace key. Default persistence driver.
type RedisStateStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStateStore(rdb *redis.Client) *RedisStateStore {
	return &RedisStateStore{rdb: rdb, key: store.StorageKey}
}

func (r *RedisStateStore) Save(ctx context.Context, st store.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("state store: marshal: %w", err)
	}
	return r.rdb.Set(ctx, r.key, data, 0).Err()
}

// Load returns (nil, nil) when the namespace key does not exist yet.
func (r *RedisStateStore) Load(ctx context.Context) (*store.State, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st store.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("state store: corrupt state under %q: %w", r.key, err)
	}
	return &st, nil
}

var _ store.Persistence = (*RedisStateStore)(nil)
