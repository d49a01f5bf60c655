// Package redis is the local snapshot backend. Each collection lives in one
// hash keyed by record id with JSON-encoded values, and every write publishes
// a signal on the collection's pub/sub channel so subscribed coordinators
// reload.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

func hashKey(col ports.Collection) string { return "col:" + string(col) }

func channel(col ports.Collection) string { return "changes:" + string(col) }

// notify publishes a change signal for the collection. Subscribers reload the
// whole snapshot, so the payload carries no detail.
func notify(ctx context.Context, client *redis.Client, col ports.Collection) error {
	return client.Publish(ctx, channel(col), "1").Err()
}

func getRecord[T any](ctx context.Context, client *redis.Client, col ports.Collection, id string) (*T, error) {
	raw, err := client.HGet(ctx, hashKey(col), id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", col, id, err)
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", col, id, err)
	}
	return &v, nil
}

func putRecord[T any](ctx context.Context, client *redis.Client, col ports.Collection, id string, v *T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", col, id, err)
	}
	if err := client.HSet(ctx, hashKey(col), id, string(raw)).Err(); err != nil {
		return fmt.Errorf("put %s/%s: %w", col, id, err)
	}
	return notify(ctx, client, col)
}

// updateRecord replaces an existing record only. The existence check and the
// write run under WATCH so a concurrent delete cannot resurrect the record.
func updateRecord[T any](ctx context.Context, client *redis.Client, col ports.Collection, id string, v *T) error {
	key := hashKey(col)
	err := client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.HExists(ctx, key, id).Result()
		if err != nil {
			return err
		}
		if !n {
			return domain.ErrNotFound
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, string(raw))
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update %s/%s: %w", col, id, err)
	}
	return notify(ctx, client, col)
}

func deleteRecord(ctx context.Context, client *redis.Client, col ports.Collection, id string) error {
	n, err := client.HDel(ctx, hashKey(col), id).Result()
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", col, id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return notify(ctx, client, col)
}

func loadAll[T any](ctx context.Context, client *redis.Client, col ports.Collection) ([]T, error) {
	raw, err := client.HGetAll(ctx, hashKey(col)).Result()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", col, err)
	}
	items := make([]T, 0, len(raw))
	for id, s := range raw {
		var v T
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", col, id, err)
		}
		items = append(items, v)
	}
	return items, nil
}

// mutateRecord applies fn to the stored record under WATCH and writes the
// result back. fn returning (false, nil) abandons the write.
func mutateRecord[T any](ctx context.Context, client *redis.Client, col ports.Collection, id string, fn func(*T) (bool, error)) error {
	key := hashKey(col)
	err := client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, key, id).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domain.ErrNotFound
			}
			return err
		}
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return err
		}
		write, err := fn(&v)
		if err != nil {
			return err
		}
		if !write {
			return nil
		}
		out, err := json.Marshal(&v)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, string(out))
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("mutate %s/%s: %w", col, id, err)
	}
	return notify(ctx, client, col)
}
