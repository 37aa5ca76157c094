package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisMappingStore keeps unit -> folder mappings in a Redis hash.
type RedisMappingStore struct {
	client *redis.Client
}

func NewRedisMappingStore(client *redis.Client) *RedisMappingStore {
	return &RedisMappingStore{client: client}
}

func (r *RedisMappingStore) Get(ctx context.Context, unitID string) (string, error) {
	folder, err := r.client.HGet(ctx, folderMappingHash, unitID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrMappingNotFound
		}
		return "", fmt.Errorf("hget folder mapping %s: %w", unitID, err)
	}
	if folder == "" {
		return "", ErrMappingNotFound
	}
	return folder, nil
}

func (r *RedisMappingStore) Set(ctx context.Context, unitID, folder string) error {
	if err := r.client.HSet(ctx, folderMappingHash, unitID, folder).Err(); err != nil {
		return fmt.Errorf("hset folder mapping %s: %w", unitID, err)
	}
	return nil
}

func (r *RedisMappingStore) All(ctx context.Context) (map[string]string, error) {
	all, err := r.client.HGetAll(ctx, folderMappingHash).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall folder mappings: %w", err)
	}
	return all, nil
}

func (r *RedisMappingStore) Import(ctx context.Context, mappings map[string]string) error {
	if len(mappings) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(mappings))
	for k, v := range mappings {
		values[k] = v
	}
	if err := r.client.HSet(ctx, folderMappingHash, values).Err(); err != nil {
		return fmt.Errorf("import folder mappings: %w", err)
	}
	return nil
}
