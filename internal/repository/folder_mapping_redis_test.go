package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisMappingStore_GetSet(t *testing.T) {
	mr, client := newMiniRedis(t)
	s := NewRedisMappingStore(client)
	ctx := context.Background()

	_, err := s.Get(ctx, "5")
	assert.ErrorIs(t, err, ErrMappingNotFound)

	require.NoError(t, s.Set(ctx, "5", "birch-5"))
	folder, err := s.Get(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "birch-5", folder)
	assert.Equal(t, "birch-5", mr.HGet(folderMappingHash, "5"))
}

func TestRedisMappingStore_ImportAndAll(t *testing.T) {
	_, client := newMiniRedis(t)
	s := NewRedisMappingStore(client)
	ctx := context.Background()

	require.NoError(t, s.Import(ctx, nil))
	require.NoError(t, s.Import(ctx, map[string]string{"1": "a", "2": "b"}))

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "a", "2": "b"}, all)
}

func TestRedisMappingStore_ConnectionError(t *testing.T) {
	mr, client := newMiniRedis(t)
	s := NewRedisMappingStore(client)
	mr.Close()

	_, err := s.Get(context.Background(), "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMappingNotFound)
}
