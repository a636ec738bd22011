package repository_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/adreport-backend/internal/repository"
)

func exerciseScheduleRepository(t *testing.T, repo repository.ScheduleRepositoryInterface) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, 5000000)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Put(ctx, 5000000, `{"usingTarget":"weekly"}`))
	require.NoError(t, repo.Put(ctx, 5000000, `{"usingTarget":"monthly"}`))

	auto, ok, err := repo.Get(ctx, 5000000)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"usingTarget":"monthly"}`, auto)

	require.NoError(t, repo.Remove(ctx, 5000000))
	require.NoError(t, repo.Remove(ctx, 5000000), "removing twice is not an error")

	_, ok, err = repo.Get(ctx, 5000000)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisScheduleRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	repo := &repository.RedisScheduleRepository{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	exerciseScheduleRepository(t, repo)

	require.NoError(t, repo.Put(context.Background(), 7, "x"))
	assert.Equal(t, "x", mr.HGet(repository.DefaultScheduleKey, "7"))
}

func TestMemoryScheduleRepository(t *testing.T) {
	exerciseScheduleRepository(t, repository.NewMemoryScheduleRepository())
}
