package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

const DefaultScheduleKey = "adreport:schedules"

// ScheduleRepositoryInterface stores the encoded auto-report schedule of each
// project, keyed by pid, for the report scheduler to read.
type ScheduleRepositoryInterface interface {
	Put(ctx context.Context, pid int64, auto string) error
	Get(ctx context.Context, pid int64) (string, bool, error)
	Remove(ctx context.Context, pid int64) error
}

// ====== Redis ======

type RedisScheduleRepository struct {
	Client *redis.Client
	Key    string
}

func (r *RedisScheduleRepository) key() string {
	if r.Key == "" {
		return DefaultScheduleKey
	}
	return r.Key
}

func (r *RedisScheduleRepository) Put(ctx context.Context, pid int64, auto string) error {
	return r.Client.HSet(ctx, r.key(), strconv.FormatInt(pid, 10), auto).Err()
}

func (r *RedisScheduleRepository) Get(ctx context.Context, pid int64) (string, bool, error) {
	auto, err := r.Client.HGet(ctx, r.key(), strconv.FormatInt(pid, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return auto, true, nil
}

func (r *RedisScheduleRepository) Remove(ctx context.Context, pid int64) error {
	return r.Client.HDel(ctx, r.key(), strconv.FormatInt(pid, 10)).Err()
}

// ====== In-memory ======

type MemoryScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[int64]string
}

func NewMemoryScheduleRepository() *MemoryScheduleRepository {
	return &MemoryScheduleRepository{schedules: make(map[int64]string)}
}

func (r *MemoryScheduleRepository) Put(_ context.Context, pid int64, auto string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[pid] = auto
	return nil
}

func (r *MemoryScheduleRepository) Get(_ context.Context, pid int64) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	auto, ok := r.schedules[pid]
	return auto, ok, nil
}

func (r *MemoryScheduleRepository) Remove(_ context.Context, pid int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.schedules, pid)
	return nil
}

var (
	_ ScheduleRepositoryInterface = (*RedisScheduleRepository)(nil)
	_ ScheduleRepositoryInterface = (*MemoryScheduleRepository)(nil)
)
