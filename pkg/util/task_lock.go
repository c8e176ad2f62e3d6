package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TaskLock serializes lifecycle mutations per task id with a redis lease.
// Tasks are independent, so there is no cross-task locking; a lost lease is
// tolerated because the next sweep re-resolves the task anyway.
type TaskLock struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewTaskLock(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *TaskLock {
	return &TaskLock{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// Acquire takes the per-task lease, polling briefly if another mutation holds
// it. The returned release func is safe to call once the work is done.
func (l *TaskLock) Acquire(ctx context.Context, taskID int) (func(), error) {
	key := fmt.Sprintf("tasklock:%d", taskID)

	for {
		ok, err := l.rdb.SetNX(ctx, key, 1, l.ttl).Result()
		if err != nil {
			// Redis down: proceed unlocked rather than wedge the engine.
			if l.logger != nil {
				l.logger.Warn("Redis task lock unavailable, proceeding without lease",
					zap.Int("task_id", taskID),
					zap.Error(err),
				)
			}
			return func() {}, nil
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	release := func() {
		if err := l.rdb.Del(context.Background(), key).Err(); err != nil && l.logger != nil {
			l.logger.Warn("Failed to release task lock",
				zap.Int("task_id", taskID),
				zap.Error(err),
			)
		}
	}
	return release, nil
}
