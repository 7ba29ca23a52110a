package service

import (
	"context"
	"coursegpt_backend/internal/model"
	"coursegpt_backend/pkg/logger"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// LessonCache is a read-through cache in front of the lesson store. Cache
// failures are logged and otherwise ignored.
type LessonCache interface {
	Get(ctx context.Context, id string) (*model.Lesson, bool)
	Set(ctx context.Context, lesson *model.Lesson)
	Invalidate(ctx context.Context, id string)
}

type noopLessonCache struct{}

func (noopLessonCache) Get(context.Context, string) (*model.Lesson, bool) { return nil, false }
func (noopLessonCache) Set(context.Context, *model.Lesson)                {}
func (noopLessonCache) Invalidate(context.Context, string)                {}

type RedisLessonCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLessonCache(client *redis.Client, ttl time.Duration) *RedisLessonCache {
	return &RedisLessonCache{client: client, ttl: ttl}
}

func lessonCacheKey(id string) string {
	return "lesson:" + id
}

func (c *RedisLessonCache) Get(ctx context.Context, id string) (*model.Lesson, bool) {
	raw, err := c.client.Get(ctx, lessonCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("lesson cache read failed", zap.String("id", id), zap.Error(err))
		}
		return nil, false
	}

	var lesson model.Lesson
	if err := json.Unmarshal(raw, &lesson); err != nil {
		logger.Log.Warn("lesson cache entry corrupt", zap.String("id", id), zap.Error(err))
		return nil, false
	}
	return &lesson, true
}

func (c *RedisLessonCache) Set(ctx context.Context, lesson *model.Lesson) {
	raw, err := json.Marshal(lesson)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, lessonCacheKey(lesson.ID), raw, c.ttl).Err(); err != nil {
		logger.Log.Warn("lesson cache write failed", zap.String("id", lesson.ID), zap.Error(err))
	}
}

func (c *RedisLessonCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, lessonCacheKey(id)).Err(); err != nil {
		logger.Log.Warn("lesson cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}
