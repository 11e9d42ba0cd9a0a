package service

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/singleflight"

	"kex/internal/modules/topics/domain"
	topicsout "kex/internal/modules/topics/port/out"
	"kex/internal/platform/logger"
)

// TopicService reads through the response cache and collapses identical
// concurrent requests into one backend call.
type TopicService struct {
	remote topicsout.RemoteSource
	cache  topicsout.ResponseCache
	group  singleflight.Group
	log    *logger.Logger
}

func NewTopicService(remote topicsout.RemoteSource, cache topicsout.ResponseCache, log *logger.Logger) *TopicService {
	if log == nil {
		log = logger.Nop()
	}
	return &TopicService{remote: remote, cache: cache, log: log}
}

func (s *TopicService) LearningPath(ctx context.Context, topic string, level domain.Level) (domain.LearningPath, error) {
	key := domain.CacheKey{Kind: domain.CacheLearningPath, Topic: topic, Level: level}
	var cached domain.LearningPath
	if s.readCache(ctx, key, &cached) {
		return domain.Normalize(topic, cached), nil
	}
	v, err, shared := s.group.Do(key.String(), func() (any, error) {
		path, err := s.remote.LearningPath(ctx, topic, level)
		if err != nil {
			return nil, err
		}
		path = domain.Normalize(topic, path)
		s.writeCache(ctx, key, path)
		return path, nil
	})
	if err != nil {
		return domain.LearningPath{}, err
	}
	if shared {
		s.log.Debug("learning path request shared", "topic", topic, "level", level)
	}
	return v.(domain.LearningPath), nil
}

func (s *TopicService) Summary(ctx context.Context, topic string, level domain.Level) (string, error) {
	key := domain.CacheKey{Kind: domain.CacheSummary, Topic: topic, Level: level}
	var cached string
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}
	v, err, _ := s.group.Do(key.String(), func() (any, error) {
		summary, err := s.remote.Summary(ctx, topic, level)
		if err != nil {
			return nil, err
		}
		s.writeCache(ctx, key, summary)
		return summary, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *TopicService) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}

func (s *TopicService) readCache(ctx context.Context, key domain.CacheKey, into any) bool {
	if s.cache == nil {
		return false
	}
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed", "key", key.String(), "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, into); err != nil {
		s.log.Warn("corrupted cache entry", "key", key.String(), "error", err)
		return false
	}
	return true
}

func (s *TopicService) writeCache(ctx context.Context, key domain.CacheKey, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("encode cache entry", "key", key.String(), "error", err)
		return
	}
	if err := s.cache.Put(ctx, key, payload); err != nil {
		s.log.Warn("cache write failed", "key", key.String(), "error", err)
	}
}
