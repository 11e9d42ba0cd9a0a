package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kex/internal/modules/topics/domain"
	"kex/internal/platform/logger"
)

type fakeRemote struct {
	pathCalls    atomic.Int32
	summaryCalls atomic.Int32
	delay        time.Duration
	err          error
}

func (f *fakeRemote) LearningPath(_ context.Context, topic string, level domain.Level) (domain.LearningPath, error) {
	f.pathCalls.Add(1)
	time.Sleep(f.delay)
	if f.err != nil {
		return domain.LearningPath{}, f.err
	}
	return domain.LearningPath{Links: []string{topic + " basics"}}, nil
}

func (f *fakeRemote) Summary(_ context.Context, topic string, _ domain.Level) (string, error) {
	f.summaryCalls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return topic + " summary", nil
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key domain.CacheKey) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, false, errors.New("disk on fire")
	}
	v, ok := m.entries[key.String()]
	return v, ok, nil
}

func (m *memCache) Put(_ context.Context, key domain.CacheKey, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key.String()] = payload
	return nil
}

func (m *memCache) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string][]byte{}
	return nil
}

func TestLearningPathReadsThroughCache(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{}
	svc := NewTopicService(remote, newMemCache(), logger.Nop())
	ctx := context.Background()

	first, err := svc.LearningPath(ctx, "Go", domain.LevelBasic)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first.Topic != "Go" || first.Summary != domain.NoSummary {
		t.Fatalf("expected normalized path, got %+v", first)
	}
	if _, err := svc.LearningPath(ctx, "Go", domain.LevelBasic); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if remote.pathCalls.Load() != 1 {
		t.Fatalf("expected one backend call, got %d", remote.pathCalls.Load())
	}
	if _, err := svc.LearningPath(ctx, "Go", domain.LevelAdvanced); err != nil {
		t.Fatalf("other level: %v", err)
	}
	if remote.pathCalls.Load() != 2 {
		t.Fatalf("level must miss the cache, got %d calls", remote.pathCalls.Load())
	}
}

func TestConcurrentRequestsShareOneCall(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{delay: 50 * time.Millisecond}
	svc := NewTopicService(remote, nil, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.LearningPath(context.Background(), "Go", domain.LevelBasic); err != nil {
				t.Errorf("learning path: %v", err)
			}
		}()
	}
	wg.Wait()
	if remote.pathCalls.Load() != 1 {
		t.Fatalf("expected calls to collapse, got %d", remote.pathCalls.Load())
	}
}

func TestCacheFailureFallsBackToRemote(t *testing.T) {
	t.Parallel()
	cache := newMemCache()
	cache.failGet = true
	remote := &fakeRemote{}
	svc := NewTopicService(remote, cache, logger.Nop())

	summary, err := svc.Summary(context.Background(), "Go", domain.LevelBasic)
	if err != nil || summary != "Go summary" {
		t.Fatalf("unexpected summary %q err=%v", summary, err)
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{err: &domain.TransportError{Status: 500, Message: "boom"}}
	cache := newMemCache()
	svc := NewTopicService(remote, cache, logger.Nop())

	if _, err := svc.Summary(context.Background(), "Go", domain.LevelBasic); err == nil {
		t.Fatalf("expected error")
	}
	remote.err = nil
	summary, err := svc.Summary(context.Background(), "Go", domain.LevelBasic)
	if err != nil || summary != "Go summary" {
		t.Fatalf("expected recovery, got %q err=%v", summary, err)
	}
	if remote.summaryCalls.Load() != 2 {
		t.Fatalf("expected a second backend call, got %d", remote.summaryCalls.Load())
	}
}
