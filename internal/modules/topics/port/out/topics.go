package out

import (
	"context"

	"kex/internal/modules/topics/domain"
)

// RemoteSource is the backend that generates learning paths.
type RemoteSource interface {
	LearningPath(ctx context.Context, topic string, level domain.Level) (domain.LearningPath, error)
	Summary(ctx context.Context, topic string, level domain.Level) (string, error)
}

// ResponseCache keeps backend payloads between runs. Get reports false on a
// miss or an expired entry.
type ResponseCache interface {
	Get(ctx context.Context, key domain.CacheKey) ([]byte, bool, error)
	Put(ctx context.Context, key domain.CacheKey, payload []byte) error
	Clear(ctx context.Context) error
}

// NoteWriter persists an exported learning path and returns where it went.
type NoteWriter interface {
	WriteNote(ctx context.Context, note domain.Note) (string, error)
}
