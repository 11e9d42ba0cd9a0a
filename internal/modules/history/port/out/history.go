package out

import (
	"context"
	"time"

	"kex/internal/modules/history/domain"
)

type Store interface {
	Record(ctx context.Context, topic string, at time.Time) error
	// List returns entries most recent first. A limit of zero means all.
	List(ctx context.Context, limit int) ([]domain.Entry, error)
	Clear(ctx context.Context) error
}
