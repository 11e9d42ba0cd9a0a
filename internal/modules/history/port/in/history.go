package in

import (
	"context"

	"kex/internal/modules/history/dto"
)

type Usecase interface {
	Record(ctx context.Context, topic string) error
	Suggest(ctx context.Context, input string, limit int) ([]dto.Entry, error)
	List(ctx context.Context, limit int) ([]dto.Entry, error)
	Clear(ctx context.Context) error
}
