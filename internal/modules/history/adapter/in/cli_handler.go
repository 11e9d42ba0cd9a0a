package in

import (
	"context"

	"kex/internal/modules/history/dto"
	historyin "kex/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, topic string) error {
	return h.usecase.Record(ctx, topic)
}

func (h CLIHandler) Suggest(ctx context.Context, input string, limit int) ([]dto.Entry, error) {
	return h.usecase.Suggest(ctx, input, limit)
}

func (h CLIHandler) List(ctx context.Context, limit int) ([]dto.Entry, error) {
	return h.usecase.List(ctx, limit)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}
