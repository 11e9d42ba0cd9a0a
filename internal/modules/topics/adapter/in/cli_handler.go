package in

import (
	"context"

	"kex/internal/modules/topics/dto"
	topicsin "kex/internal/modules/topics/port/in"
)

type CLIHandler struct {
	usecase topicsin.Usecase
}

func NewCLIHandler(usecase topicsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) LearningPath(ctx context.Context, topic, level string) (dto.LearningPathOutput, error) {
	return h.usecase.LearningPath(ctx, topic, level)
}

func (h CLIHandler) Summary(ctx context.Context, topic, level string) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, topic, level)
}

func (h CLIHandler) ExportNote(ctx context.Context, topic, level string) (dto.NoteOutput, error) {
	return h.usecase.ExportNote(ctx, topic, level)
}

func (h CLIHandler) ClearCache(ctx context.Context) error {
	return h.usecase.ClearCache(ctx)
}
