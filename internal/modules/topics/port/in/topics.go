package in

import (
	"context"

	"kex/internal/modules/topics/dto"
)

type Usecase interface {
	LearningPath(ctx context.Context, topic, level string) (dto.LearningPathOutput, error)
	Summary(ctx context.Context, topic, level string) (dto.SummaryOutput, error)
	ExportNote(ctx context.Context, topic, level string) (dto.NoteOutput, error)
	ClearCache(ctx context.Context) error
}
