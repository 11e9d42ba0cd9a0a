package usecase

import (
	"context"
	"fmt"
	"strings"

	"kex/internal/modules/topics/domain"
	"kex/internal/modules/topics/dto"
	topicsin "kex/internal/modules/topics/port/in"
	topicsout "kex/internal/modules/topics/port/out"
	"kex/internal/modules/topics/service"
	"kex/internal/platform/clock"
	apperrors "kex/internal/platform/errors"
)

type Interactor struct {
	svc   *service.TopicService
	notes topicsout.NoteWriter
	clock clock.Clock
}

// NewInteractor wires the topic usecases. notes may be nil, in which case
// ExportNote is unavailable.
func NewInteractor(svc *service.TopicService, notes topicsout.NoteWriter, clk clock.Clock) topicsin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{svc: svc, notes: notes, clock: clk}
}

func (i *Interactor) LearningPath(ctx context.Context, topic, level string) (dto.LearningPathOutput, error) {
	topic, lvl, err := validate(topic, level)
	if err != nil {
		return dto.LearningPathOutput{}, err
	}
	path, err := i.svc.LearningPath(ctx, topic, lvl)
	if err != nil {
		return dto.LearningPathOutput{}, err
	}
	return dto.LearningPathOutput{
		Topic:   path.Topic,
		Level:   string(lvl),
		Summary: path.Summary,
		Links:   path.Links,
	}, nil
}

func (i *Interactor) Summary(ctx context.Context, topic, level string) (dto.SummaryOutput, error) {
	topic, lvl, err := validate(topic, level)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	summary, err := i.svc.Summary(ctx, topic, lvl)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		Topic:   topic,
		Level:   string(lvl),
		Summary: summary,
		Missing: domain.SummaryMissing(summary),
	}, nil
}

// ExportNote fetches the learning path and writes it as a markdown note.
func (i *Interactor) ExportNote(ctx context.Context, topic, level string) (dto.NoteOutput, error) {
	if i.notes == nil {
		return dto.NoteOutput{}, fmt.Errorf("note export is not configured: %w", apperrors.ErrInvalidInput)
	}
	topic, lvl, err := validate(topic, level)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	path, err := i.svc.LearningPath(ctx, topic, lvl)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	file, err := i.notes.WriteNote(ctx, domain.Note{Path: path, Level: lvl, ExportedAt: i.clock.Now()})
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return dto.NoteOutput{Topic: path.Topic, Path: file, Links: len(path.Links)}, nil
}

func (i *Interactor) ClearCache(ctx context.Context) error {
	return i.svc.ClearCache(ctx)
}

func validate(topic, level string) (string, domain.Level, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", "", fmt.Errorf("topic is required: %w", apperrors.ErrInvalidInput)
	}
	lvl, err := domain.ParseLevel(level)
	if err != nil {
		return "", "", fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	return topic, lvl, nil
}
