package usecase

import (
	"context"
	"fmt"
	"strings"

	"kex/internal/modules/history/domain"
	"kex/internal/modules/history/dto"
	historyin "kex/internal/modules/history/port/in"
	historyout "kex/internal/modules/history/port/out"
	"kex/internal/platform/clock"
	apperrors "kex/internal/platform/errors"
)

// suggestPool bounds how much history is scanned for suggestions.
const suggestPool = 500

type Interactor struct {
	store historyout.Store
	clock clock.Clock
}

func NewInteractor(store historyout.Store, clk clock.Clock) historyin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{store: store, clock: clk}
}

func (i *Interactor) Record(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("topic is required: %w", apperrors.ErrInvalidInput)
	}
	return i.store.Record(ctx, topic, i.clock.Now())
}

func (i *Interactor) Suggest(ctx context.Context, input string, limit int) ([]dto.Entry, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	entries, err := i.store.List(ctx, suggestPool)
	if err != nil {
		return nil, err
	}
	return toDTOs(domain.Suggest(entries, input, limit)), nil
}

func (i *Interactor) List(ctx context.Context, limit int) ([]dto.Entry, error) {
	entries, err := i.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toDTOs(entries), nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.store.Clear(ctx)
}

func toDTOs(entries []domain.Entry) []dto.Entry {
	out := make([]dto.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.Entry{Topic: e.Topic, Count: e.Count, LastUsed: e.LastUsed})
	}
	return out
}
