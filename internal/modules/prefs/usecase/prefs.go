package usecase

import (
	"context"
	"fmt"

	"kex/internal/modules/prefs/domain"
	"kex/internal/modules/prefs/dto"
	prefsin "kex/internal/modules/prefs/port/in"
	prefsout "kex/internal/modules/prefs/port/out"
	apperrors "kex/internal/platform/errors"
)

type Interactor struct {
	store prefsout.Store
}

func NewInteractor(store prefsout.Store) prefsin.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) Load(ctx context.Context) (dto.Preferences, error) {
	p, err := i.store.Load(ctx)
	if err != nil {
		return dto.Preferences{}, err
	}
	return toDTO(p), nil
}

func (i *Interactor) SetDarkMode(ctx context.Context, dark bool) (dto.Preferences, error) {
	return i.update(ctx, func(p *domain.Preferences) error {
		p.DarkMode = dark
		return nil
	})
}

func (i *Interactor) SetLevel(ctx context.Context, level string) (dto.Preferences, error) {
	return i.update(ctx, func(p *domain.Preferences) error {
		lvl, err := domain.NormalizeLevel(level)
		if err != nil {
			return fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
		}
		p.Level = lvl
		return nil
	})
}

func (i *Interactor) update(ctx context.Context, mutate func(*domain.Preferences) error) (dto.Preferences, error) {
	p, err := i.store.Load(ctx)
	if err != nil {
		return dto.Preferences{}, err
	}
	if err := mutate(&p); err != nil {
		return dto.Preferences{}, err
	}
	if err := i.store.Save(ctx, p); err != nil {
		return dto.Preferences{}, err
	}
	return toDTO(p), nil
}

func toDTO(p domain.Preferences) dto.Preferences {
	return dto.Preferences{DarkMode: p.DarkMode, Level: p.Level}
}
