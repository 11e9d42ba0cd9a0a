package in

import (
	"context"

	"kex/internal/modules/prefs/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.Preferences, error)
	SetDarkMode(ctx context.Context, dark bool) (dto.Preferences, error)
	SetLevel(ctx context.Context, level string) (dto.Preferences, error)
}
