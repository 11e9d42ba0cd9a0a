package in

import (
	"context"

	"kex/internal/modules/prefs/dto"
	prefsin "kex/internal/modules/prefs/port/in"
)

type CLIHandler struct {
	usecase prefsin.Usecase
}

func NewCLIHandler(usecase prefsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) (dto.Preferences, error) {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) SetDarkMode(ctx context.Context, dark bool) (dto.Preferences, error) {
	return h.usecase.SetDarkMode(ctx, dark)
}

func (h CLIHandler) SetLevel(ctx context.Context, level string) (dto.Preferences, error) {
	return h.usecase.SetLevel(ctx, level)
}
