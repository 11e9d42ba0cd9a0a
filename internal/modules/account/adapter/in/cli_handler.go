package in

import (
	"context"

	"kex/internal/modules/account/dto"
	accountin "kex/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, username, password string) (dto.UserOutput, error) {
	return h.usecase.Login(ctx, username, password)
}

func (h CLIHandler) Register(ctx context.Context, input dto.RegisterInput) (dto.UserOutput, error) {
	return h.usecase.Register(ctx, input)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Me(ctx context.Context) (dto.UserOutput, error) {
	return h.usecase.Me(ctx)
}

func (h CLIHandler) ListUsers(ctx context.Context) ([]dto.UserOutput, error) {
	return h.usecase.ListUsers(ctx)
}
