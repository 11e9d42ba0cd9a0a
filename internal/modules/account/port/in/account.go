package in

import (
	"context"

	"kex/internal/modules/account/dto"
)

type Usecase interface {
	Login(ctx context.Context, username, password string) (dto.UserOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.UserOutput, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (dto.UserOutput, error)
	ListUsers(ctx context.Context) ([]dto.UserOutput, error)
}
