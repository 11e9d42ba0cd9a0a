package usecase

import (
	"context"
	"fmt"
	"strings"

	"kex/internal/modules/account/domain"
	"kex/internal/modules/account/dto"
	accountin "kex/internal/modules/account/port/in"
	accountout "kex/internal/modules/account/port/out"
	apperrors "kex/internal/platform/errors"
	"kex/internal/platform/logger"
)

type Interactor struct {
	gateway accountout.Gateway
	log     *logger.Logger
}

func NewInteractor(gateway accountout.Gateway, log *logger.Logger) accountin.Usecase {
	if log == nil {
		log = logger.Nop()
	}
	return &Interactor{gateway: gateway, log: log}
}

func (i *Interactor) Login(ctx context.Context, username, password string) (dto.UserOutput, error) {
	creds := domain.Credentials{Username: strings.TrimSpace(username), Password: password}
	if err := creds.Validate(); err != nil {
		return dto.UserOutput{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	if err := i.gateway.Login(ctx, creds); err != nil {
		return dto.UserOutput{}, err
	}
	i.log.Info("logged in", "username", creds.Username)
	return i.Me(ctx)
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.UserOutput, error) {
	reg := domain.Registration{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
	}
	if err := reg.Validate(); err != nil {
		return dto.UserOutput{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	if err := i.gateway.Register(ctx, reg); err != nil {
		return dto.UserOutput{}, err
	}
	i.log.Info("registered", "username", reg.Username)
	return i.Me(ctx)
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.gateway.Logout(ctx)
}

func (i *Interactor) Me(ctx context.Context) (dto.UserOutput, error) {
	u, err := i.gateway.Me(ctx)
	if err != nil {
		return dto.UserOutput{}, err
	}
	return toOutput(u), nil
}

// ListUsers is admin-only. Non-admin sessions are refused before the admin
// endpoint is called.
func (i *Interactor) ListUsers(ctx context.Context) ([]dto.UserOutput, error) {
	me, err := i.gateway.Me(ctx)
	if err != nil {
		return nil, err
	}
	if !me.IsAdmin {
		return nil, fmt.Errorf("user %s: %w", me.Username, apperrors.ErrForbidden)
	}
	users, err := i.gateway.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, toOutput(u))
	}
	return out, nil
}

func toOutput(u domain.User) dto.UserOutput {
	return dto.UserOutput{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}
