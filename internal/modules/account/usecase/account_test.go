package usecase

import (
	"context"
	"errors"
	"testing"

	"kex/internal/modules/account/domain"
	"kex/internal/modules/account/dto"
	apperrors "kex/internal/platform/errors"
	"kex/internal/platform/logger"
)

type fakeGateway struct {
	me          domain.User
	meErr       error
	users       []domain.User
	listCalls   int
	loginCalled bool
}

func (f *fakeGateway) Login(context.Context, domain.Credentials) error {
	f.loginCalled = true
	return nil
}
func (f *fakeGateway) Register(context.Context, domain.Registration) error { return nil }
func (f *fakeGateway) Logout(context.Context) error                        { return nil }
func (f *fakeGateway) Me(context.Context) (domain.User, error)             { return f.me, f.meErr }
func (f *fakeGateway) ListUsers(context.Context) ([]domain.User, error) {
	f.listCalls++
	return f.users, nil
}

func TestListUsersRequiresAdmin(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{me: domain.User{Username: "reader"}}
	uc := NewInteractor(gw, logger.Nop())

	if _, err := uc.ListUsers(context.Background()); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if gw.listCalls != 0 {
		t.Fatalf("admin endpoint must not be called for non-admins")
	}
}

func TestListUsersUnauthenticated(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{meErr: apperrors.ErrUnauthorized}
	uc := NewInteractor(gw, logger.Nop())

	if _, err := uc.ListUsers(context.Background()); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestListUsersAdmin(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{
		me:    domain.User{Username: "admin", IsAdmin: true},
		users: []domain.User{{ID: 1, Username: "admin", IsAdmin: true}, {ID: 2, Username: "reader"}},
	}
	uc := NewInteractor(gw, logger.Nop())

	users, err := uc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 || users[1].Username != "reader" {
		t.Fatalf("unexpected users %+v", users)
	}
}

func TestLoginValidatesBeforeCallingBackend(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := NewInteractor(gw, logger.Nop())

	if _, err := uc.Login(context.Background(), "  ", "pw"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if gw.loginCalled {
		t.Fatalf("backend must not be called with invalid credentials")
	}
	if _, err := uc.Register(context.Background(), dto.RegisterInput{Username: "ada", Email: "nope", Password: "pw"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid email rejection, got %v", err)
	}
}
