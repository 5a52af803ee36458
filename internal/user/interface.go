package user

import (
	"context"

	"todo-assistant/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Register(ctx context.Context, input RegisterInput) (model.User, error)
	Login(ctx context.Context, input LoginInput) (LoginOutput, error)
	Detail(ctx context.Context, sc model.Scope) (model.User, error)
	DetailByUsername(ctx context.Context, username string) (model.User, error)
	GetColor(ctx context.Context, sc model.Scope) (string, error)
	SetColor(ctx context.Context, sc model.Scope, color string) (string, error)
}
