package repository

import (
	"context"

	"todo-assistant/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	CreateUser(ctx context.Context, opt CreateUserOptions) (model.User, error)
	// GetOneUser returns the zero value when no user matches.
	GetOneUser(ctx context.Context, opt GetOneUserOptions) (model.User, error)
	UpdateThemeColor(ctx context.Context, id int64, color string) (model.User, error)
}
