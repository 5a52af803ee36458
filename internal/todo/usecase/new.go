package usecase

import (
	"time"

	"todo-assistant/internal/todo/repository"
	"todo-assistant/pkg/log"
)

// implUseCase is the private implementation of todo.UseCase.
type implUseCase struct {
	repo repository.Repository
	l    log.Logger
	now  func() time.Time
}

// New creates a new todo UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
		now:  time.Now,
	}
}
