package usecase

import (
	"todo-assistant/internal/user/repository"
	"todo-assistant/pkg/encrypter"
	"todo-assistant/pkg/log"
	"todo-assistant/pkg/scope"
)

// implUseCase is the private implementation of user.UseCase.
type implUseCase struct {
	repo       repository.Repository
	encrypter  encrypter.Encrypter
	jwtManager scope.Manager
	l          log.Logger
}

// New creates a new user UseCase implementation.
func New(repo repository.Repository, enc encrypter.Encrypter, jwtManager scope.Manager, l log.Logger) *implUseCase {
	return &implUseCase{
		repo:       repo,
		encrypter:  enc,
		jwtManager: jwtManager,
		l:          l,
	}
}
