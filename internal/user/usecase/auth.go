package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"todo-assistant/internal/model"
	"todo-assistant/internal/user"
	"todo-assistant/internal/user/repository"
)

const minPasswordLength = 8

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{3,32}$`)

// Register creates an account with a hashed password.
func (uc *implUseCase) Register(ctx context.Context, input user.RegisterInput) (model.User, error) {
	username := strings.TrimSpace(input.Username)
	if !usernameRe.MatchString(username) {
		return model.User{}, user.ErrInvalidUsername
	}
	if len(input.Password) < minPasswordLength {
		return model.User{}, user.ErrWeakPassword
	}

	existing, err := uc.repo.GetOneUser(ctx, repository.GetOneUserOptions{Username: username})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Register GetOneUser: %v", err)
		return model.User{}, err
	}
	if existing.ID != 0 {
		return model.User{}, user.ErrUsernameTaken
	}

	hash, err := uc.encrypter.HashPassword(input.Password)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Register HashPassword: %v", err)
		return model.User{}, err
	}

	u, err := uc.repo.CreateUser(ctx, repository.CreateUserOptions{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, user.ErrUsernameTaken
		}
		uc.l.Errorf(ctx, "uc.Register CreateUser: %v", err)
		return model.User{}, err
	}
	return u, nil
}

// Login checks the password and issues a session token.
func (uc *implUseCase) Login(ctx context.Context, input user.LoginInput) (user.LoginOutput, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return user.LoginOutput{}, user.ErrInvalidCredentials
	}

	u, err := uc.repo.GetOneUser(ctx, repository.GetOneUserOptions{Username: input.Username})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Login GetOneUser: %v", err)
		return user.LoginOutput{}, err
	}
	if u.ID == 0 {
		return user.LoginOutput{}, user.ErrInvalidCredentials
	}

	ok, err := uc.encrypter.ComparePassword(input.Password, u.PasswordHash)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Login ComparePassword: %v", err)
		return user.LoginOutput{}, user.ErrInvalidCredentials
	}
	if !ok {
		return user.LoginOutput{}, user.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.jwtManager.CreateToken(u.ID, u.Username)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Login CreateToken: %v", err)
		return user.LoginOutput{}, err
	}
	return user.LoginOutput{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope) (model.User, error) {
	return uc.getOne(ctx, repository.GetOneUserOptions{ID: sc.UserID})
}

// DetailByUsername looks a user up by name, for tooling that acts on behalf
// of an account.
func (uc *implUseCase) DetailByUsername(ctx context.Context, username string) (model.User, error) {
	return uc.getOne(ctx, repository.GetOneUserOptions{Username: username})
}

func (uc *implUseCase) getOne(ctx context.Context, opt repository.GetOneUserOptions) (model.User, error) {
	u, err := uc.repo.GetOneUser(ctx, opt)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyFilter) {
			return model.User{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "uc.getOne GetOneUser: %v", err)
		return model.User{}, err
	}
	if u.ID == 0 {
		return model.User{}, user.ErrUserNotFound
	}
	return u, nil
}
