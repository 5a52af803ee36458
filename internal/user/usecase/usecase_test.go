package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"

	"todo-assistant/internal/model"
	"todo-assistant/internal/user"
	"todo-assistant/internal/user/repository"
	"todo-assistant/internal/user/usecase"
	"todo-assistant/pkg/encrypter"
	"todo-assistant/pkg/log"
	"todo-assistant/pkg/scope"
)

type mockRepo struct {
	users map[int64]model.User
	fail  bool
}

func newMockRepo() *mockRepo { return &mockRepo{users: map[int64]model.User{}} }

func (m *mockRepo) CreateUser(ctx context.Context, opt repository.CreateUserOptions) (model.User, error) {
	if m.fail {
		return model.User{}, repository.ErrFailedToInsert
	}
	u := model.User{ID: int64(len(m.users) + 1), Username: opt.Username, PasswordHash: opt.PasswordHash, ThemeColor: model.DefaultThemeColor}
	m.users[u.ID] = u
	return u, nil
}

func (m *mockRepo) GetOneUser(ctx context.Context, opt repository.GetOneUserOptions) (model.User, error) {
	if opt.ID == 0 && opt.Username == "" {
		return model.User{}, repository.ErrEmptyFilter
	}
	for _, u := range m.users {
		if u.ID == opt.ID || (opt.Username != "" && strings.EqualFold(u.Username, opt.Username)) {
			return u, nil
		}
	}
	return model.User{}, nil
}

func (m *mockRepo) UpdateThemeColor(ctx context.Context, id int64, color string) (model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return model.User{}, nil
	}
	u.ThemeColor = color
	m.users[id] = u
	return u, nil
}

func newUseCase(t *testing.T, repo repository.Repository) (user.UseCase, scope.Manager) {
	t.Helper()
	jm, err := scope.New("secret", time.Hour, "test")
	if err != nil {
		t.Fatalf("scope.New: %v", err)
	}
	enc := encrypter.New(&argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	return usecase.New(repo, enc, jm, log.NewNop()), jm
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, newMockRepo())

	tests := []struct {
		name    string
		input   user.RegisterInput
		wantErr error
	}{
		{name: "ok", input: user.RegisterInput{Username: "david", Password: "correct horse"}},
		{name: "taken ignores case", input: user.RegisterInput{Username: "DAVID", Password: "correct horse"}, wantErr: user.ErrUsernameTaken},
		{name: "short password", input: user.RegisterInput{Username: "erin", Password: "short"}, wantErr: user.ErrWeakPassword},
		{name: "bad username", input: user.RegisterInput{Username: "a b", Password: "correct horse"}, wantErr: user.ErrInvalidUsername},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := uc.Register(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && u.PasswordHash == tt.input.Password {
				t.Error("password stored in clear text")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	uc, jm := newUseCase(t, newMockRepo())

	if _, err := uc.Register(ctx, user.RegisterInput{Username: "david", Password: "correct horse"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out, err := uc.Login(ctx, user.LoginInput{Username: "David", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	p, err := jm.Verify(out.Token)
	if err != nil || p.UserID != out.User.ID {
		t.Errorf("token payload = %+v, %v", p, err)
	}

	if _, err := uc.Login(ctx, user.LoginInput{Username: "david", Password: "wrong password"}); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Errorf("wrong password = %v", err)
	}
	if _, err := uc.Login(ctx, user.LoginInput{Username: "nobody", Password: "whatever1"}); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Errorf("unknown user = %v", err)
	}
}

func TestColor(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	uc, _ := newUseCase(t, repo)

	u, _ := uc.Register(ctx, user.RegisterInput{Username: "david", Password: "correct horse"})
	sc := model.Scope{UserID: u.ID, Username: u.Username}

	color, err := uc.GetColor(ctx, sc)
	if err != nil || color != model.DefaultThemeColor {
		t.Errorf("GetColor = %q, %v", color, err)
	}

	color, err = uc.SetColor(ctx, sc, " #AABBCC ")
	if err != nil || color != "#aabbcc" {
		t.Errorf("SetColor = %q, %v", color, err)
	}

	if _, err := uc.SetColor(ctx, sc, "blue"); !errors.Is(err, user.ErrInvalidColor) {
		t.Errorf("invalid color = %v", err)
	}
	if _, err := uc.GetColor(ctx, model.Scope{UserID: 404}); !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("missing user = %v", err)
	}
}
