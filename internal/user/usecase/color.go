package usecase

import (
	"context"
	"regexp"
	"strings"

	"todo-assistant/internal/model"
	"todo-assistant/internal/user"
)

var colorRe = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func (uc *implUseCase) GetColor(ctx context.Context, sc model.Scope) (string, error) {
	u, err := uc.Detail(ctx, sc)
	if err != nil {
		return "", err
	}
	if u.ThemeColor == "" {
		return model.DefaultThemeColor, nil
	}
	return u.ThemeColor, nil
}

// SetColor stores a #rrggbb theme color, normalised to lower case.
func (uc *implUseCase) SetColor(ctx context.Context, sc model.Scope, color string) (string, error) {
	color = strings.ToLower(strings.TrimSpace(color))
	if !colorRe.MatchString(color) {
		return "", user.ErrInvalidColor
	}

	u, err := uc.repo.UpdateThemeColor(ctx, sc.UserID, color)
	if err != nil {
		uc.l.Errorf(ctx, "uc.SetColor UpdateThemeColor: %v", err)
		return "", err
	}
	if u.ID == 0 {
		return "", user.ErrUserNotFound
	}
	return u.ThemeColor, nil
}
