package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"todo-assistant/internal/model"
	"todo-assistant/internal/user/repository"
	"todo-assistant/pkg/database"
)

const userColumns = `id, username, password_hash, theme_color`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.ThemeColor)
	return u, err
}

func (r *implRepository) CreateUser(ctx context.Context, opt repository.CreateUserOptions) (model.User, error) {
	color := opt.ThemeColor
	if color == "" {
		color = model.DefaultThemeColor
	}

	query := r.driver.Rebind(`INSERT INTO users (username, password_hash, theme_color) VALUES (?, ?, ?) RETURNING ` + userColumns)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, strings.TrimSpace(opt.Username), opt.PasswordHash, color))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.User{}, repository.ErrDuplicate
		}
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateUser"), err)
		return model.User{}, repository.ErrFailedToInsert
	}
	return u, nil
}

func (r *implRepository) GetOneUser(ctx context.Context, opt repository.GetOneUserOptions) (model.User, error) {
	var (
		cond string
		arg  any
	)
	switch {
	case opt.ID > 0:
		cond, arg = "id = ?", opt.ID
	case strings.TrimSpace(opt.Username) != "":
		cond, arg = "lower(username) = lower(CAST(? AS TEXT))", strings.TrimSpace(opt.Username)
	default:
		return model.User{}, repository.ErrEmptyFilter
	}

	query := r.driver.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + cond + ` LIMIT 1`)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneUser"), err)
		return model.User{}, repository.ErrFailedToGet
	}
	return u, nil
}

// UpdateThemeColor returns the zero value when the user does not exist.
func (r *implRepository) UpdateThemeColor(ctx context.Context, id int64, color string) (model.User, error) {
	query := r.driver.Rebind(`UPDATE users SET theme_color = ? WHERE id = ? RETURNING ` + userColumns)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, color, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateThemeColor"), err)
		return model.User{}, repository.ErrFailedToUpdate
	}
	return u, nil
}
