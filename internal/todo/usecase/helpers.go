package usecase

import (
	"errors"
	"strings"

	"todo-assistant/internal/todo"
	repo "todo-assistant/internal/todo/repository"
)

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", todo.ErrEmptyName
	}
	return name, nil
}

// mapRepoErr translates storage errors that carry domain meaning.
func mapRepoErr(err error) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return todo.ErrDuplicateName
	}
	return err
}
