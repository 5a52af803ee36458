package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert user")
	ErrFailedToGet    = errors.New("failed to get user")
	ErrFailedToUpdate = errors.New("failed to update user")
	ErrDuplicate      = errors.New("user already exists")
	ErrEmptyFilter    = errors.New("user lookup needs an id or a username")
)
