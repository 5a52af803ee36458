package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert record")
	ErrFailedToGet    = errors.New("failed to get record")
	ErrFailedToList   = errors.New("failed to list records")
	ErrFailedToUpdate = errors.New("failed to update record")
	ErrFailedToDelete = errors.New("failed to delete record")
	ErrFailedToBegin  = errors.New("failed to begin transaction")
	ErrFailedToCommit = errors.New("failed to commit transaction")
	ErrDuplicate      = errors.New("record already exists")
	ErrMissingScope   = errors.New("user scope is required")
)
