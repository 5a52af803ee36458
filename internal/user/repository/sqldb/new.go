package sqldb

import (
	"database/sql"
	"fmt"

	"todo-assistant/internal/user/repository"
	"todo-assistant/pkg/database"
	"todo-assistant/pkg/log"
)

type implRepository struct {
	db     *sql.DB
	driver database.Driver
	l      log.Logger
}

// New creates a SQL-backed user Repository.
func New(db *sql.DB, driver database.Driver, l log.Logger) repository.Repository {
	return &implRepository{db: db, driver: driver, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("user/repository/sqldb.%s", method)
}
