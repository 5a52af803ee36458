package repository

type CreateUserOptions struct {
	Username     string
	PasswordHash string
	ThemeColor   string
}

// GetOneUserOptions filters by ID or by username (case-insensitive).
type GetOneUserOptions struct {
	ID       int64
	Username string
}
