package model

// DefaultThemeColor is the theme color given to new accounts.
const DefaultThemeColor = "#2662cb"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	ThemeColor   string
}
