package user

import (
	"time"

	"todo-assistant/internal/model"
)

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	User      model.User
	Token     string
	ExpiresAt time.Time
}
