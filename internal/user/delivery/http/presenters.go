package http

import (
	"time"

	"todo-assistant/internal/model"
	"todo-assistant/internal/user"
)

// --- Request DTOs ---

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r registerReq) toInput() user.RegisterInput {
	return user.RegisterInput{Username: r.Username, Password: r.Password}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r loginReq) toInput() user.LoginInput {
	return user.LoginInput{Username: r.Username, Password: r.Password}
}

type colorReq struct {
	Color string `json:"color" binding:"required"`
}

// --- Response DTOs ---

type userResp struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	ThemeColor string `json:"theme_color"`
}

type loginResp struct {
	User      userResp  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type colorResp struct {
	Color string `json:"color"`
}

func (h *handler) newUserResp(u model.User) userResp {
	return userResp{ID: u.ID, Username: u.Username, ThemeColor: u.ThemeColor}
}

func (h *handler) newLoginResp(o user.LoginOutput) loginResp {
	return loginResp{User: h.newUserResp(o.User), Token: o.Token, ExpiresAt: o.ExpiresAt}
}
