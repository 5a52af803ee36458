package http

import (
	"github.com/gin-gonic/gin"

	"todo-assistant/internal/model"
	pkgErrors "todo-assistant/pkg/errors"
	"todo-assistant/pkg/response"
)

// Register godoc
// @Summary     Create an account
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body body registerReq true "Credentials"
// @Success     201 {object} userResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "Conflict - username taken"
// @Router      /api/v1/auth/register [POST]
func (h *handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	u, err := h.uc.Register(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Register: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.Created(c, h.newUserResp(u))
}

// Login godoc
// @Summary     Log in
// @Description Verifies the credentials, sets the session cookie and returns the token.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body body loginReq true "Credentials"
// @Success     200 {object} loginResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/auth/login [POST]
func (h *handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.Login(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	h.setSessionCookie(c, output.Token)
	response.OK(c, h.newLoginResp(output))
}

// Logout godoc
// @Summary     Log out
// @Description Clears the session cookie.
// @Tags        Auth
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/v1/auth/logout [POST]
func (h *handler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	response.OK(c, nil)
}

// Me godoc
// @Summary     Current user
// @Tags        Users
// @Produce     json
// @Success     200 {object} userResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/users/me [GET]
func (h *handler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.ScopeFromContext(ctx)
	if !ok {
		response.Error(c, pkgErrors.ErrUnauthorized, nil)
		return
	}

	u, err := h.uc.Detail(ctx, sc)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newUserResp(u))
}

// GetColor godoc
// @Summary     Theme color
// @Tags        Users
// @Produce     json
// @Success     200 {object} colorResp
// @Router      /api/v1/users/me/color [GET]
func (h *handler) GetColor(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.ScopeFromContext(ctx)
	if !ok {
		response.Error(c, pkgErrors.ErrUnauthorized, nil)
		return
	}

	color, err := h.uc.GetColor(ctx, sc)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, colorResp{Color: color})
}

// SetColor godoc
// @Summary     Change the theme color
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body body colorReq true "Hex color #rrggbb"
// @Success     200 {object} colorResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/users/me/color [PUT]
func (h *handler) SetColor(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.ScopeFromContext(ctx)
	if !ok {
		response.Error(c, pkgErrors.ErrUnauthorized, nil)
		return
	}

	var req colorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	color, err := h.uc.SetColor(ctx, sc, req.Color)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, colorResp{Color: color})
}
