// internal/controller/user_controller.go
package controller

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/adreport-backend/internal/auth"
	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/service"
)

type UserController struct {
	UserService *service.UserService
	AuthService *service.AuthService
	Logger      *zap.Logger
}

func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var body service.RegisterUserInput
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	u, err := c.UserService.Register(r.Context(), body)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	writeOK(w, "Registered", struct {
		UID        int64     `json:"uid"`
		CreateTime time.Time `json:"createTime"`
	}{u.UID, u.CreateAt})
}

func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var body service.LoginInput
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	res, err := c.AuthService.Login(r.Context(), body)
	if err != nil {
		WriteError(w, c.Logger, err)
		return
	}

	writeOK(w, "Login Successfully", struct {
		UID       int64     `json:"uid"`
		CID       int64     `json:"cid"`
		Username  string    `json:"username"`
		CreateAt  time.Time `json:"create_at"`
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}{res.User.UID, res.User.CID, res.User.Username, res.User.CreateAt, res.Token, res.ExpiresAt})
}

func (c *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	tok, ok := auth.TokenFrom(r.Context())
	if !ok {
		WriteError(w, c.Logger, appErrors.NewUnauthorized("no token"))
		return
	}
	if err := c.AuthService.Logout(r.Context(), tok); err != nil {
		WriteError(w, c.Logger, err)
		return
	}
	writeOK(w, "Logout Successfully", nil)
}

func (c *UserController) DoSomething(w http.ResponseWriter, r *http.Request) {
	writeOK(w, "doing something...", nil)
}
