package handlers

import (
	"college-portal/app/server/repositories"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	// 没有写用户名或密码
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return a.er(c, http.StatusBadRequest, "Please provide username and password")
	}

	account, err := a.accounts.FindByUsername(rctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return fmt.Errorf("find account: %w", err)
	}

	// 提取密码 hash 并进行校验
	if match, err := account.CheckPassword(req.Password); err != nil {
		return fmt.Errorf("check password: %w", err)
	} else if !match {
		// 密码不一致
		return a.er(c, http.StatusUnauthorized, "Invalid credentials")
	}

	// 签出 JWT
	token, _, err := a.jwt.SignToken(account.ID, account.Username, account.IsAdmin)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	// 返回
	return c.JSON(http.StatusOK, &LoginResponse{
		Token: token,
		User: LoginUser{
			Username: account.Username,
			IsAdmin:  account.IsAdmin,
		},
	})
}
