package handlers

import (
	"college-portal/app/server/jwt"
	"college-portal/app/server/repositories"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) AuthMe(c echo.Context) error {
	user, ok := jwt.FromContext(c.Request().Context())
	if !ok {
		return a.er(c, http.StatusUnauthorized, "No token provided")
	}

	return c.JSON(http.StatusOK, &MeResponse{
		ID:        user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		ExpiresAt: user.Expires,
	})
}

// AuthPasswordUpdate 修改当前账户的密码，这是账户唯一允许的修改
func (a *App) AuthPasswordUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	user, ok := jwt.FromContext(rctx)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "No token provided")
	}

	// 绑定请求体
	var req PasswordUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// 从数据库中获得指定的用户
	account, err := a.accounts.FindByID(rctx, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return fmt.Errorf("find account: %w", err)
	}

	if match, err := account.CheckPassword(req.CurrentPassword); err != nil {
		return fmt.Errorf("check password: %w", err)
	} else if !match {
		return a.er(c, http.StatusUnauthorized, "Invalid credentials")
	}

	if err := a.accounts.UpdatePassword(rctx, account.ID, req.NewPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return c.JSON(http.StatusOK, &SuccessMessage{
		Status:  statusSuccess,
		Message: "Password updated.",
	})
}
