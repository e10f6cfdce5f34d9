package handlers

import (
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) er(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return c.JSON(statusCode, &ErrorMessage{
		Status:  statusError,
		Message: message,
	})
}

// HTTPErrorHandler 统一处理没有被 handler 自己处理掉的错误，生产环境下不返回内部细节
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case error:
			message = m.Error()
		default:
			message = fmt.Sprint(m)
		}
		if he.Internal != nil && code >= http.StatusInternalServerError {
			a.l.Error("request failed", zap.Int("status", code), zap.Error(he.Internal))
		}
	} else {
		a.l.Error("unhandled error", zap.String("URI", c.Request().RequestURI), zap.Error(err))
		if !a.isProd {
			message = err.Error()
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = a.er(c, code, message)
	}
	if err != nil {
		a.l.Error("failed to write error response", zap.Error(err))
	}
}
