package handlers

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

func (a *App) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
		Time:   a.now().UTC(),
	})
}

func (a *App) Banner(c echo.Context) error {
	return c.String(http.StatusOK, "College Website Backend is running")
}
