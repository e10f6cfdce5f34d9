package handlers

import (
	"github.com/labstack/echo/v4"
	"strconv"
)

// paramID 读取路径中的 :id ，无法解析的 id 按不存在处理
func (a *App) paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
