package middlewares

import (
	"college-portal/app/server/constants"
	"college-portal/app/server/jwt"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"net/http"
)

// Authenticate 从 Authorization: Bearer <token> 中解析令牌，成功后把身份放进请求 context
func Authenticate(j *jwt.JWT) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: constants.ContextKeyToken,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		SuccessHandler: func(c echo.Context) {
			if user, ok := c.Get(constants.ContextKeyToken).(*jwt.User); ok {
				c.SetRequest(c.Request().WithContext(jwt.NewContext(c.Request().Context(), user)))
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token").SetInternal(err)
		},
	})
}

// RequireAdmin 只放行管理员，需要放在 Authenticate 之后
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := jwt.FromContext(c.Request().Context())
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
		}
		if !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
		}

		return next(c)
	}
}

// AdminAuth 组合 Authenticate 与 RequireAdmin
func AdminAuth(j *jwt.JWT) echo.MiddlewareFunc {
	authenticate := Authenticate(j)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return authenticate(RequireAdmin(next))
	}
}
