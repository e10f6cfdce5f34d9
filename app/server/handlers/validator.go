package handlers

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"net/http"
	"reflect"
	"strings"
	"time"
)

const messageMissingFields = "Please provide all required fields."

// Validator 让 echo 的 c.Validate 使用 go-playground/validator
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 错误信息里使用 JSON 字段名
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return echo.NewHTTPError(http.StatusBadRequest, messageMissingFields)
		}
	}

	fe := verrs[0]
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid value for %s", fe.Field()))
}

// trimmed 去掉首尾空白，nil 表示未提供
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

var dateLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

// parseDate 支持 RFC3339 与 2006-01-02 两种常见写法
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}
