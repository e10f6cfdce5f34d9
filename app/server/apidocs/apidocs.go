// Package apidocs 在非生产环境下提供接口文档页面。
package apidocs

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"path"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Spec 加载并校验内置的 OpenAPI 文档
func Spec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	return doc, nil
}

// SpecJSON 返回 JSON 格式的接口文档
func SpecJSON(ctx context.Context) ([]byte, error) {
	doc, err := Spec(ctx)
	if err != nil {
		return nil, err
	}
	return doc.MarshalJSON()
}

type page struct {
	SpecURL string // 文档 JSON 的地址
}

// Doc 在 basePath 下挂载文档页面：basePath 跳转到 basePath/apidocs ，basePath/apispec.json 为文档本体
func Doc(basePath string, apiJSON []byte) echo.MiddlewareFunc {
	specURL := path.Join(basePath, "apispec.json")
	docPath := path.Join(basePath, "apidocs")

	tmpl := template.Must(template.New("apidoc").Parse(pageTemplate))
	buf := bytes.NewBuffer(nil)
	_ = tmpl.Execute(buf, &page{SpecURL: specURL})
	uiHTML := buf.String()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().URL.Path {
			case docPath:
				return c.HTML(http.StatusOK, uiHTML)
			case specURL:
				return c.JSONBlob(http.StatusOK, apiJSON)
			case basePath:
				return c.Redirect(http.StatusFound, docPath)
			default:
				return next(c)
			}
		}
	}
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>College Website API</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
