package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating openapi document: %w", err)
	}
	return doc, nil
}

// RequestValidator rejects requests that do not match the document with 400.
// Paths the document does not describe pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building openapi router: %w", err)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Kind:    "INVALID_REQUEST",
					Message: validationMessage(err),
				})
			}
			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Parameter != nil {
		detail := reqErr.Reason
		if reqErr.Err != nil {
			detail = reqErr.Err.Error()
		}
		return fmt.Sprintf("parameter %q in %s: %s", reqErr.Parameter.Name, reqErr.Parameter.In, detail)
	}
	return err.Error()
}

// serveOpenAPI returns the raw document.
func serveOpenAPI(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", openAPIDocument)
}
