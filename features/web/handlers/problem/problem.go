package problem

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// MapRoutes installs the error handler that turns uncaught errors into
// JSON problem responses, keeping the verdict API consistent even off the
// happy path. Unknown paths land on /404.
func MapRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = handleHTTPError

	e.GET("/404", notFound)
}

func handleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code == http.StatusNotFound {
		if handleErr := notFound(c); handleErr != nil {
			c.Logger().Error(handleErr)
		}
		return
	}

	c.Logger().Error(err)
	_ = c.JSON(code, map[string]interface{}{"error": message})
}

func notFound(c echo.Context) error {
	var referer *string
	if r := c.QueryParam("referer"); r != "" {
		referer = &r
	}

	return c.JSON(http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"message": "The requested resource was not found",
		"referer": referer,
	})
}
