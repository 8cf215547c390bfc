package router

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kamaumbugua/socialnet/backend/internal/apperrors"
)

// HTTPErrorHandler maps the application error taxonomy to HTTP responses.
// Store failures are logged with their cause and answered with a generic
// 500 body; raw errors never reach the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, appErr)
		}
		switch {
		case appErr.Code == "validation_error":
			_ = c.JSON(appErr.Status, echo.Map{"errors": appErr.Fields})
		case len(appErr.Fields) > 0:
			_ = c.JSON(appErr.Status, appErr.Fields)
		default:
			_ = c.JSON(appErr.Status, echo.Map{"error": appErr.Message})
		}
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, echo.Map{"error": fmt.Sprintf("%v", httpErr.Message)})
		return
	}

	log.Printf("%s %s: unhandled error: %v", c.Request().Method, c.Request().URL.Path, err)
	_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "Something went wrong"})
}
