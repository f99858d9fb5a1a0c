package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/kapu/terrascope/pkg/errors"
)

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

func success(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Code:    http.StatusOK,
		Message: "Success",
		Data:    data,
	})
}

func failure(c echo.Context, status int, code, details string) error {
	return c.JSON(status, Response{
		Success: false,
		Code:    status,
		Message: http.StatusText(status),
		Error:   &ErrorInfo{Code: code, Details: details},
	})
}

func badRequest(c echo.Context, code, details string) error {
	return failure(c, http.StatusBadRequest, code, details)
}

// handleError maps application errors onto the envelope. Anything unknown is
// reported as an internal error.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var validationErr *apperrors.ValidationError
	var providerErr *apperrors.ProviderError
	var appErr *apperrors.AppError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		_ = badRequest(c, validationErr.Code, validationErr.Message)
	case errors.As(err, &providerErr):
		_ = failure(c, providerErr.StatusCode, providerErr.Code, providerErr.Message)
	case errors.As(err, &appErr):
		_ = failure(c, appErr.StatusCode, appErr.Code, appErr.Message)
	case errors.As(err, &httpErr):
		details, _ := httpErr.Message.(string)
		_ = failure(c, httpErr.Code, "HTTP_ERROR", details)
	default:
		s.logger.Error("Unhandled API error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
		)
		_ = failure(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
