package middleware

import (
	"errors"
	"net/http"

	"go-echo-newsroom/internal/logging"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler renders framework and middleware errors. Handler-level
// payloads such as validation errors are written by the handlers themselves.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()
	span := trace.SpanFromContext(ctx)

	code := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(he.Code)
		}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", code))

	event := logging.Warn(ctx)
	if code >= http.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		event = logging.Error(ctx)
	}
	event.Err(err).
		Int("status", code).
		Str("path", c.Path()).
		Msg("request error")

	response := ErrorResponse{Error: message}
	if span.SpanContext().HasTraceID() {
		response.TraceID = span.SpanContext().TraceID().String()
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, response)
	}
	if writeErr != nil {
		logging.Error(ctx).Err(writeErr).Msg("failed to write error response")
	}
}
